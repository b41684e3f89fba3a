package store

// RecordingStore wraps a KVStore and records every change that reaches it.
// Use it to verify which writes an operation persisted, and that a failed
// operation persisted none.
type RecordingStore struct {
	KVStore
	// changes maps a key to its last written value, nil for a delete
	changes map[string][]byte
}

var _ CacheableKVStore = (*RecordingStore)(nil)

// NewRecordingStore initializes a recording store wrapping this base store.
func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

// KVPairs returns all recorded changes. A deleted key maps to nil.
func (r *RecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the change while performing it.
func (r *RecordingStore) Set(key, value []byte) error {
	r.changes[string(key)] = append([]byte{}, value...)
	return r.KVStore.Set(key, value)
}

// Delete records the change while performing it.
func (r *RecordingStore) Delete(key []byte) error {
	r.changes[string(key)] = nil
	return r.KVStore.Delete(key)
}

// NewBatch makes sure all writes go through this store.
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// CacheWrap returns a cache whose Write is recorded.
func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}
