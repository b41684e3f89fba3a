package vault

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// A nil start or end means an open bound.
	// CONTRACT: No writes may happen within a domain while an iterator exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive.
	// CONTRACT: No writes may happen within a domain while an iterator exists over it.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing, unifying KVStore and
// Batch.
type SetDeleter interface {
	// Set sets the key. Panics on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this
// interface. They may implement other methods as well, but at least these
// are required.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator allows us to access a set of items within a range of keys. These
may all be preloaded, or loaded on demand.

  Usage:

  var itr Iterator = ...
  defer itr.Release()

  for {
    key, value, err := itr.Next()
    if errors.ErrIteratorDone.Is(err) {
      break
    }
    if err != nil {
      return err
    }
    // ...
  }
*/
type Iterator interface {
	// Next moves the iterator to the next sequential key in the database,
	// as defined by order of iteration. It returns ErrIteratorDone once
	// all items were returned.
	Next() (key, value []byte, err error)

	// Release releases the Iterator, allowing it to do any cleanup.
	Release()
}

// CacheableKVStore is a KVStore that supports cache wrapping.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data that
// we can view with all queries.
//
// At the end, call Write to use the cached data, or Discard to drop it.
// It works like a SAVEPOINT in a relational database.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a store that persists state to disk and keeps track of
// committed versions.
type CommitKVStore interface {
	ReadOnlyKVStore

	// CacheWrap returns a scratch-pad whose Write stages changes for the
	// next Commit.
	CacheWrap() KVCacheWrap

	// Commit persists all staged changes atomically and returns the
	// identifier of the new version.
	Commit() (CommitID, error)

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)

	// Close releases all resources held by the store.
	Close() error
}

// CommitID contains the version and the hash of a commit.
type CommitID struct {
	Version int64
	Hash    []byte
}
