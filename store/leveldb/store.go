/*
Package leveldb provides a persistent vault.CommitKVStore on top of
goleveldb.

All application data is kept in its own key space, separated from the
version information maintained by Commit. Every batch is written atomically,
so a crash never leaves a partially applied cache-wrap on disk.
*/
package leveldb

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	dataPrefix byte = 'd'
	metaPrefix byte = 'm'
)

var versionKey = []byte{metaPrefix, 'v'}

// Store keeps all data in a leveldb database.
type Store struct {
	db   *leveldb.DB
	sync bool

	mu      sync.Mutex
	version int64
	hash    []byte
	// changes digests all writes since the last commit
	changes hash.Hash
}

var (
	_ vault.CacheableKVStore = (*Store)(nil)
	_ vault.CommitKVStore    = (*Store)(nil)
)

// Open opens or creates the database stored in given directory. When sync
// is set, every write is flushed to disk before returning.
func Open(dir string, sync bool) (*Store, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return newStore(db, sync)
}

// OpenInMemory returns a store that lives in memory only. Useful for tests.
func OpenInMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open: %s", err)
	}
	return newStore(db, false)
}

func newStore(db *leveldb.DB, sync bool) (*Store, error) {
	s := &Store{
		db:      db,
		sync:    sync,
		changes: sha256.New(),
	}
	raw, err := db.Get(versionKey, nil)
	switch {
	case err == leveldb.ErrNotFound:
		return s, nil
	case err != nil:
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "read version: %s", err)
	case len(raw) < 8:
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "incompatible version length: %d", len(raw))
	}
	s.version = int64(binary.BigEndian.Uint64(raw[:8]))
	s.hash = append([]byte{}, raw[8:]...)
	return s, nil
}

func dataKey(key []byte) []byte {
	if key == nil {
		panic("nil key")
	}
	k := make([]byte, 1+len(key))
	k[0] = dataPrefix
	copy(k[1:], key)
	return k
}

func (s *Store) writeOptions() *opt.WriteOptions {
	return &opt.WriteOptions{Sync: s.sync}
}

// Get returns the value stored under given key or nil.
func (s *Store) Get(key []byte) ([]byte, error) {
	val, err := s.db.Get(dataKey(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Has returns true if a value is stored under given key.
func (s *Store) Has(key []byte) (bool, error) {
	ok, err := s.db.Has(dataKey(key), nil)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set writes a single value. Prefer a batch or a cache-wrap for more than
// one write.
func (s *Store) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes a single value.
func (s *Store) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch that is written atomically.
func (s *Store) NewBatch() vault.Batch {
	return &batch{store: s, b: new(leveldb.Batch)}
}

// CacheWrap returns a cache whose Write is applied in a single atomic
// batch.
func (s *Store) CacheWrap() vault.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order.
func (s *Store) Iterator(start, end []byte) (vault.Iterator, error) {
	return &iter{it: s.db.NewIterator(dataRange(start, end), nil)}, nil
}

// ReverseIterator over a domain of keys in descending order.
func (s *Store) ReverseIterator(start, end []byte) (vault.Iterator, error) {
	return &iter{it: s.db.NewIterator(dataRange(start, end), nil), reverse: true}, nil
}

func dataRange(start, end []byte) *util.Range {
	r := &util.Range{
		Start: []byte{dataPrefix},
		Limit: []byte{dataPrefix + 1},
	}
	if start != nil {
		r.Start = dataKey(start)
	}
	if end != nil {
		r.Limit = dataKey(end)
	}
	return r
}

// Commit persists the version information of all writes done since the
// previous commit.
func (s *Store) Commit() (vault.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.version + 1
	h := sha256.New()
	h.Write(s.hash)
	h.Write(s.changes.Sum(nil))
	sum := h.Sum(nil)

	raw := make([]byte, 8, 8+len(sum))
	binary.BigEndian.PutUint64(raw, uint64(version))
	raw = append(raw, sum...)
	if err := s.db.Put(versionKey, raw, s.writeOptions()); err != nil {
		return vault.CommitID{}, errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}

	s.version = version
	s.hash = sum
	s.changes.Reset()
	return vault.CommitID{Version: version, Hash: sum}, nil
}

// LatestVersion returns the last committed version.
func (s *Store) LatestVersion() (vault.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return vault.CommitID{Version: s.version, Hash: s.hash}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

type batch struct {
	store *Store
	b     *leveldb.Batch
	// ops digests the operations of this batch
	ops [][]byte
}

func (b *batch) Set(key, value []byte) error {
	b.b.Put(dataKey(key), value)
	b.ops = append(b.ops, []byte{'s'}, key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(dataKey(key))
	b.ops = append(b.ops, []byte{'d'}, key)
	return nil
}

// Write applies all operations atomically.
func (b *batch) Write() error {
	if err := b.store.db.Write(b.b, b.store.writeOptions()); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write batch: %s", err)
	}

	b.store.mu.Lock()
	for _, op := range b.ops {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(op)))
		b.store.changes.Write(n[:])
		b.store.changes.Write(op)
	}
	b.store.mu.Unlock()

	b.Reset()
	return nil
}

// Reset drops all pending operations.
func (b *batch) Reset() {
	b.b.Reset()
	b.ops = nil
}

type iter struct {
	it      iterator.Iterator
	reverse bool
	started bool
}

func (i *iter) Next() (key, value []byte, err error) {
	var ok bool
	switch {
	case !i.started && i.reverse:
		ok = i.it.Last()
	case !i.started:
		ok = i.it.First()
	case i.reverse:
		ok = i.it.Prev()
	default:
		ok = i.it.Next()
	}
	i.started = true

	if !ok {
		if err := i.it.Error(); err != nil {
			return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return nil, nil, errors.ErrIteratorDone
	}
	// leveldb reuses the buffers, copy before returning
	key = append([]byte{}, i.it.Key()[1:]...)
	value = append([]byte{}, i.it.Value()...)
	return key, value, nil
}

func (i *iter) Release() {
	i.it.Release()
}
