package store

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func memSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestMemStoreGetSet(t *testing.T)        { memSuite().GetSet(t) }
func TestMemStoreNestedCaches(t *testing.T)  { memSuite().NestedCaches(t) }
func TestMemStoreFuzzIterator(t *testing.T)  { memSuite().FuzzIterator(t) }
func TestMemStoreIterConflicts(t *testing.T) { memSuite().IteratorWithConflicts(t) }

func TestBTreeCacheableOverRecorder(t *testing.T) {
	rec := NewRecordingStore(MemStore())
	db := BTreeCacheable{rec}

	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("1")))
	assert.Nil(t, cache.Delete([]byte("b")))
	assert.Equal(t, 0, len(rec.KVPairs()))

	assert.Nil(t, cache.Write())
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": nil}, rec.KVPairs())
}

func TestRecordingStoreDiscard(t *testing.T) {
	rec := NewRecordingStore(MemStore())
	cache := rec.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("1")))
	cache.Discard()
	assert.Equal(t, 0, len(rec.KVPairs()))
}

func TestSliceIterator(t *testing.T) {
	it := NewSliceIterator([]Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
	})
	defer it.Release()

	k, v, err := it.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), k)
	assert.Equal(t, []byte("1"), v)
	_, _, err = it.Next()
	assert.Nil(t, err)
	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := NewNonAtomicBatch(db)
	assert.Nil(t, b.Set([]byte("x"), []byte("y")))
	assert.Nil(t, b.Delete([]byte("z")))
	ops := b.ShowOps()
	assert.Equal(t, 2, len(ops))
	assert.Equal(t, true, ops[0].IsSetOp())
	assert.Equal(t, []byte("z"), ops[1].Key())

	// nothing is visible before the write
	v, err := db.Get([]byte("x"))
	assert.Nil(t, err)
	assert.Nil(t, v)

	assert.Nil(t, b.Write())
	v, err = db.Get([]byte("x"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("y"), v)
	assert.Equal(t, 0, len(b.ShowOps()))
}
