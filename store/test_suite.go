package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

// TestSuite provides checks that any CacheableKVStore implementation must
// pass. Only the constructor of the store differs between implementations,
// the rest of the logic is generic to the KVStore interface.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function that releases
// it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores built by given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on our cache.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// a cache sees the base data
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// and commit another with a delete
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	s.AssertGetHas(t, c3, k, nil, false)
	assert.Nil(t, c3.Write())

	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// NestedCaches verifies that a cache of a cache writes only to its parent.
func (s *TestSuite) NestedCaches(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("key"), []byte("value")
	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(k, v))
	assert.Nil(t, inner.Write())

	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)

	// discarding the outer layer drops the inner writes too
	outer.Discard()
	s.AssertGetHas(t, base, k, nil, false)
}

// FuzzIterator writes random data through two cache layers and compares
// iteration over all ranges with a sorted reference.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	models := randModels(50, 8, 20)
	for _, m := range models[:25] {
		assert.Nil(t, base.Set(m.Key, m.Value))
	}
	cache := base.CacheWrap()
	for _, m := range models[25:] {
		assert.Nil(t, cache.Set(m.Key, m.Value))
	}
	// delete a few from each layer
	for _, m := range models[20:30] {
		assert.Nil(t, cache.Delete(m.Key))
	}

	want := sortModels(append(append([]Model{}, models[:20]...), models[30:]...))

	verifyIterator(t, cache, nil, nil, want, false)
	verifyIterator(t, cache, nil, nil, reverse(want), true)

	start, end := want[5].Key, want[25].Key
	verifyIterator(t, cache, start, end, want[5:25], false)
	verifyIterator(t, cache, start, end, reverse(want[5:25]), true)
	verifyIterator(t, cache, start, nil, want[5:], false)
	verifyIterator(t, cache, nil, end, want[:25], false)

	// once written the base layer returns the same
	assert.Nil(t, cache.Write())
	verifyIterator(t, base, nil, nil, want, false)
	verifyIterator(t, base, start, end, reverse(want[5:25]), true)
}

// IteratorWithConflicts checks that a cache overwrite shadows the value of
// the parent during iteration.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	assert.Nil(t, base.Set([]byte("a"), []byte("1")))
	assert.Nil(t, base.Set([]byte("b"), []byte("2")))
	assert.Nil(t, base.Set([]byte("c"), []byte("3")))

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("b"), []byte("22")))
	assert.Nil(t, cache.Delete([]byte("c")))
	assert.Nil(t, cache.Set([]byte("d"), []byte("4")))

	want := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("22")},
		{Key: []byte("d"), Value: []byte("4")},
	}
	verifyIterator(t, cache, nil, nil, want, false)
	verifyIterator(t, cache, nil, nil, reverse(want), true)
}

// AssertGetHas makes sure that Get and Has agree on the presence of a key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func verifyIterator(t testing.TB, kv ReadOnlyKVStore, start, end []byte, want []Model, desc bool) {
	t.Helper()

	var (
		it  Iterator
		err error
	)
	if desc {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	var got []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		got = append(got, Model{Key: key, Value: value})
	}
	if len(got) != len(want) {
		t.Fatalf("want %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) || !bytes.Equal(want[i].Value, got[i].Value) {
			t.Fatalf("item %d: want %X, got %X", i, want[i].Key, got[i].Key)
		}
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	res := make([]Model, count)
	for i := range res {
		res[i] = Model{Key: randBytes(keySize), Value: randBytes(valueSize)}
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})
	return models
}
