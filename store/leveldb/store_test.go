package leveldb

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suite(t *testing.T) *store.TestSuite {
	return store.NewTestSuite(func() (vault.CacheableKVStore, func()) {
		db, err := OpenInMemory()
		require.NoError(t, err)
		return db, func() { db.Close() }
	})
}

func TestLevelDBGetSet(t *testing.T)        { suite(t).GetSet(t) }
func TestLevelDBNestedCaches(t *testing.T)  { suite(t).NestedCaches(t) }
func TestLevelDBFuzzIterator(t *testing.T)  { suite(t).FuzzIterator(t) }
func TestLevelDBIterConflicts(t *testing.T) { suite(t).IteratorWithConflicts(t) }

func TestCommitSurvivesReopen(t *testing.T) {
	dir, err := ioutil.TempDir("", "vault-leveldb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := Open(dir, true)
	require.NoError(t, err)

	v, err := db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Version)

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("wallet"), []byte("1")))
	require.NoError(t, cache.Write())
	first, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.Len(t, first.Hash, 32)

	// an empty commit still moves the version and the hash
	second, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)
	require.NoError(t, db.Close())

	db, err = Open(dir, false)
	require.NoError(t, err)
	defer db.Close()

	latest, err := db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	val, err := db.Get([]byte("wallet"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
}

func TestVersionIsNotData(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Commit()
	require.NoError(t, err)

	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()
	_, _, err = it.Next()
	assert.Error(t, err, "version information must not be visible as data")
}

func TestSameWritesGiveSameHash(t *testing.T) {
	hashOf := func() []byte {
		db, err := OpenInMemory()
		require.NoError(t, err)
		defer db.Close()
		require.NoError(t, db.Set([]byte("a"), []byte("1")))
		require.NoError(t, db.Delete([]byte("b")))
		id, err := db.Commit()
		require.NoError(t, err)
		return id.Hash
	}
	assert.Equal(t, hashOf(), hashOf())
}
