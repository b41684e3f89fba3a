package vaulttest

import "testing"

func TestCommitKVStore(t *testing.T) {
	db, cleanup := CommitKVStore(t)
	defer cleanup()

	cache := db.CacheWrap()
	if err := cache.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %s", err)
	}
	id, err := db.Commit()
	if err != nil {
		t.Fatalf("commit: %s", err)
	}
	if id.Version != 1 {
		t.Fatalf("want version 1, got %d", id.Version)
	}
	if v, _ := db.Get([]byte("a")); string(v) != "1" {
		t.Fatalf("unexpected value %q", v)
	}
}
