package store

import "github.com/iov-one/vault"

// Aliases of the root interfaces, so that store implementations read
// naturally inside of this package.
type (
	ReadOnlyKVStore  = vault.ReadOnlyKVStore
	SetDeleter       = vault.SetDeleter
	KVStore          = vault.KVStore
	Batch            = vault.Batch
	Iterator         = vault.Iterator
	CacheableKVStore = vault.CacheableKVStore
	KVCacheWrap      = vault.KVCacheWrap
	CommitKVStore    = vault.CommitKVStore
	CommitID         = vault.CommitID
	Model            = vault.Model
)
