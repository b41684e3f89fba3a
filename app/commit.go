package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// CommitStore keeps separate cache wraps for the deliver and the check
// phase on top of a committed store.
type CommitStore struct {
	committed vault.CommitKVStore
	deliver   vault.KVCacheWrap
	check     vault.KVCacheWrap
}

// NewCommitStore sets up the deliver and check caches over the last
// committed state.
func NewCommitStore(store vault.CommitKVStore) *CommitStore {
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the current version and hash.
func (cs *CommitStore) CommitInfo() (vault.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache to the underlying store and persists
// it. Both caches start over from the new state.
func (cs *CommitStore) Commit() (vault.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return vault.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() vault.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() vault.CacheableKVStore {
	return cs.deliver
}

// Committed returns the last committed state, for queries.
func (cs *CommitStore) Committed() vault.ReadOnlyKVStore {
	return cs.committed
}

// _vt: is a prefix for vault internal data
const chainIDKey = "_vt:chainID"

func loadChainID(kv vault.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv vault.KVStore, chainID string) error {
	if !vault.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
