package utils

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Savepoint will isolate all data inside of the call, and commit or roll
// back to the savepoint depending on the returned error.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ vault.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *vault.CheckResult
	err := isolate(store, func(db vault.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *vault.DeliverResult
	err := isolate(store, func(db vault.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// isolate runs fn on a cache wrap of the store. The cache is written only
// when fn succeeds. A store that cannot be cache wrapped is used directly.
func isolate(store vault.KVStore, fn func(vault.KVStore) error) error {
	cstore, ok := store.(vault.CacheableKVStore)
	if !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
