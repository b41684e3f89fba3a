package multisig

import (
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Factory creates and opens wallets kept in a single store. All operations
// of all its wallets are serialized by one guard, held for the whole
// operation including the external transfer.
type Factory struct {
	guard   sync.Mutex
	db      vault.CacheableKVStore
	control *Controller
}

// NewFactory returns a factory keeping its wallets in given store.
func NewFactory(db vault.CacheableKVStore, control *Controller) *Factory {
	return &Factory{
		db:      db,
		control: control,
	}
}

// Create validates the owner set, stores a new wallet and moves the funding
// from the funder to the wallet. A zero funding moves nothing.
func (f *Factory) Create(
	ctx vault.Context,
	owners []vault.Address,
	requiredApprovals uint32,
	funder vault.Address,
	funding coin.Coin,
) (*Wallet, error) {
	var contract *Contract
	err := f.update(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		contract, err = f.control.CreateWallet(db, owners, requiredApprovals, funder, &funding)
		return err
	})
	if err != nil {
		return nil, err
	}
	w, err := newWallet(f, contract)
	if err != nil {
		return nil, err
	}
	w.logger(ctx).Info("wallet created",
		"owners", len(owners), "required", requiredApprovals, "funding", funding)
	return w, nil
}

// DeployWallet creates an unfunded wallet. It adds no validation of its own.
func (f *Factory) DeployWallet(ctx vault.Context, owners []vault.Address, requiredApprovals uint32) (*Wallet, error) {
	return f.Create(ctx, owners, requiredApprovals, nil, coin.Coin{})
}

// Wallet opens a stored wallet.
func (f *Factory) Wallet(ctx vault.Context, walletID []byte) (*Wallet, error) {
	var contract *Contract
	err := f.view(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		contract, _, err = f.control.Load(db, walletID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newWallet(f, contract)
}

// update runs fn on a savepoint of the store. The savepoint is written if
// fn succeeds and discarded otherwise. The guard is taken unless ctx comes
// from an operation that holds it already, in which case the savepoint is
// taken on top of the store of that operation.
func (f *Factory) update(ctx vault.Context, fn func(vault.Context, vault.KVStore) error) error {
	var parent vault.KVStore = f.db
	if s, ok := sessionOf(ctx, f); ok {
		parent = s.db
	} else {
		f.guard.Lock()
		defer f.guard.Unlock()
	}

	savepoint := cacheWrap(parent)
	if err := fn(withSession(ctx, f, savepoint), savepoint); err != nil {
		savepoint.Discard()
		return err
	}
	if err := savepoint.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

// view runs fn on the current state of the store.
func (f *Factory) view(ctx vault.Context, fn func(vault.Context, vault.KVStore) error) error {
	if s, ok := sessionOf(ctx, f); ok {
		return fn(ctx, s.db)
	}
	f.guard.Lock()
	defer f.guard.Unlock()
	return fn(withSession(ctx, f, f.db), f.db)
}
