package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/cash"
	"github.com/stretchr/testify/require"
)

// fixture is a factory over an in-memory store, with a funded account that
// can pay for new wallets.
type fixture struct {
	ctx     vault.Context
	db      vault.CacheableKVStore
	bank    cash.BaseController
	factory *Factory
	funder  vault.Address
}

// newFixture returns a fixture that executes transactions with t, or with
// the bank when t is nil.
func newFixture(t testing.TB, transfer Transferer) *fixture {
	t.Helper()
	return newFixtureOn(t, store.MemStore(), transfer)
}

func newFixtureOn(t testing.TB, db vault.CacheableKVStore, transfer Transferer) *fixture {
	t.Helper()
	bank := cash.NewController(cash.NewBucket())
	funder := vaulttest.NewCondition().Address()
	require.NoError(t, bank.IssueCoins(db, funder, coin.NewCoin(1000, 0, "IOV")))
	return &fixture{
		ctx:     context.Background(),
		db:      db,
		bank:    bank,
		factory: NewFactory(db, NewController(bank, transfer)),
		funder:  funder,
	}
}

// wallet creates a wallet of n new owners, funded with given amount.
func (f *fixture) wallet(t testing.TB, n int, required uint32, funding coin.Coin) (*Wallet, []vault.Address) {
	t.Helper()
	owners := newAddresses(n)
	w, err := f.factory.Create(f.ctx, owners, required, f.funder, funding)
	require.NoError(t, err)
	return w, owners
}

func (f *fixture) balance(t testing.TB, addr vault.Address) coin.Coin {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	require.NoError(t, err)
	return coins.Get("IOV")
}

func newAddresses(n int) []vault.Address {
	_, addrs := vaulttest.NewOwners(n)
	return addrs
}

func iov(whole int64) coin.Coin {
	return coin.NewCoin(whole, 0, "IOV")
}

func recipient() vault.Address {
	return vaulttest.NewCondition().Address()
}
