package cash

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getWallet(t testing.TB, db vault.ReadOnlyKVStore, addr vault.Address) *Set {
	t.Helper()
	obj, err := NewBucket().Get(db, addr)
	require.NoError(t, err)
	return AsSet(obj)
}

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	addr := vaulttest.NewCondition().Address()
	addr2 := vaulttest.NewCondition().Address()

	controller := NewController(NewBucket())

	plus := coin.NewCoin(500, 1000, "FOO")
	minus := coin.NewCoin(-400, -600, "FOO")
	total := coin.NewCoin(100, 400, "FOO")
	other := coin.NewCoin(1, 0, "DING")

	assert.Nil(t, getWallet(t, db, addr))

	require.NoError(t, controller.IssueCoins(db, addr, plus))
	w := getWallet(t, db, addr)
	require.NotNil(t, w)
	assert.True(t, w.Contains(plus))
	assert.False(t, w.Contains(other))
	assert.Nil(t, getWallet(t, db, addr2))

	require.NoError(t, controller.IssueCoins(db, addr, minus))
	w = getWallet(t, db, addr)
	assert.False(t, w.Contains(plus))
	assert.True(t, w.Contains(total))

	require.NoError(t, controller.IssueCoins(db, addr2, other))
	require.NoError(t, controller.IssueCoins(db, addr2, other.Negative()))
	assert.True(t, getWallet(t, db, addr2).IsEmpty())

	// balance may not become negative
	err := controller.IssueCoins(db, addr2, other.Negative())
	assert.True(t, errors.ErrAmount.Is(err), "%+v", err)

	err = controller.IssueCoins(db, addr, coin.NewCoin(coin.MaxInt, 0, "FOO"))
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
	assert.True(t, getWallet(t, db, addr).Contains(total))
}

func TestMoveCoins(t *testing.T) {
	src := vaulttest.NewCondition().Address()
	dest := vaulttest.NewCondition().Address()
	empty := vaulttest.NewCondition().Address()

	cases := map[string]struct {
		from     vault.Address
		to       vault.Address
		amount   coin.Coin
		wantErr  *errors.Error
		wantSrc  coin.Coins
		wantDest coin.Coins
	}{
		"move part of the funds": {
			from:     src,
			to:       dest,
			amount:   coin.NewCoin(3, 0, "IOV"),
			wantSrc:  mustCoins(coin.NewCoin(7, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
			wantDest: mustCoins(coin.NewCoin(4, 0, "IOV")),
		},
		"move all of one currency": {
			from:     src,
			to:       dest,
			amount:   coin.NewCoin(2, 0, "ETH"),
			wantSrc:  mustCoins(coin.NewCoin(10, 0, "IOV")),
			wantDest: mustCoins(coin.NewCoin(1, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
		},
		"move to self": {
			from:     src,
			to:       src,
			amount:   coin.NewCoin(10, 0, "IOV"),
			wantSrc:  mustCoins(coin.NewCoin(10, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
			wantDest: mustCoins(coin.NewCoin(1, 0, "IOV")),
		},
		"insufficient funds": {
			from:     src,
			to:       dest,
			amount:   coin.NewCoin(10, 1, "IOV"),
			wantErr:  errors.ErrInsufficientAmount,
			wantSrc:  mustCoins(coin.NewCoin(10, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
			wantDest: mustCoins(coin.NewCoin(1, 0, "IOV")),
		},
		"currency not held": {
			from:     src,
			to:       dest,
			amount:   coin.NewCoin(1, 0, "BTC"),
			wantErr:  errors.ErrInsufficientAmount,
			wantSrc:  mustCoins(coin.NewCoin(10, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
			wantDest: mustCoins(coin.NewCoin(1, 0, "IOV")),
		},
		"empty sender": {
			from:     empty,
			to:       dest,
			amount:   coin.NewCoin(1, 0, "IOV"),
			wantErr:  errors.ErrEmpty,
			wantSrc:  mustCoins(coin.NewCoin(10, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
			wantDest: mustCoins(coin.NewCoin(1, 0, "IOV")),
		},
		"zero amount": {
			from:     src,
			to:       dest,
			amount:   coin.NewCoin(0, 0, "IOV"),
			wantErr:  errors.ErrAmount,
			wantSrc:  mustCoins(coin.NewCoin(10, 0, "IOV"), coin.NewCoin(2, 0, "ETH")),
			wantDest: mustCoins(coin.NewCoin(1, 0, "IOV")),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			controller := NewController(NewBucket())
			require.NoError(t, controller.IssueCoins(db, src, coin.NewCoin(10, 0, "IOV")))
			require.NoError(t, controller.IssueCoins(db, src, coin.NewCoin(2, 0, "ETH")))
			require.NoError(t, controller.IssueCoins(db, dest, coin.NewCoin(1, 0, "IOV")))

			err := controller.MoveCoins(db, tc.from, tc.to, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := controller.Balance(db, src)
			require.NoError(t, err)
			assert.True(t, tc.wantSrc.Equals(got), "source: %v", got)

			got, err = controller.Balance(db, dest)
			require.NoError(t, err)
			assert.True(t, tc.wantDest.Equals(got), "destination: %v", got)
		})
	}
}

func TestBalanceOfUnknownAddress(t *testing.T) {
	got, err := NewController(NewBucket()).Balance(store.MemStore(), vaulttest.NewCondition().Address())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func mustCoins(cs ...coin.Coin) coin.Coins {
	res, err := coin.CombineCoins(cs...)
	if err != nil {
		panic(err)
	}
	return res
}
