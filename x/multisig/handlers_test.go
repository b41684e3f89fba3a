package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRegistry map[string]vault.Handler

func (r testRegistry) Handle(m vault.Msg, h vault.Handler) {
	r[m.Path()] = h
}

func (r testRegistry) deliver(t testing.TB, ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.DeliverResult, error) {
	t.Helper()
	h, ok := r[msg.Path()]
	require.True(t, ok, "no handler for %s", msg.Path())
	return h.Deliver(ctx, db, &vaulttest.Tx{Msg: msg})
}

func (r testRegistry) check(t testing.TB, ctx vault.Context, db vault.KVStore, msg vault.Msg) error {
	t.Helper()
	h, ok := r[msg.Path()]
	require.True(t, ok, "no handler for %s", msg.Path())
	_, err := h.Check(ctx, db, &vaulttest.Tx{Msg: msg})
	return err
}

func TestHandlers(t *testing.T) {
	db := store.MemStore()
	bank := cash.NewController(cash.NewBucket())
	auth := &vaulttest.CtxAuth{Key: "auth"}
	rt := testRegistry{}
	RegisterRoutes(rt, auth, NewController(bank, nil))

	funder := vaulttest.NewCondition()
	require.NoError(t, bank.IssueCoins(db, funder.Address(), iov(100)))

	var owners []vault.Condition
	var addrs []vault.Address
	for i := 0; i < 3; i++ {
		c := vaulttest.NewCondition()
		owners = append(owners, c)
		addrs = append(addrs, c.Address())
	}
	as := func(c vault.Condition) vault.Context {
		return auth.SetConditions(context.Background(), c)
	}
	funds := iov(20)

	res, err := rt.deliver(t, as(funder), db, &CreateWalletMsg{
		Owners:            addrs,
		RequiredApprovals: 2,
		Funds:             &funds,
	})
	require.NoError(t, err)
	walletID := res.Data
	assert.Equal(t, vaulttest.SequenceID(1), walletID)

	contract, err := NewContractBucket().GetContract(db, walletID)
	require.NoError(t, err)
	assert.Equal(t, iov(20), balanceOf(t, bank, db, contract.Address))
	assert.Equal(t, iov(80), balanceOf(t, bank, db, funder.Address()))

	to := vaulttest.NewCondition().Address()
	amount := iov(7)
	propose := &ProposeTransactionMsg{WalletID: walletID, To: to, Amount: &amount}

	// Check runs the full operation on its own store.
	checkDB := store.MemStore()
	require.NoError(t, rt.check(t, as(owners[0]), db.CacheWrap(), propose))
	err = rt.check(t, as(owners[0]), checkDB, propose)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	_, err = rt.deliver(t, context.Background(), db, propose)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	_, err = rt.deliver(t, as(funder), db, propose)
	assert.True(t, ErrNotOwner.Is(err), "%+v", err)

	res, err = rt.deliver(t, as(owners[0]), db, propose)
	require.NoError(t, err)
	assert.Equal(t, TransactionID(1).Bytes(), res.Data)

	execute := &ExecuteTransactionMsg{WalletID: walletID, TransactionID: 1}
	_, err = rt.deliver(t, context.Background(), db, execute)
	assert.True(t, ErrNotEnoughApprovals.Is(err), "%+v", err)

	approve := &ApproveTransactionMsg{WalletID: walletID, TransactionID: 1}
	_, err = rt.deliver(t, as(owners[0]), db, approve)
	assert.True(t, ErrTransactionAlreadyApprovedByOwner.Is(err), "%+v", err)
	_, err = rt.deliver(t, as(owners[2]), db, approve)
	require.NoError(t, err)

	// No signature is needed to execute.
	_, err = rt.deliver(t, context.Background(), db, execute)
	require.NoError(t, err)
	_, err = rt.deliver(t, context.Background(), db, execute)
	assert.True(t, ErrTransactionAlreadyExecuted.Is(err), "%+v", err)

	assert.Equal(t, iov(7), balanceOf(t, bank, db, to))
	assert.Equal(t, iov(13), balanceOf(t, bank, db, contract.Address))
}

func balanceOf(t testing.TB, bank cash.Controller, db vault.KVStore, addr vault.Address) coin.Coin {
	t.Helper()
	coins, err := bank.Balance(db, addr)
	require.NoError(t, err)
	return coins.Get("IOV")
}

// The message handlers and the wallet API share one implementation and
// must fail the same way for the same input.
func TestHandlersMatchWallet(t *testing.T) {
	f := newFixture(t, nil)
	conds, owners := vaulttest.NewOwners(3)
	w, err := f.factory.Create(f.ctx, owners, 2, f.funder, iov(10))
	require.NoError(t, err)
	stranger := vaulttest.NewCondition()

	auth := &vaulttest.CtxAuth{Key: "auth"}
	rt := testRegistry{}
	RegisterRoutes(rt, auth, f.factory.control)
	as := func(i int) vault.Context {
		return auth.SetConditions(context.Background(), conds[i])
	}
	strangerCtx := auth.SetConditions(context.Background(), stranger)

	id, err := w.ProposeTransaction(f.ctx, owners[0], recipient(), iov(1))
	require.NoError(t, err)

	cases := map[string]struct {
		api     func() error
		msg     vault.Msg
		ctx     vault.Context
		wantErr *errors.Error
	}{
		"propose over balance": {
			api: func() error {
				_, err := w.ProposeTransaction(f.ctx, owners[1], recipient(), iov(11))
				return err
			},
			msg:     &ProposeTransactionMsg{WalletID: w.ID(), To: recipient(), Amount: coinPtr(iov(11))},
			ctx:     as(1),
			wantErr: ErrNotEnoughBalance,
		},
		"propose by stranger": {
			api: func() error {
				_, err := w.ProposeTransaction(f.ctx, stranger.Address(), recipient(), iov(1))
				return err
			},
			msg:     &ProposeTransactionMsg{WalletID: w.ID(), To: recipient(), Amount: coinPtr(iov(1))},
			ctx:     strangerCtx,
			wantErr: ErrNotOwner,
		},
		"approve twice": {
			api:     func() error { return w.ApproveTransaction(f.ctx, owners[0], id) },
			msg:     &ApproveTransactionMsg{WalletID: w.ID(), TransactionID: id},
			ctx:     as(0),
			wantErr: ErrTransactionAlreadyApprovedByOwner,
		},
		"approve unknown": {
			api:     func() error { return w.ApproveTransaction(f.ctx, owners[1], 9) },
			msg:     &ApproveTransactionMsg{WalletID: w.ID(), TransactionID: 9},
			ctx:     as(1),
			wantErr: ErrInvalidTransactionID,
		},
		"approve zero": {
			api:     func() error { return w.ApproveTransaction(f.ctx, owners[1], 0) },
			msg:     &ApproveTransactionMsg{WalletID: w.ID(), TransactionID: 0},
			ctx:     as(1),
			wantErr: ErrInvalidTransactionID,
		},
		"stranger approves zero": {
			api:     func() error { return w.ApproveTransaction(f.ctx, stranger.Address(), 0) },
			msg:     &ApproveTransactionMsg{WalletID: w.ID(), TransactionID: 0},
			ctx:     strangerCtx,
			wantErr: ErrNotOwner,
		},
		"stranger proposes zero": {
			api: func() error {
				_, err := w.ProposeTransaction(f.ctx, stranger.Address(), recipient(), iov(0))
				return err
			},
			msg:     &ProposeTransactionMsg{WalletID: w.ID(), To: recipient(), Amount: coinPtr(iov(0))},
			ctx:     strangerCtx,
			wantErr: ErrNotOwner,
		},
		"stranger proposes without recipient": {
			api: func() error {
				_, err := w.ProposeTransaction(f.ctx, stranger.Address(), nil, iov(-2))
				return err
			},
			msg:     &ProposeTransactionMsg{WalletID: w.ID(), Amount: coinPtr(iov(-2))},
			ctx:     strangerCtx,
			wantErr: ErrNotOwner,
		},
		"propose negative": {
			api: func() error {
				_, err := w.ProposeTransaction(f.ctx, owners[2], recipient(), iov(-1))
				return err
			},
			msg:     &ProposeTransactionMsg{WalletID: w.ID(), To: recipient(), Amount: coinPtr(iov(-1))},
			ctx:     as(2),
			wantErr: errors.ErrAmount,
		},
		"execute zero": {
			api:     func() error { return w.ExecuteTransaction(f.ctx, stranger.Address(), 0) },
			msg:     &ExecuteTransactionMsg{WalletID: w.ID(), TransactionID: 0},
			ctx:     strangerCtx,
			wantErr: ErrInvalidTransactionID,
		},
		"execute early": {
			api:     func() error { return w.ExecuteTransaction(f.ctx, owners[1], id) },
			msg:     &ExecuteTransactionMsg{WalletID: w.ID(), TransactionID: id},
			ctx:     context.Background(),
			wantErr: ErrNotEnoughApprovals,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			apiErr := tc.api()
			if !tc.wantErr.Is(apiErr) {
				t.Fatalf("unexpected api error: %+v", apiErr)
			}
			_, msgErr := rt.deliver(t, tc.ctx, f.db.CacheWrap(), tc.msg)
			if !tc.wantErr.Is(msgErr) {
				t.Fatalf("unexpected handler error: %+v", msgErr)
			}
		})
	}
}

func coinPtr(c coin.Coin) *coin.Coin {
	return &c
}
