package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/x/cash"
)

// Transferer moves value out of the custodial balance. It is an external
// operation that can fail, and that can call back into the wallet before
// it returns. Every write must go through given store.
type Transferer interface {
	Transfer(ctx vault.Context, db vault.KVStore, from, to vault.Address, amount coin.Coin) error
}

// TransferFunc adapts a function to the Transferer interface.
type TransferFunc func(ctx vault.Context, db vault.KVStore, from, to vault.Address, amount coin.Coin) error

// Transfer calls fn.
func (fn TransferFunc) Transfer(ctx vault.Context, db vault.KVStore, from, to vault.Address, amount coin.Coin) error {
	return fn(ctx, db, from, to, amount)
}

// BankTransfer moves value between cash accounts.
type BankTransfer struct {
	mover cash.CoinMover
}

var _ Transferer = BankTransfer{}

// NewBankTransfer returns a Transferer backed by given coin mover.
func NewBankTransfer(mover cash.CoinMover) BankTransfer {
	return BankTransfer{mover: mover}
}

// Transfer moves the amount between the cash accounts. A zero amount
// moves nothing.
func (b BankTransfer) Transfer(ctx vault.Context, db vault.KVStore, from, to vault.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return nil
	}
	return b.mover.MoveCoins(db, from, to, amount)
}

// ExecutionController executes approved transactions.
type ExecutionController struct {
	ledger   *TransactionLedger
	transfer Transferer
}

// NewExecutionController returns a controller executing transactions of
// given ledger with given Transferer.
func NewExecutionController(ledger *TransactionLedger, t Transferer) *ExecutionController {
	return &ExecutionController{
		ledger:   ledger,
		transfer: t,
	}
}

// Execute transfers the amount of a transaction that reached the approval
// threshold. The transaction is marked executed before the transfer starts.
// Both happen in a savepoint that is written only if the transfer succeeds,
// so a failed transfer leaves no trace. The caller does not have to be an
// owner.
func (e *ExecutionController) Execute(ctx vault.Context, db vault.KVStore, contract *Contract, id TransactionID) (*Transaction, error) {
	tx, err := e.ledger.Get(db, contract.ID, id)
	if err != nil {
		return nil, err
	}
	if tx.Executed {
		return nil, errors.Wrapf(ErrTransactionAlreadyExecuted, "transaction %d", id)
	}
	if tx.ApprovalCount < contract.RequiredApprovals {
		return nil, errors.Wrapf(ErrNotEnoughApprovals, "transaction %d has %d of %d",
			id, tx.ApprovalCount, contract.RequiredApprovals)
	}

	savepoint := cacheWrap(db)
	tx.Executed = true
	if err := e.ledger.Save(savepoint, tx); err != nil {
		savepoint.Discard()
		return nil, errors.Wrap(err, "cannot store transaction")
	}
	if err := e.transfer.Transfer(withStore(ctx, savepoint), savepoint, contract.Address, tx.To, *tx.Amount); err != nil {
		savepoint.Discard()
		return nil, errors.Append(errors.Wrapf(ErrTransferFailed, "transaction %d", id), err)
	}
	if err := savepoint.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return tx, nil
}

// cacheWrap returns a savepoint on top of any store.
func cacheWrap(db vault.KVStore) vault.KVCacheWrap {
	if c, ok := db.(vault.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.NewBTreeCacheWrap(db, db.NewBatch(), nil)
}
