package multisig

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Wallet is a handle to a stored wallet. The owner set and the threshold
// never change, so the handle keeps them in memory. Everything else is read
// from the store of the factory.
type Wallet struct {
	factory  *Factory
	contract *Contract
	registry *OwnerRegistry
}

func newWallet(f *Factory, c *Contract) (*Wallet, error) {
	registry, err := NewOwnerRegistry(c.Owners, c.RequiredApprovals)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		factory:  f,
		contract: c,
		registry: registry,
	}, nil
}

// ID returns the wallet id.
func (w *Wallet) ID() []byte {
	return append([]byte(nil), w.contract.ID...)
}

// Address returns the custodial address holding the wallet balance.
func (w *Wallet) Address() vault.Address {
	return append(vault.Address(nil), w.contract.Address...)
}

// Ticker returns the only currency the wallet accepts.
func (w *Wallet) Ticker() string {
	return w.contract.Ticker
}

// Owners returns the owners in creation order.
func (w *Wallet) Owners() []vault.Address {
	return w.registry.Owners()
}

// RequiredApprovals returns the approval threshold.
func (w *Wallet) RequiredApprovals() uint32 {
	return w.registry.RequiredApprovals()
}

// IsOwner returns true if given address is one of the owners.
func (w *Wallet) IsOwner(addr vault.Address) bool {
	return w.registry.IsOwner(addr)
}

// ProposeTransaction registers a transfer of amount to the recipient. The
// proposal counts as the approval of the caller, who must be an owner.
func (w *Wallet) ProposeTransaction(ctx vault.Context, caller, to vault.Address, amount coin.Coin) (TransactionID, error) {
	var tx *Transaction
	err := w.factory.update(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		tx, err = w.factory.control.Propose(db, w.contract.ID, caller, to, amount)
		return err
	})
	if err != nil {
		return 0, err
	}
	w.logger(ctx).Info("transaction proposed",
		"tx", tx.ID, "caller", caller, "to", to, "amount", amount)
	return tx.ID, nil
}

// ApproveTransaction records the approval of the caller, who must be an
// owner that did not approve the transaction yet.
func (w *Wallet) ApproveTransaction(ctx vault.Context, caller vault.Address, id TransactionID) error {
	var tx *Transaction
	err := w.factory.update(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		tx, err = w.factory.control.Approve(db, w.contract.ID, caller, id)
		return err
	})
	if err != nil {
		return err
	}
	w.logger(ctx).Info("transaction approved",
		"tx", id, "caller", caller, "approvals", tx.ApprovalCount)
	return nil
}

// ExecuteTransaction transfers the amount of a transaction that reached
// the threshold. The caller does not have to be an owner.
func (w *Wallet) ExecuteTransaction(ctx vault.Context, caller vault.Address, id TransactionID) error {
	var tx *Transaction
	err := w.factory.update(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		tx, err = w.factory.control.Execute(ctx, db, w.contract.ID, id)
		return err
	})
	if err != nil {
		if ErrTransferFailed.Is(err) {
			w.logger(ctx).Error("transfer failed", "tx", id, "caller", caller, "err", err)
		}
		return err
	}
	w.logger(ctx).Info("transaction executed",
		"tx", id, "caller", caller, "to", tx.To, "amount", tx.Amount)
	return nil
}

// Deposit moves the amount from the sender to the wallet.
func (w *Wallet) Deposit(ctx vault.Context, from vault.Address, amount coin.Coin) error {
	err := w.factory.update(ctx, func(ctx vault.Context, db vault.KVStore) error {
		return w.factory.control.Deposit(db, w.contract, from, amount)
	})
	if err != nil {
		return err
	}
	w.logger(ctx).Info("deposit", "caller", from, "amount", amount)
	return nil
}

// HasApproved returns true if the owner approved the transaction.
func (w *Wallet) HasApproved(ctx vault.Context, id TransactionID, owner vault.Address) (bool, error) {
	var ok bool
	err := w.factory.view(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		ok, err = w.factory.control.HasApproved(db, w.contract.ID, id, owner)
		return err
	})
	return ok, err
}

// GetTransaction returns the transaction with given id. It fails with
// ErrInvalidTransactionID for an id that was never allocated.
func (w *Wallet) GetTransaction(ctx vault.Context, id TransactionID) (*Transaction, error) {
	var tx *Transaction
	err := w.factory.view(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		tx, err = w.factory.control.Transaction(db, w.contract.ID, id)
		return err
	})
	return tx, err
}

// Transactions returns all transactions in id order.
func (w *Wallet) Transactions(ctx vault.Context) ([]*Transaction, error) {
	var txs []*Transaction
	err := w.factory.view(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		txs, err = w.factory.control.Transactions(db, w.contract.ID)
		return err
	})
	return txs, err
}

// Balance returns the custodial balance.
func (w *Wallet) Balance(ctx vault.Context) (coin.Coin, error) {
	var c coin.Coin
	err := w.factory.view(ctx, func(ctx vault.Context, db vault.KVStore) (err error) {
		c, err = w.factory.control.Balance(db, w.contract)
		return err
	})
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "balance")
	}
	return c, nil
}

func (w *Wallet) logger(ctx vault.Context) log.Logger {
	return vault.GetLogger(ctx).With("module", "multisig", "wallet", fmt.Sprintf("%X", w.contract.ID))
}
