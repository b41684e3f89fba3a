package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// ApprovalEngine records owner approvals. An owner can approve a transaction
// once, and an approval is never withdrawn.
type ApprovalEngine struct {
	approvals ApprovalBucket
	ledger    *TransactionLedger
}

// NewApprovalEngine returns an engine approving transactions of given
// ledger.
func NewApprovalEngine(ledger *TransactionLedger) *ApprovalEngine {
	return &ApprovalEngine{
		approvals: NewApprovalBucket(),
		ledger:    ledger,
	}
}

// Approve records the approval of the caller and increments the approval
// count of the transaction. Approving twice is an error.
func (e *ApprovalEngine) Approve(
	db vault.KVStore,
	registry *OwnerRegistry,
	caller vault.Address,
	walletID []byte,
	id TransactionID,
) (*Transaction, error) {
	if !registry.IsOwner(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	tx, err := e.ledger.Get(db, walletID, id)
	if err != nil {
		return nil, err
	}
	switch ok, err := e.approvals.Has(db, walletID, id, caller); {
	case err != nil:
		return nil, errors.Wrap(err, "approval lookup")
	case ok:
		return nil, errors.Wrapf(ErrTransactionAlreadyApprovedByOwner, "transaction %d, owner %s", id, caller)
	}

	a := &Approval{
		WalletID:      walletID,
		TransactionID: id,
		Owner:         caller,
	}
	if err := e.approvals.Put(db, a); err != nil {
		return nil, errors.Wrap(err, "cannot store approval")
	}
	tx.ApprovalCount++
	if err := e.ledger.Save(db, tx); err != nil {
		return nil, errors.Wrap(err, "cannot store transaction")
	}
	return tx, nil
}

// HasApproved returns true if the owner approved the transaction.
func (e *ApprovalEngine) HasApproved(db vault.ReadOnlyKVStore, walletID []byte, id TransactionID, owner vault.Address) (bool, error) {
	ok, err := e.approvals.Has(db, walletID, id, owner)
	if err != nil {
		return false, errors.Wrap(err, "approval lookup")
	}
	return ok, nil
}
