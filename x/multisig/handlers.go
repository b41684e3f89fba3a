package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, control *Controller) {
	r.Handle(&CreateWalletMsg{}, createWalletHandler{auth: auth, control: control})
	r.Handle(&ProposeTransactionMsg{}, proposeHandler{auth: auth, control: control})
	r.Handle(&ApproveTransactionMsg{}, approveHandler{auth: auth, control: control})
	r.Handle(&ExecuteTransactionMsg{}, executeHandler{control: control})
}

// RegisterQuery registers the buckets of this package for queries.
// Transactions and approvals are keyed by the wallet id first, so a prefix
// query with a wallet id lists them.
func RegisterQuery(qr vault.QueryRouter) {
	NewContractBucket().Register("wallets", qr)
	NewTransactionBucket().Register("transactions", qr)
	NewApprovalBucket().Register("approvals", qr)
}

// The handlers run the operation on Check as well, so that the check state
// follows the deliver state between two blocks.

type createWalletHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ vault.Handler = createWalletHandler{}

func (h createWalletHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.create(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h createWalletHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	c, err := h.create(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &vault.DeliverResult{Data: c.ID}, nil
}

func (h createWalletHandler) create(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*Contract, error) {
	var msg CreateWalletMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	funder, err := x.SignerAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	return h.control.CreateWallet(db, msg.Owners, msg.RequiredApprovals, funder, msg.Funds)
}

type proposeHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ vault.Handler = proposeHandler{}

func (h proposeHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.propose(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h proposeHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	t, err := h.propose(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &vault.DeliverResult{Data: t.ID.Bytes()}, nil
}

func (h proposeHandler) propose(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*Transaction, error) {
	var msg ProposeTransactionMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.SignerAddress(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	return h.control.Propose(db, msg.WalletID, caller, msg.To, *msg.Amount)
}

type approveHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ vault.Handler = approveHandler{}

func (h approveHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if err := h.approve(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h approveHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	if err := h.approve(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h approveHandler) approve(ctx vault.Context, db vault.KVStore, tx vault.Tx) error {
	var msg ApproveTransactionMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	caller, err := x.SignerAddress(ctx, h.auth)
	if err != nil {
		return err
	}
	_, err = h.control.Approve(db, msg.WalletID, caller, msg.TransactionID)
	return err
}

// executeHandler does not require a signer. Execution is a trigger and
// anyone may pull it.
type executeHandler struct {
	control *Controller
}

var _ vault.Handler = executeHandler{}

func (h executeHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if err := h.execute(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h executeHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	if err := h.execute(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h executeHandler) execute(ctx vault.Context, db vault.KVStore, tx vault.Tx) error {
	var msg ExecuteTransactionMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	_, err := h.control.Execute(ctx, db, msg.WalletID, msg.TransactionID)
	return err
}
