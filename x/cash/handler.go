package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/cash".
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("cash", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ vault.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is well formed and authorized. Funds are
// checked on delivery only.
func (h SendHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if all preconditions
// are met.
func (h SendHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, *msg.Amount); err != nil {
		return nil, err
	}
	vault.GetLogger(ctx).Info("coins moved",
		"src", msg.Src, "dest", msg.Dest, "amount", msg.Amount.String())
	return &vault.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx vault.Context, tx vault.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
