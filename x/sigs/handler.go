package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator) {
	r.Handle(&BumpSequenceMsg{}, &bumpSequenceHandler{
		b:    NewBucket(),
		auth: auth,
	})
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

var _ vault.Handler = (*bumpSequenceHandler)(nil)

func (h *bumpSequenceHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Signature verification already bumped the sequence by one.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		return &vault.DeliverResult{}, nil
	}
	user.Sequence += incr
	if err := h.b.Save(db, NewUserFrom(user)); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	vault.GetLogger(ctx).Debug("sequence bumped", "signer", user.Pubkey.Address(), "sequence", user.Sequence)
	return &vault.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer, err := x.SignerAddress(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	obj, err := h.b.Get(db, signer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "bucket")
	}
	if obj == nil {
		return nil, nil, errors.Wrap(errors.ErrNotFound, "no sequence")
	}
	user := AsUser(obj)
	if next := user.Sequence + int64(msg.Increment) - 1; next > maxSequenceValue {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return user, &msg, nil
}
