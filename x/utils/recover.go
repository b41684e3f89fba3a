package utils

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Recovery turns a panic of any handler below it into ErrPanic. The panic
// value and the stack are logged, the returned error carries neither.
type Recovery struct{}

var _ vault.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (_ *vault.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (_ *vault.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

func recoverTx(ctx vault.Context, tx vault.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)

	logger := vault.GetLogger(ctx)
	if tx != nil {
		logger = logger.With("path", vault.GetPath(tx))
	}
	logger.Error("handler panic", "panic", fmt.Sprint(r), "stack", fmt.Sprintf("%+v", *err))
}
