package utils

import (
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ vault.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx vault.Context, tx vault.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := vault.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if tx != nil {
		logger = logger.With("path", vault.GetPath(tx))
	}

	// An entry is emitted even for an empty message, because the
	// keyvals carry the relevant information.
	switch {
	case err != nil:
		code, _ := errors.Info(err, false)
		logger.With("code", code, "err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
