package vault

import (
	"context"
	"regexp"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is the context.Context passed between the application,
// decorators and handlers. Each extension may add its own keys to enrich
// the context with specific data.
//
// There should exist two functions for every XYZ of type T that we want to
// support in Context:
//
//   WithXYZ(Context, T) Context
//   GetXYZ(Context) (val T, ok bool)
type Context = context.Context

type contextKey int // local to the vault module

const (
	contextKeyLogger contextKey = iota
	contextKeyChainID
)

var (
	// DefaultLogger is used for all context that have not set anything
	// themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithChainID sets the chain id for the Context. Signatures are bound to
// the chain id, so it must not change once set.
//
// Panics if the chain id was already set or is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set in context")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id. Empty string when not set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}
