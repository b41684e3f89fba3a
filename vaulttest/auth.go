package vaulttest

import (
	"context"
	"fmt"

	"github.com/iov-one/vault"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer and
// Signers can be used together and all of them are always considered.
type Auth struct {
	// Signer represents an authentication of a single signer. It is placed
	// after Signers when listing conditions.
	Signer vault.Condition

	// Signers represents an authentication of multiple signers.
	Signers []vault.Condition
}

func (a *Auth) GetConditions(vault.Context) []vault.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx vault.Context, permissions ...vault.Condition) vault.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx vault.Context) []vault.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]vault.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []vault.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
