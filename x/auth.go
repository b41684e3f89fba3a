package x

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Authenticator reports the conditions that authorized the current
// transaction. Handlers take one in their constructor instead of reading
// signatures themselves.
type Authenticator interface {
	// GetConditions returns every condition that signed, in signing order.
	GetConditions(vault.Context) []vault.Condition
	// HasAddress is true if a condition with given address signed.
	HasAddress(vault.Context, vault.Address) bool
}

// MultiAuth merges the conditions of several authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator that asks every given one in order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions concatenates the conditions of all authenticators, keeping
// the first occurrence of each.
func (m MultiAuth) GetConditions(ctx vault.Context) []vault.Condition {
	var res []vault.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !containsCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition that signed, or nil.
func MainSigner(ctx vault.Context, auth Authenticator) vault.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// SignerAddress returns the address of the main signer. It fails with
// ErrUnauthorized when the transaction is not signed.
func SignerAddress(ctx vault.Context, auth Authenticator) (vault.Address, error) {
	cond := MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return cond.Address(), nil
}

func containsCondition(conds []vault.Condition, c vault.Condition) bool {
	for _, have := range conds {
		if have.Equals(c) {
			return true
		}
	}
	return false
}
