package vaulttest

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// NewKey returns a fresh ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() vault.Condition {
	return NewKey().PublicKey().Condition()
}

// NewOwners returns n distinct signature conditions together with their
// addresses, in the same order. Use it to build an owner set whose members
// can also sign.
func NewOwners(n int) ([]vault.Condition, []vault.Address) {
	conds := make([]vault.Condition, n)
	addrs := make([]vault.Address, n)
	for i := range conds {
		conds[i] = NewCondition()
		addrs[i] = conds[i].Address()
	}
	return conds, addrs
}
