// Package crypto provides the signing keys used to authenticate the callers
// of the vault.
package crypto

import (
	"github.com/iov-one/vault"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() vault.Condition
}

// Signer is the functionality we use from a private key.
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address is a shortcut for the address of the signature condition of given
// key.
func Address(pub PubKey) vault.Address {
	return pub.Condition().Address()
}
