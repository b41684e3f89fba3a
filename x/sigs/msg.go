package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

func init() {
	vault.RegisterMsg(&BumpSequenceMsg{}, "sigs/BumpSequenceMsg")
}

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the main signer. It can be used
// to invalidate transactions that were signed but never submitted.
type BumpSequenceMsg struct {
	// Increment is the total value the sequence grows by, including the
	// increment done by the signature verification.
	Increment uint32 `json:"increment"`
}

var _ vault.Msg = (*BumpSequenceMsg)(nil)

// Path returns the routing path for this message
func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

// Marshal serializes the message using the binary codec.
func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

// Unmarshal loads the message from its binary representation.
func (m *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, m)
}

// Validate ensures the increment is within the allowed range.
func (m *BumpSequenceMsg) Validate() error {
	if m.Increment < minSequenceIncrement {
		return errors.Field("Increment", errors.ErrMsg, "must be at least %d", minSequenceIncrement)
	}
	if m.Increment > maxSequenceIncrement {
		return errors.Field("Increment", errors.ErrMsg, "must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}
