package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/sigs"
)

// Tx is the transaction format of the application: a single message and
// the signatures of everyone authorizing it.
type Tx struct {
	Msg        vault.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

var _ vault.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single msg.
func (tx *Tx) GetMsg() (vault.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "empty transaction")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the transaction without its
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// Sign appends a signature of given signer. The signer must use its next
// nonce.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, nonce int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, nonce)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// Marshal serializes the transaction using the binary codec.
func (tx *Tx) Marshal() ([]byte, error) {
	return vault.Marshal(tx)
}

// Unmarshal loads the transaction from its binary representation.
func (tx *Tx) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, tx)
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(raw []byte) (vault.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}
