package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/vaulttest"
)

// signedTx is a vault.Tx carrying signatures over its serialized message.
type signedTx struct {
	vaulttest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx: vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test/sigs", Serialized: payload}},
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// signersHandler records the conditions that signed the last processed
// transaction.
type signersHandler struct {
	signers []vault.Condition
}

func (h *signersHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &vault.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &vault.DeliverResult{}, nil
}
