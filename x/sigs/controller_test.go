package sigs

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	cases := map[string]struct {
		chainID string
		seq     int64
		wantErr *errors.Error
	}{
		"valid":            {chainID: "test-chain", seq: 7},
		"negative nonce":   {chainID: "test-chain", seq: -1, wantErr: ErrInvalidSequence},
		"invalid chain id": {chainID: "x", seq: 0, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := BuildSignBytes([]byte("foo"), tc.chainID, tc.seq)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Len(t, bz, 64)
			}
		})
	}

	a, err := BuildSignBytes([]byte("foo"), "test-chain", 1)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("foo"), "test-chain", 2)
	require.NoError(t, err)
	c, err := BuildSignBytes([]byte("foo"), "other-chain", 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "nonce must change the sign bytes")
	assert.NotEqual(t, a, c, "chain must change the sign bytes")
}

func TestVerifySignatures(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()

	key := vaulttest.NewKey()
	other := vaulttest.NewKey()

	tx := newSignedTx([]byte("hello"))
	sig0, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig0}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 1)
	assert.Equal(t, key.PublicKey().Condition(), signers[0])

	nonce, err := NextNonce(db, key.PublicKey().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 1, nonce)

	// Replay of the very same signature must fail.
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	// Signed for a different chain.
	sig1, err := SignTx(key, tx, "other-chain", 1)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig1}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrSignature.Is(err), "%+v", err)

	// Signature of another key presented with our public key.
	forged, err := SignTx(other, tx, chainID, 1)
	require.NoError(t, err)
	forged.Pubkey = key.PublicKey()
	tx.Signatures = []*StdSignature{forged}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrSignature.Is(err), "%+v", err)

	// Two signers, each with its own sequence.
	sig1, err = SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	sigOther, err := SignTx(other, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig1, sigOther}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Len(t, signers, 2)

	nonce, err = NextNonce(db, key.PublicKey().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 2, nonce)
	nonce, err = NextNonce(db, other.PublicKey().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 1, nonce)
}

func TestSignatureValidation(t *testing.T) {
	key := vaulttest.NewKey()
	sig, err := key.Sign([]byte("foo"))
	require.NoError(t, err)

	cases := map[string]struct {
		sig     StdSignature
		wantErr *errors.Error
	}{
		"valid":             {sig: StdSignature{Pubkey: key.PublicKey(), Signature: sig}},
		"negative sequence": {sig: StdSignature{Pubkey: key.PublicKey(), Signature: sig, Sequence: -2}, wantErr: ErrInvalidSequence},
		"missing pubkey":    {sig: StdSignature{Signature: sig}, wantErr: errors.ErrUnauthorized},
		"missing signature": {sig: StdSignature{Pubkey: key.PublicKey()}, wantErr: errors.ErrUnauthorized},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.sig.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
