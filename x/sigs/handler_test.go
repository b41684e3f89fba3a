package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpSequence(t *testing.T) {
	key := vaulttest.NewKey()
	signer := key.PublicKey().Condition()

	cases := map[string]struct {
		initial     int64
		known       bool
		conditions  []vault.Condition
		msg         vault.Msg
		wantErr     *errors.Error
		wantNextSeq int64
	}{
		"bump by one": {
			initial:     5,
			known:       true,
			conditions:  []vault.Condition{signer},
			msg:         &BumpSequenceMsg{Increment: 1},
			wantNextSeq: 5,
		},
		"bump by many": {
			initial:     5,
			known:       true,
			conditions:  []vault.Condition{signer},
			msg:         &BumpSequenceMsg{Increment: 100},
			wantNextSeq: 104,
		},
		"unknown signer": {
			conditions: []vault.Condition{signer},
			msg:        &BumpSequenceMsg{Increment: 2},
			wantErr:    errors.ErrNotFound,
		},
		"no signer": {
			known:   true,
			msg:     &BumpSequenceMsg{Increment: 2},
			wantErr: errors.ErrUnauthorized,
		},
		"increment too big": {
			known:      true,
			conditions: []vault.Condition{signer},
			msg:        &BumpSequenceMsg{Increment: 1001},
			wantErr:    errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			if tc.known {
				u := &UserData{Pubkey: key.PublicKey(), Sequence: tc.initial}
				require.NoError(t, b.Save(db, NewUserFrom(u)))
			}

			auth := &vaulttest.Auth{Signers: tc.conditions}
			rt := &testRegistry{}
			RegisterRoutes(rt, auth)
			h := rt.handler

			tx := &vaulttest.Tx{Msg: tc.msg}
			ctx := context.Background()
			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			nonce, err := NextNonce(db, signer.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantNextSeq, nonce)
		})
	}
}

type testRegistry struct {
	handler vault.Handler
}

func (r *testRegistry) Handle(m vault.Msg, h vault.Handler) {
	r.handler = h
}
