package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorator
	ok, ov := []byte("demo"), []byte("data")
	// written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.Wrap(errors.ErrState, "something went wrong")

	cases := map[string]struct {
		save    Savepoint
		err     error
		check   bool
		written [][]byte
		missing [][]byte
	}{
		"disabled savepoint keeps writes of a failed check": {
			save:    NewSavepoint(),
			err:     derr,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back failed check": {
			save:    NewSavepoint().OnCheck(),
			err:     derr,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back failed deliver": {
			save:    NewSavepoint().OnDeliver(),
			err:     derr,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			err:     derr,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			err:     derr,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			h := &vaulttest.Handler{
				CheckErr:   tc.err,
				DeliverErr: tc.err,
				WriteKey:   nk,
				WriteValue: nv,
			}

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, h)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, h)
			}
			if tc.err != nil {
				assert.True(t, errors.ErrState.Is(err))
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

func TestSavepointOnNonCacheableStore(t *testing.T) {
	kv := &plainStore{KVStore: store.MemStore()}
	h := &vaulttest.Handler{
		DeliverErr: fmt.Errorf("fail"),
		WriteKey:   []byte("k"),
		WriteValue: []byte("v"),
	}

	_, err := NewSavepoint().OnDeliver().Deliver(context.Background(), kv, nil, h)
	require.Error(t, err)

	// Without a cache wrap there is nothing to roll back.
	has, err := kv.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}

// plainStore hides the CacheWrap method of the wrapped store.
type plainStore struct {
	vault.KVStore
}
