package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test/log"}}

	cases := map[string]struct {
		handler  *vaulttest.Handler
		check    bool
		wantErr  bool
		wantLine string
	}{
		"successful check is logged at debug": {
			handler:  &vaulttest.Handler{CheckResult: vault.CheckResult{Log: "checked"}},
			check:    true,
			wantLine: "D[",
		},
		"successful deliver is logged at info": {
			handler:  &vaulttest.Handler{DeliverResult: vault.DeliverResult{Log: "delivered"}},
			wantLine: "I[",
		},
		"failure is logged at error": {
			handler:  &vaulttest.Handler{DeliverErr: errors.Wrap(errors.ErrUnauthorized, "nope")},
			wantErr:  true,
			wantLine: "E[",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(&buf)), log.AllowDebug())
			ctx := vault.WithLogger(context.Background(), logger)
			db := store.MemStore()

			var err error
			if tc.check {
				_, err = NewLogging().Check(ctx, db, tx, tc.handler)
			} else {
				_, err = NewLogging().Deliver(ctx, db, tx, tc.handler)
			}
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			out := buf.String()
			assert.True(t, strings.HasPrefix(out, tc.wantLine), out)
			assert.Contains(t, out, "path=test/log")
			assert.Contains(t, out, "duration=")
			if tc.wantErr {
				assert.Contains(t, out, "code=2")
			}
		})
	}
}
