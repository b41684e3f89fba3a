package multisig

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	a, b, c, d := recipient(), recipient(), recipient(), recipient()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		check   func(t *testing.T, db vault.KVStore)
	}{
		"nothing": {
			genesis: `{}`,
			check: func(t *testing.T, db vault.KVStore) {
				conf, err := LoadConfiguration(db)
				require.NoError(t, err)
				assert.Equal(t, DefaultConfiguration(), conf)
			},
		},
		"two wallets": {
			genesis: fmt.Sprintf(`{
				"multisig": [
					{"owners": ["%s", "%s", "%s"], "required_approvals": 2, "funds": "12 IOV"},
					{"owners": ["%s", "%s", "%s", "%s"], "required_approvals": 3}
				]
			}`, a, b, c, a, b, c, d),
			check: func(t *testing.T, db vault.KVStore) {
				contracts := NewContractBucket()
				first, err := contracts.GetContract(db, vaulttest.SequenceID(1))
				require.NoError(t, err)
				assert.Equal(t, []vault.Address{a, b, c}, first.Owners)
				assert.Equal(t, uint32(2), first.RequiredApprovals)
				assert.Equal(t, "IOV", first.Ticker)

				second, err := contracts.GetContract(db, vaulttest.SequenceID(2))
				require.NoError(t, err)
				assert.Len(t, second.Owners, 4)

				bank := cash.NewController(cash.NewBucket())
				assert.Equal(t, iov(12), balanceOf(t, bank, db, first.Address))
				assert.True(t, balanceOf(t, bank, db, second.Address).IsZero())
			},
		},
		"configured ticker": {
			genesis: fmt.Sprintf(`{
				"conf": {"multisig": {"ticker": "ETH", "max_owners": 5}},
				"multisig": [
					{"owners": ["%s", "%s", "%s"], "required_approvals": 3, "funds": "1 ETH"}
				]
			}`, a, b, c),
			check: func(t *testing.T, db vault.KVStore) {
				conf, err := LoadConfiguration(db)
				require.NoError(t, err)
				assert.Equal(t, Configuration{Ticker: "ETH", MaxOwners: 5}, conf)

				w, err := NewContractBucket().GetContract(db, vaulttest.SequenceID(1))
				require.NoError(t, err)
				assert.Equal(t, "ETH", w.Ticker)
			},
		},
		"funds in other currency": {
			genesis: fmt.Sprintf(`{"multisig": [
				{"owners": ["%s", "%s", "%s"], "required_approvals": 2, "funds": "1 ETH"}
			]}`, a, b, c),
			wantErr: errors.ErrCurrency,
		},
		"invalid threshold": {
			genesis: fmt.Sprintf(`{"multisig": [
				{"owners": ["%s", "%s", "%s", "%s"], "required_approvals": 2}
			]}`, a, b, c, d),
			wantErr: ErrInvalidNumberOfRequiredApprovals,
		},
		"invalid configuration": {
			genesis: `{"conf": {"multisig": {"ticker": "ETH", "max_owners": 2}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(context.Background(), opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.check != nil && err == nil {
				tc.check(t, db)
			}
		})
	}
}
