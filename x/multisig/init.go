package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/x/cash"
)

const optKey = "multisig"

// GenesisWallet is a wallet created at genesis. Funds are issued directly
// to the custodial address.
type GenesisWallet struct {
	Owners            []vault.Address `json:"owners"`
	RequiredApprovals uint32          `json:"required_approvals"`
	Funds             *coin.Coin      `json:"funds,omitempty"`
}

// Initializer fulfils the vault.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis stores the package configuration found under
// conf.multisig, if any, and creates the listed wallets in order. The
// first wallet gets id 1.
func (Initializer) FromGenesis(ctx vault.Context, opts vault.Options, db vault.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, configPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "configuration")
	}

	var wallets []GenesisWallet
	if err := opts.ReadOptions(optKey, &wallets); err != nil {
		return err
	}

	bank := cash.NewController(cash.NewBucket())
	control := NewController(bank, nil)
	for i, w := range wallets {
		contract, err := control.CreateWallet(db, w.Owners, w.RequiredApprovals, nil, nil)
		if err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		if w.Funds == nil || w.Funds.IsZero() {
			continue
		}
		if w.Funds.Ticker != contract.Ticker {
			return errors.Wrapf(errors.ErrCurrency, "wallet %d accepts %s only", i, contract.Ticker)
		}
		if err := bank.IssueCoins(db, contract.Address, *w.Funds); err != nil {
			return errors.Wrapf(err, "wallet %d funds", i)
		}
	}
	vault.GetLogger(ctx).Info("multisig genesis loaded", "wallets", len(wallets))
	return nil
}
