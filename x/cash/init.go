package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. The address
// uses the vault.Address text encoding.
type GenesisAccount struct {
	Address vault.Address `json:"address"`
	Coins   coin.Coins    `json:"coins"`
}

// Initializer fulfils the vault.Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(ctx vault.Context, opts vault.Options, db vault.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		wallet, err := WalletWith(acct.Address, acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.Save(db, wallet); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	vault.GetLogger(ctx).Info("cash genesis loaded", "accounts", len(accts))
	return nil
}
