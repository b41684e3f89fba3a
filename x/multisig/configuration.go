package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

const configPkg = "multisig"

// Configuration is the package configuration stored with gconf.
type Configuration struct {
	// Ticker is the currency of every wallet created with this
	// configuration.
	Ticker string `json:"ticker"`
	// MaxOwners limits the size of the owner set.
	MaxOwners uint32 `json:"max_owners"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when no configuration was stored.
func DefaultConfiguration() Configuration {
	return Configuration{
		Ticker:    "IOV",
		MaxOwners: 32,
	}
}

// Marshal serializes the configuration using the binary codec.
func (c *Configuration) Marshal() ([]byte, error) {
	return vault.Marshal(c)
}

// Unmarshal loads the configuration from its binary representation.
func (c *Configuration) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, c)
}

// Validate requires a valid ticker and room for the minimal owner set.
func (c *Configuration) Validate() error {
	var errs error
	if !coin.IsCC(c.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	if c.MaxOwners < MinimumOwners {
		errs = errors.Append(errs, errors.Field("MaxOwners", errors.ErrInput, "must be at least %d", MinimumOwners))
	}
	return errs
}

// LoadConfiguration returns the stored configuration, or the default one if
// none was stored.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, err
	}
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db gconf.Store, conf Configuration) error {
	return gconf.Save(db, configPkg, &conf)
}
