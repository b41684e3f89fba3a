package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Genesis is the initial state of an application.
type Genesis struct {
	ChainID string `json:"chain_id"`
	// AppState holds one entry per initializer, each parsed by the
	// extension that owns the key.
	AppState vault.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file in JSON format.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	return ParseGenesis(raw)
}

// ParseGenesis decodes a genesis document.
func ParseGenesis(raw []byte) (*Genesis, error) {
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	if !vault.IsValidChainID(gen.ChainID) {
		return nil, errors.Field("ChainID", errors.ErrInput, "invalid chain id %q", gen.ChainID)
	}
	return &gen, nil
}
