package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/multisig"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/utils"
)

// Authenticator returns the authentication shared by all handlers: the
// signers verified by the sigs decorator.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns the decorators every transaction passes through before it
// is routed. Signatures are verified, and nonces bumped, outside of the
// savepoint, so a failing message still consumes the nonce. Unsigned
// transactions pass, as executing a wallet transaction needs no signer.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator().AllowMissingSigs(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Routes registers the handlers of all extensions. Wallets keep their
// balances with the given cash controller.
func Routes(r vault.Registry, auth x.Authenticator, bank cash.Controller) {
	cash.RegisterRoutes(r, auth, bank)
	sigs.RegisterRoutes(r, auth)
	multisig.RegisterRoutes(r, auth, multisig.NewController(bank, nil))
}

// Stack returns the complete handler of the application.
func Stack() vault.Handler {
	r := NewRouter()
	Routes(r, Authenticator(), cash.NewController(cash.NewBucket()))
	return Chain().WithHandler(r)
}

// QueryRouter returns a router for all buckets: "/cash", "/auth",
// "/wallets", "/transactions" and "/approvals".
func QueryRouter() vault.QueryRouter {
	r := vault.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		multisig.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions. Balances are
// loaded before wallets.
func Initializers() vault.Initializer {
	return vault.MultiInitializer{
		cash.Initializer{},
		multisig.Initializer{},
	}
}

// New returns the application over given store.
func New(name string, db vault.CommitKVStore) (*Application, error) {
	return NewApplication(name, db, TxDecoder, Stack(), QueryRouter(), Initializers())
}
