package multisig

import (
	"context"

	"github.com/iov-one/vault"
)

type contextKey int // local to the multisig module

const (
	contextKeySession contextKey = iota
)

// session is carried by the context of an operation that holds the store
// guard of a factory. Calls made from within that operation find it and
// work on its store instead of waiting for the guard.
type session struct {
	factory *Factory
	db      vault.KVStore
}

func withSession(ctx vault.Context, f *Factory, db vault.KVStore) vault.Context {
	return context.WithValue(ctx, contextKeySession, &session{factory: f, db: db})
}

func sessionOf(ctx vault.Context, f *Factory) (*session, bool) {
	s, ok := ctx.Value(contextKeySession).(*session)
	if !ok || s.factory != f {
		return nil, false
	}
	return s, true
}

// withStore points the session of ctx, if any, at given store.
func withStore(ctx vault.Context, db vault.KVStore) vault.Context {
	s, ok := ctx.Value(contextKeySession).(*session)
	if !ok {
		return ctx
	}
	return withSession(ctx, s.factory, db)
}
