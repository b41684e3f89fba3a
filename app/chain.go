package app

import (
	"reflect"

	"github.com/iov-one/vault"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []vault.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    app.NewRouter(),
  )
*/
func ChainDecorators(chain ...vault.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil
// decorators are skipped.
func (d Decorators) Chain(chain ...vault.Decorator) Decorators {
	next := make([]vault.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

func isNil(d vault.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h vault.Handler) vault.Handler {
	// The first decorator of the chain is the outermost one.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step executes a decorator around a specific Handler.
type step struct {
	d    vault.Decorator
	next vault.Handler
}

var _ vault.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
