package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]vault.Handler
}

var _ vault.Registry = (*Router)(nil)
var _ vault.Handler = (*Router)(nil)

// NewRouter returns a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]vault.Handler),
	}
}

// Handle registers a handler for the path of given message. It panics if
// the path is invalid or already taken.
func (r *Router) Handle(m vault.Msg, h vault.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Check dispatches to the handler of the message path.
func (r *Router) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the handler of the message path.
func (r *Router) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) handler(tx vault.Tx) (vault.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}
