package vault

import (
	"encoding/json"

	"github.com/iov-one/vault/errors"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "propose a transaction" or "approve a transaction".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication or logging to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// CheckResult captures any non-error info from running a Check.
type CheckResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// DeliverResult captures any non-error info from running a Deliver.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options are the app options.
// Each extension can look up its key and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(ctx Context, opts Options, kv KVStore) error
}

// MultiInitializer is used to group multiple initializers into one.
type MultiInitializer []Initializer

var _ Initializer = MultiInitializer(nil)

// FromGenesis runs all initializers in order and stops on the first error.
func (m MultiInitializer) FromGenesis(ctx Context, opts Options, kv KVStore) error {
	for _, in := range m {
		if err := in.FromGenesis(ctx, opts, kv); err != nil {
			return err
		}
	}
	return nil
}
