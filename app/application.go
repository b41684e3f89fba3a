package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Application hosts a handler stack on a committed store. Transactions are
// run one at a time: CheckTx against the check cache, DeliverTx against the
// deliver cache. Commit persists everything delivered since the previous
// commit and resets the check cache.
type Application struct {
	mu sync.Mutex

	name        string
	store       *CommitStore
	decoder     vault.TxDecoder
	handler     vault.Handler
	queryRouter vault.QueryRouter
	initializer vault.Initializer

	logger  log.Logger
	chainID string
	// baseContext is valid for the lifetime of the application. It holds
	// the logger and, after genesis, the chain id.
	baseContext vault.Context
	debug       bool
}

// NewApplication loads the chain id from the store, if the genesis was
// already applied.
func NewApplication(
	name string,
	db vault.CommitKVStore,
	decoder vault.TxDecoder,
	handler vault.Handler,
	queryRouter vault.QueryRouter,
	initializer vault.Initializer,
) (*Application, error) {
	chainID, err := loadChainID(db)
	if err != nil {
		return nil, err
	}
	a := &Application{
		name:        name,
		store:       NewCommitStore(db),
		decoder:     decoder,
		handler:     handler,
		queryRouter: queryRouter,
		initializer: initializer,
		chainID:     chainID,
	}
	a.WithLogger(log.NewNopLogger())
	return a, nil
}

// WithLogger sets the logger of the application and of every handler call.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.logger = logger
	a.baseContext = vault.WithLogger(context.Background(), logger)
	if a.chainID != "" {
		a.baseContext = vault.WithChainID(a.baseContext, a.chainID)
	}
	return a
}

// WithDebug controls whether errors that are not registered keep their
// message, see errors.Redact.
func (a *Application) WithDebug(debug bool) *Application {
	a.mu.Lock()
	a.debug = debug
	a.mu.Unlock()
	return a
}

// ChainID returns the chain id set at genesis, or an empty string.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// InitChain applies the genesis. It can be called once in the lifetime of
// a store. The state becomes visible to checks and queries with the next
// Commit.
func (a *Application) InitChain(gen *Genesis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", a.chainID)
	}
	db := a.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		return err
	}
	ctx := vault.WithChainID(a.baseContext, gen.ChainID)
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(ctx, gen.AppState, db); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}
	a.chainID = gen.ChainID
	a.baseContext = ctx
	a.logger.Info("genesis loaded", "chain", gen.ChainID)
	return nil
}

// CheckTx runs the transaction against the check cache.
func (a *Application) CheckTx(raw []byte) (*vault.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.loadTx(raw)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	ctx := vault.WithLogInfo(a.baseContext,
		"call", "check_tx",
		"path", vault.GetPath(tx))
	res, err := a.handler.Check(ctx, a.store.CheckStore(), tx)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return res, nil
}

// DeliverTx runs the transaction against the deliver cache.
func (a *Application) DeliverTx(raw []byte) (*vault.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.loadTx(raw)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	ctx := vault.WithLogInfo(a.baseContext,
		"call", "deliver_tx",
		"path", vault.GetPath(tx))
	res, err := a.handler.Deliver(ctx, a.store.DeliverStore(), tx)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return res, nil
}

// loadTx calls the decoder, and capture any panics
func (a *Application) loadTx(raw []byte) (tx vault.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(raw)
	return
}

// Commit persists all delivered transactions.
func (a *Application) Commit() (vault.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	a.logger.Debug("commit synced",
		"version", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// LastCommit returns the version and hash of the last commit.
func (a *Application) LastCommit() (vault.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.CommitInfo()
}

/*
Query reads the committed state.

Path is "/<bucket>" or "/<bucket>/<index>", optionally followed by
"?prefix" for a prefix query. Data is the key, or the key prefix, to look
up. A query never sees uncommitted writes.
*/
func (a *Application) Query(path string, data []byte) ([]vault.Model, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path, mod := splitPath(path)
	qh := a.queryRouter.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", path)
	}
	return qh.Query(a.store.Committed(), mod, data)
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}
