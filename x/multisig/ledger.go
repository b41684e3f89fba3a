package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Balancer reads the balance of an address. cash.Controller implements it.
type Balancer interface {
	Balance(vault.ReadOnlyKVStore, vault.Address) (coin.Coins, error)
}

// TransactionLedger stores the transactions proposed for a wallet.
type TransactionLedger struct {
	txs      TransactionBucket
	balances Balancer
}

// NewTransactionLedger returns a ledger that checks proposals against the
// balances read from given source.
func NewTransactionLedger(balances Balancer) *TransactionLedger {
	return &TransactionLedger{
		txs:      NewTransactionBucket(),
		balances: balances,
	}
}

// Propose stores a new transaction that is not executed and has no
// approvals. The amount must be covered by the current custodial balance.
func (l *TransactionLedger) Propose(
	db vault.KVStore,
	contract *Contract,
	registry *OwnerRegistry,
	proposer vault.Address,
	to vault.Address,
	amount coin.Coin,
) (*Transaction, error) {
	if !registry.IsOwner(proposer) {
		return nil, errors.Wrapf(ErrNotOwner, "proposer %s", proposer)
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	if err := amount.Validate(); err != nil {
		return nil, errors.Wrap(err, "amount")
	}
	if !amount.IsNonNegative() {
		return nil, errors.Wrapf(errors.ErrAmount, "negative amount %s", amount)
	}
	if amount.Ticker != contract.Ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "wallet accepts %s only", contract.Ticker)
	}

	balance, err := l.balances.Balance(db, contract.Address)
	if err != nil {
		return nil, err
	}
	if !balance.Contains(amount) {
		return nil, errors.Wrapf(ErrNotEnoughBalance, "has %s, needs %s", balance.Get(amount.Ticker), amount)
	}

	id, err := l.txs.Sequence(contract.ID).NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire transaction id")
	}
	tx := &Transaction{
		WalletID: contract.ID,
		ID:       TransactionID(id),
		To:       to,
		Amount:   amount.Clone(),
	}
	if err := l.txs.Put(db, tx); err != nil {
		return nil, errors.Wrap(err, "cannot store transaction")
	}
	return tx, nil
}

// Get returns the transaction with given id. It fails with
// ErrInvalidTransactionID if the id was never allocated.
func (l *TransactionLedger) Get(db vault.ReadOnlyKVStore, walletID []byte, id TransactionID) (*Transaction, error) {
	tx, err := l.txs.GetTransaction(db, walletID, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.Wrapf(ErrInvalidTransactionID, "transaction %d", id)
	}
	return tx, nil
}

// Save writes back a transaction returned by Get.
func (l *TransactionLedger) Save(db vault.KVStore, tx *Transaction) error {
	return l.txs.Put(db, tx)
}

// List returns all transactions of the wallet in id order.
func (l *TransactionLedger) List(db vault.ReadOnlyKVStore, walletID []byte) ([]*Transaction, error) {
	n, err := l.Count(db, walletID)
	if err != nil {
		return nil, err
	}
	res := make([]*Transaction, 0, n)
	for id := TransactionID(1); uint64(id) <= n; id++ {
		tx, err := l.Get(db, walletID, id)
		if err != nil {
			return nil, err
		}
		res = append(res, tx)
	}
	return res, nil
}

// Count returns the number of transactions proposed for the wallet. Ids are
// dense, so this is also the id of the latest transaction.
func (l *TransactionLedger) Count(db vault.ReadOnlyKVStore, walletID []byte) (uint64, error) {
	n, err := l.txs.Sequence(walletID).Latest(db)
	if err != nil {
		return 0, errors.Wrap(err, "transaction sequence")
	}
	return uint64(n), nil
}
