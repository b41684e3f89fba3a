package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/cash"
)

// Controller implements the wallet operations on top of a store. It holds
// no state of its own, so the Wallet API and the message handlers share
// it.
type Controller struct {
	contracts ContractBucket
	ledger    *TransactionLedger
	approvals *ApprovalEngine
	executor  *ExecutionController
	cash      cash.Controller
}

// NewController returns a controller keeping custodial balances with given
// cash controller. Executed transactions are transferred with t, or with a
// BankTransfer when t is nil.
func NewController(cashCtrl cash.Controller, t Transferer) *Controller {
	if t == nil {
		t = NewBankTransfer(cashCtrl)
	}
	ledger := NewTransactionLedger(cashCtrl)
	return &Controller{
		contracts: NewContractBucket(),
		ledger:    ledger,
		approvals: NewApprovalEngine(ledger),
		executor:  NewExecutionController(ledger, t),
		cash:      cashCtrl,
	}
}

// CreateWallet validates the owner set, stores the wallet and moves the
// initial funding from funder to the custodial address. A nil or zero
// funding moves nothing.
func (c *Controller) CreateWallet(
	db vault.KVStore,
	owners []vault.Address,
	requiredApprovals uint32,
	funder vault.Address,
	funding *coin.Coin,
) (*Contract, error) {
	registry, err := NewOwnerRegistry(owners, requiredApprovals)
	if err != nil {
		return nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	if registry.Len() > int(conf.MaxOwners) {
		return nil, errors.Wrapf(errors.ErrInput, "%d owners, at most %d allowed", registry.Len(), conf.MaxOwners)
	}

	contract := &Contract{
		Owners:            registry.Owners(),
		RequiredApprovals: registry.RequiredApprovals(),
		Ticker:            conf.Ticker,
	}
	if _, err := c.contracts.Create(db, contract); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	if funding != nil && !funding.IsZero() {
		if err := c.Deposit(db, contract, funder, *funding); err != nil {
			return nil, errors.Wrap(err, "funding")
		}
	}
	return contract, nil
}

// Load returns the stored wallet together with its owner registry.
func (c *Controller) Load(db vault.ReadOnlyKVStore, walletID []byte) (*Contract, *OwnerRegistry, error) {
	contract, err := c.contracts.GetContract(db, walletID)
	if err != nil {
		return nil, nil, err
	}
	registry, err := NewOwnerRegistry(contract.Owners, contract.RequiredApprovals)
	if err != nil {
		return nil, nil, errors.Wrap(err, "stored wallet")
	}
	return contract, registry, nil
}

// Propose stores a new transaction, approved by its proposer.
func (c *Controller) Propose(db vault.KVStore, walletID []byte, caller, to vault.Address, amount coin.Coin) (*Transaction, error) {
	contract, registry, err := c.Load(db, walletID)
	if err != nil {
		return nil, err
	}
	tx, err := c.ledger.Propose(db, contract, registry, caller, to, amount)
	if err != nil {
		return nil, err
	}
	return c.approvals.Approve(db, registry, caller, walletID, tx.ID)
}

// Approve records the approval of the caller.
func (c *Controller) Approve(db vault.KVStore, walletID []byte, caller vault.Address, id TransactionID) (*Transaction, error) {
	_, registry, err := c.Load(db, walletID)
	if err != nil {
		return nil, err
	}
	return c.approvals.Approve(db, registry, caller, walletID, id)
}

// Execute transfers an approved transaction. Anyone can trigger it.
func (c *Controller) Execute(ctx vault.Context, db vault.KVStore, walletID []byte, id TransactionID) (*Transaction, error) {
	contract, _, err := c.Load(db, walletID)
	if err != nil {
		return nil, err
	}
	return c.executor.Execute(ctx, db, contract, id)
}

// Deposit moves the amount from the sender to the custodial address. Only
// the wallet currency is accepted.
func (c *Controller) Deposit(db vault.KVStore, contract *Contract, from vault.Address, amount coin.Coin) error {
	if amount.Ticker != contract.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "wallet accepts %s only", contract.Ticker)
	}
	return c.cash.MoveCoins(db, from, contract.Address, amount)
}

// HasApproved returns true if the owner approved the transaction.
func (c *Controller) HasApproved(db vault.ReadOnlyKVStore, walletID []byte, id TransactionID, owner vault.Address) (bool, error) {
	return c.approvals.HasApproved(db, walletID, id, owner)
}

// Transaction returns the transaction with given id.
func (c *Controller) Transaction(db vault.ReadOnlyKVStore, walletID []byte, id TransactionID) (*Transaction, error) {
	return c.ledger.Get(db, walletID, id)
}

// Transactions returns all transactions of the wallet in id order.
func (c *Controller) Transactions(db vault.ReadOnlyKVStore, walletID []byte) ([]*Transaction, error) {
	return c.ledger.List(db, walletID)
}

// Balance returns the custodial balance of the wallet.
func (c *Controller) Balance(db vault.ReadOnlyKVStore, contract *Contract) (coin.Coin, error) {
	coins, err := c.cash.Balance(db, contract.Address)
	if err != nil {
		return coin.Coin{}, err
	}
	return coins.Get(contract.Ticker), nil
}
