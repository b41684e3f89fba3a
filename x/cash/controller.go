package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that move value around.
type Controller interface {
	CoinMover
	Balance(vault.ReadOnlyKVStore, vault.Address) (coin.Coins, error)
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. This operation is atomic.
	MoveCoins(vault.KVStore, vault.Address, vault.Address, coin.Coin) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller that keeps balances in given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address. An address that never
// received anything has an empty balance.
func (c BaseController) Balance(db vault.ReadOnlyKVStore, addr vault.Address) (coin.Coins, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load balance")
	}
	if obj == nil {
		return nil, nil
	}
	return AsSet(obj).Coins, nil
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient coins, it fails. Nothing is written on
// failure.
func (c BaseController) MoveCoins(db vault.KVStore, src vault.Address, dest vault.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if err := AsSet(sender).Subtract(amount); err != nil {
		return err
	}

	// Moving to self only needs the balance check.
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient")
	}
	if err := AsSet(recipient).Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet or the balance would become
// negative.
func (c BaseController) IssueCoins(db vault.KVStore, dest vault.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := AsSet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
