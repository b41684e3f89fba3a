package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the balance of a single address.
type Set struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// Marshal serializes the set using the binary codec.
func (s *Set) Marshal() ([]byte, error) {
	return vault.Marshal(s)
}

// Unmarshal loads the set from its binary representation.
func (s *Set) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, s)
}

// Validate requires that all coins are in alphabetical order, none of them
// is zero and none of them is negative.
func (s *Set) Validate() error {
	if err := s.Coins.Validate(); err != nil {
		return err
	}
	if !s.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{Coins: s.Coins.Clone()}
}

// Contains returns true if the set holds at least given amount.
func (s *Set) Contains(c coin.Coin) bool {
	return s.Coins.Contains(c)
}

// IsEmpty returns true if the set holds no value.
func (s *Set) IsEmpty() bool {
	return s.Coins.IsEmpty()
}

// Add modifies the set to add coin c.
func (s *Set) Add(c coin.Coin) error {
	cs, err := s.Coins.Add(c)
	if err != nil {
		return err
	}
	s.Coins = cs
	return nil
}

// Subtract modifies the set to remove coin c. It fails with
// errors.ErrInsufficientAmount if the set does not hold enough.
func (s *Set) Subtract(c coin.Coin) error {
	if !s.Coins.Contains(c) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "has %s, needs %s", s.Coins.Get(c.Ticker), c)
	}
	cs, err := s.Coins.Subtract(c)
	if err != nil {
		return err
	}
	s.Coins = cs
	return nil
}

// NewWallet creates an empty wallet object for given address.
func NewWallet(key vault.Address) orm.Object {
	return orm.NewSimpleObj(key, new(Set))
}

// WalletWith creates a wallet holding given coins.
func WalletWith(key vault.Address, coins ...*coin.Coin) (orm.Object, error) {
	obj := NewWallet(key)
	set := AsSet(obj)
	for _, c := range coins {
		if c == nil {
			continue
		}
		if err := set.Add(*c); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// AsSet returns the balance stored in given object. A nil object is an
// empty balance.
func AsSet(obj orm.Object) *Set {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Set)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Save enforces the proper type
func (b Bucket) Save(db vault.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Set); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetOrCreate returns the wallet stored under given address, or a new empty
// wallet if none exists.
func (b Bucket) GetOrCreate(db vault.KVStore, key vault.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewWallet(key)
	}
	return obj, nil
}
