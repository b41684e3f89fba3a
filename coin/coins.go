package coin

import (
	"sort"

	"github.com/iov-one/vault/errors"
)

// Coins represents a set of coins of distinct currencies. A normalized set
// is ordered by ticker and holds no zero values. All operations keep the set
// normalized.
type Coins []*Coin

// CombineCoins creates a normalized Coins containing all given coins,
// regardless of input order and duplicates.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set, with the holdings increased by c. The receiver is
// never modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	res := cs.Clone()
	has, i := res.findCoin(c.ID())
	if has == nil {
		res = append(res, nil)
		copy(res[i+1:], res[i:])
		cpy := c
		res[i] = &cpy
		return res, nil
	}

	sum, err := has.Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &sum
	return res, nil
}

// Subtract returns a new set, with the holdings decreased by c.
// The resulting Coins may have negative amounts
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine will create a new Coins adding all the coins of cs and o
// together.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs
	for _, c := range o {
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	if c.IsZero() {
		return true
	}
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return false
	}
	return has.IsGTE(c)
}

// Get returns the amount held in given currency. A currency not present in
// the set has a zero value.
func (cs Coins) Get(ticker string) Coin {
	if has, _ := cs.findCoin(ticker); has != nil {
		return *has
	}
	return Coin{Ticker: ticker}
}

// findCoin returns the coin with given ticker and its index. When not found
// the index is where the coin should be inserted.
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= ticker
	})
	if i < len(cs) && cs[i].Ticker == ticker {
		return cs[i], i
	}
	return nil, i
}

// IsEmpty returns if nothing is in the Coins
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive returns true there is at least one coin and all coins are
// positive
func (cs Coins) IsPositive() bool {
	return !cs.IsEmpty() && cs.IsNonNegative()
}

// IsNonNegative returns true if no coin is negative. An empty set is
// non negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both Coins contain same coins
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of unique currencies in the Coins
func (cs Coins) Count() int {
	return len(cs)
}

// Validate requires that all coins are in alphabetical order and that each
// coin is valid in its own right. Zero amounts must not be present.
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		if c == nil {
			err = errors.Append(err, errors.Wrap(errors.ErrEmpty, "nil coin"))
			continue
		}
		err = errors.Append(err, c.Validate())
		if c.IsZero() {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "zero %s coin", c.Ticker))
		}
		if c.Ticker <= last && last != "" {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "%s not sorted", c.Ticker))
		}
		last = c.Ticker
	}
	return err
}

// NormalizeCoins merges coins of the same currency, drops zero values and
// sorts the result by ticker. A normalized input is returned as is.
func NormalizeCoins(cs Coins) (Coins, error) {
	if isNormalized(cs) {
		if len(cs) == 0 {
			return nil, nil
		}
		return cs, nil
	}

	var res Coins
	for _, c := range cs {
		if c == nil {
			continue
		}
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res, nil
}

// isNormalized check if coins collection is in a normalized form. This is a
// cheap operation.
func isNormalized(cs Coins) bool {
	for i, c := range cs {
		if IsEmpty(c) {
			return false
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return false
		}
	}
	return true
}
