/*
Package coin defines the value type moved between custodial balances.

A Coin is a fixed point number with nine fractional digits, tagged with a
currency ticker. All arithmetic is done on integers and fails loudly with
errors.ErrOverflow instead of wrapping around.
*/
package coin

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxInt is the largest whole value we accept
	MaxInt int64 = 999999999999999 // 10^15-1
	// MinInt is the lowest whole value we accept
	MinInt = -MaxInt

	// FracUnit is the amount of fractional units in one whole unit.
	FracUnit int64 = 1000000000
	// MaxFrac is the highest possible fractional value
	MaxFrac = FracUnit - 1
	// MinFrac is the lowest possible fractional value
	MinFrac = -MaxFrac

	fracDigits = 9
)

// Coin is an amount of a single currency.
type Coin struct {
	Whole      int64  `json:"whole"`
	Fractional int64  `json:"fractional"`
	Ticker     string `json:"ticker"`
}

// NewCoin creates a new coin object
func NewCoin(whole int64, fractional int64, ticker string) Coin {
	return Coin{
		Whole:      whole,
		Fractional: fractional,
		Ticker:     ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// Marshal serializes the coin using the binary codec.
func (c *Coin) Marshal() ([]byte, error) {
	return vault.Marshal(c)
}

// Unmarshal loads the coin from its binary representation.
func (c *Coin) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, c)
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different currencies, or if the combination
// would cause an overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	// A zero value without a ticker is a neutral element.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	c.Whole += o.Whole
	c.Fractional += o.Fractional
	return c.normalize()
}

// Negative returns the opposite coins value
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker:     c.Ticker,
		Whole:      -c.Whole,
		Fractional: -c.Fractional,
	}
}

// Subtract given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare will check values of two coins, without inspecting the currency
// code. Both coins must be normalized.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Whole > o.Whole:
		return 1
	case c.Whole < o.Whole:
		return -1
	case c.Fractional > o.Fractional:
		return 1
	case c.Fractional < o.Fractional:
		return -1
	}
	return 0
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker &&
		c.Whole == o.Whole &&
		c.Fractional == o.Fractional
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Whole > 0 || (c.Whole == 0 && c.Fractional > 0)
}

// IsNonNegative returns true if the value is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Whole >= 0 && c.Fractional >= 0
}

// IsGTE returns true if c is same type and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Compare(o) >= 0
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate ensures that the coin is in the valid range and has a valid
// currency code. It accepts negative values, so you may want to make other
// checks in your business logic.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Field("Ticker", errors.ErrCurrency, "invalid currency %q", c.Ticker))
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		err = errors.Append(err, errors.Field("Whole", errors.ErrOverflow, "out of range"))
	}
	if c.Fractional < MinFrac || c.Fractional > MaxFrac {
		err = errors.Append(err, errors.Field("Fractional", errors.ErrOverflow, "out of range"))
	}
	if c.Whole != 0 && c.Fractional != 0 && (c.Whole > 0) != (c.Fractional > 0) {
		err = errors.Append(err, errors.Field("Fractional", errors.ErrState, "mismatched sign"))
	}
	return err
}

// normalize moves the fractional overflow into the whole part and makes
// both parts carry the same sign.
func (c Coin) normalize() (Coin, error) {
	c.Whole += c.Fractional / FracUnit
	c.Fractional = c.Fractional % FracUnit

	switch {
	case c.Whole > 0 && c.Fractional < 0:
		c.Whole--
		c.Fractional += FracUnit
	case c.Whole < 0 && c.Fractional > 0:
		c.Whole++
		c.Fractional -= FracUnit
	}

	if c.Whole < MinInt || c.Whole > MaxInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d whole units", c.Whole)
	}
	return c, nil
}

// String provides a human readable representation of the coin, for example
// "12.5 IOV". For a valid coin the result can be parsed back with
// ParseHumanFormat.
func (c Coin) String() string {
	if n, err := c.normalize(); err == nil {
		c = n
	}

	var b strings.Builder
	if c.Whole == 0 && c.Fractional < 0 {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(c.Whole, 10))
	if f := c.Fractional; f != 0 {
		if f < 0 {
			f = -f
		}
		s := strconv.FormatInt(f, 10)
		s = strings.Repeat("0", fracDigits-len(s)) + s
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(s, "0"))
	}
	if c.Ticker != "" {
		b.WriteByte(' ')
		b.WriteString(c.Ticker)
	}
	return b.String()
}

var humanCoinFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)(?:\.(\d{1,9}))?\s*([A-Z]{3,4})$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<whole>[.<fractional>] <ticker>"
// At most nine fractional digits are accepted.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}

	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid whole value: %s", err)
	}
	var frac int64
	if m[3] != "" {
		digits := m[3] + strings.Repeat("0", fracDigits-len(m[3]))
		if frac, err = strconv.ParseInt(digits, 10, 64); err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInput, "invalid fractional value: %s", err)
		}
	}
	if m[1] == "-" {
		whole, frac = -whole, -frac
	}
	return NewCoin(whole, frac, m[4]), nil
}

// UnmarshalJSON accepts both the human readable string format and the
// object notation with whole, fractional and ticker attributes.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// An alias type drops the UnmarshalJSON method and avoids recursion.
	type plainCoin Coin
	var pc plainCoin
	if err := json.Unmarshal(raw, &pc); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	*c = Coin(pc)
	return nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
