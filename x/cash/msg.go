package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

func init() {
	vault.RegisterMsg(&SendMsg{}, "cash/SendMsg")
}

const maxMemoSize int = 128

// SendMsg moves coins from the source to the destination address. It is
// also the way to deposit funds on a custodial address.
type SendMsg struct {
	Src    vault.Address `json:"src"`
	Dest   vault.Address `json:"dest"`
	Amount *coin.Coin    `json:"amount"`
	Memo   string        `json:"memo,omitempty"`
}

var _ vault.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Marshal serializes the message using the binary codec.
func (m *SendMsg) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

// Unmarshal loads the message from its binary representation.
func (m *SendMsg) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Src", m.Src.Validate())
	errs = errors.AppendField(errs, "Dest", m.Dest.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrapf(errors.ErrInput, "longer than %d", maxMemoSize))
	}
	return errs
}
