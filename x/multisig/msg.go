package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

func init() {
	vault.RegisterMsg(&CreateWalletMsg{}, "multisig/CreateWalletMsg")
	vault.RegisterMsg(&ProposeTransactionMsg{}, "multisig/ProposeTransactionMsg")
	vault.RegisterMsg(&ApproveTransactionMsg{}, "multisig/ApproveTransactionMsg")
	vault.RegisterMsg(&ExecuteTransactionMsg{}, "multisig/ExecuteTransactionMsg")
}

// CreateWalletMsg creates a wallet funded by the signer.
type CreateWalletMsg struct {
	Owners            []vault.Address `json:"owners"`
	RequiredApprovals uint32          `json:"required_approvals"`
	// Funds is optional. When set, it is moved from the signer to the new
	// wallet.
	Funds *coin.Coin `json:"funds,omitempty"`
}

var _ vault.Msg = (*CreateWalletMsg)(nil)

// Path returns the routing path for this message.
func (CreateWalletMsg) Path() string {
	return "multisig/create_wallet"
}

// Marshal serializes the message using the binary codec.
func (m *CreateWalletMsg) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

// Unmarshal loads the message from its binary representation.
func (m *CreateWalletMsg) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, m)
}

// Validate applies the owner set rules of NewOwnerRegistry.
func (m *CreateWalletMsg) Validate() error {
	if _, err := NewOwnerRegistry(m.Owners, m.RequiredApprovals); err != nil {
		return err
	}
	if m.Funds != nil {
		if err := m.Funds.Validate(); err != nil {
			return errors.Field("Funds", err, "")
		}
		if !m.Funds.IsNonNegative() {
			return errors.Field("Funds", errors.ErrAmount, "negative")
		}
	}
	return nil
}

// ProposeTransactionMsg proposes a transfer from a wallet.
type ProposeTransactionMsg struct {
	WalletID []byte        `json:"wallet_id"`
	To       vault.Address `json:"to"`
	Amount   *coin.Coin    `json:"amount"`
}

var _ vault.Msg = (*ProposeTransactionMsg)(nil)

// Path returns the routing path for this message.
func (ProposeTransactionMsg) Path() string {
	return "multisig/propose"
}

// Marshal serializes the message using the binary codec.
func (m *ProposeTransactionMsg) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

// Unmarshal loads the message from its binary representation.
func (m *ProposeTransactionMsg) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, m)
}

// Validate requires a wallet reference and an amount. The recipient and
// the amount value are checked by the ledger after the proposer, so that a
// non-owner is always told it is not an owner.
func (m *ProposeTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "WalletID", validateWalletID(m.WalletID))
	if m.Amount == nil {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

// ApproveTransactionMsg approves a transaction as the signer.
type ApproveTransactionMsg struct {
	WalletID      []byte        `json:"wallet_id"`
	TransactionID TransactionID `json:"transaction_id"`
}

var _ vault.Msg = (*ApproveTransactionMsg)(nil)

// Path returns the routing path for this message.
func (ApproveTransactionMsg) Path() string {
	return "multisig/approve"
}

// Marshal serializes the message using the binary codec.
func (m *ApproveTransactionMsg) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

// Unmarshal loads the message from its binary representation.
func (m *ApproveTransactionMsg) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, m)
}

// Validate requires a wallet reference. Transaction ids are resolved by
// the ledger.
func (m *ApproveTransactionMsg) Validate() error {
	return errors.Field("WalletID", validateWalletID(m.WalletID), "")
}

// ExecuteTransactionMsg executes a transaction that reached its threshold.
type ExecuteTransactionMsg struct {
	WalletID      []byte        `json:"wallet_id"`
	TransactionID TransactionID `json:"transaction_id"`
}

var _ vault.Msg = (*ExecuteTransactionMsg)(nil)

// Path returns the routing path for this message.
func (ExecuteTransactionMsg) Path() string {
	return "multisig/execute"
}

// Marshal serializes the message using the binary codec.
func (m *ExecuteTransactionMsg) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

// Unmarshal loads the message from its binary representation.
func (m *ExecuteTransactionMsg) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, m)
}

// Validate requires a wallet reference.
func (m *ExecuteTransactionMsg) Validate() error {
	return errors.Field("WalletID", validateWalletID(m.WalletID), "")
}

func validateWalletID(id []byte) error {
	if err := orm.ValidateSequence(id); err != nil {
		return errors.Wrap(ErrInvalidWallet, err.Error())
	}
	return nil
}
