package multisig

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const (
	// ContractBucketName is where the wallet contracts are stored.
	ContractBucketName = "msig"
	// TransactionBucketName is where the proposed transactions are stored.
	TransactionBucketName = "msigtx"
	// ApprovalBucketName is where the owner approvals are stored.
	ApprovalBucketName = "msigappr"
)

// TransactionID identifies a transaction within a wallet. The first
// transaction of every wallet is 1.
type TransactionID uint64

// Bytes returns the 8 bytes big endian representation, which sorts the
// same way as the numeric value.
func (id TransactionID) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// ParseTransactionID decodes the representation created by Bytes.
func ParseTransactionID(raw []byte) (TransactionID, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(ErrInvalidTransactionID, "invalid length %d", len(raw))
	}
	return TransactionID(binary.BigEndian.Uint64(raw)), nil
}

// WalletCondition returns the condition that owns the custodial balance of
// the wallet with given id.
func WalletCondition(walletID []byte) vault.Condition {
	return vault.NewCondition("multisig", "wallet", walletID)
}

// Contract is the stored form of a wallet.
type Contract struct {
	ID                []byte          `json:"id"`
	Owners            []vault.Address `json:"owners"`
	RequiredApprovals uint32          `json:"required_approvals"`
	// Address holds the custodial balance.
	Address vault.Address `json:"address"`
	// Ticker is the only currency this wallet accepts.
	Ticker string `json:"ticker"`
}

var _ orm.CloneableData = (*Contract)(nil)

// Marshal serializes the contract using the binary codec.
func (c *Contract) Marshal() ([]byte, error) {
	return vault.Marshal(c)
}

// Unmarshal loads the contract from its binary representation.
func (c *Contract) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, c)
}

// Validate checks the stored form. The owner set rules are enforced when the
// wallet is created, see NewOwnerRegistry.
func (c *Contract) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ID", orm.ValidateSequence(c.ID))
	if len(c.Owners) == 0 {
		errs = errors.AppendField(errs, "Owners", errors.ErrEmpty)
	}
	for i, o := range c.Owners {
		errs = errors.AppendField(errs, errors.FieldPath("Owners", i), o.Validate())
	}
	if c.RequiredApprovals == 0 {
		errs = errors.AppendField(errs, "RequiredApprovals", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "Address", c.Address.Validate())
	if !coin.IsCC(c.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	return errs
}

// Copy makes a deep copy of the contract.
func (c *Contract) Copy() orm.CloneableData {
	owners := make([]vault.Address, len(c.Owners))
	for i, o := range c.Owners {
		owners[i] = append(vault.Address(nil), o...)
	}
	return &Contract{
		ID:                append([]byte(nil), c.ID...),
		Owners:            owners,
		RequiredApprovals: c.RequiredApprovals,
		Address:           append(vault.Address(nil), c.Address...),
		Ticker:            c.Ticker,
	}
}

// ContractBucket stores wallet contracts under an auto incremented id.
type ContractBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewContractBucket initializes a ContractBucket with default name.
func NewContractBucket() ContractBucket {
	b := orm.NewBucket(ContractBucketName, orm.NewSimpleObj(nil, new(Contract)))
	return ContractBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create stores a new contract and returns its id. The custodial address is
// derived from the id.
func (b ContractBucket) Create(db vault.KVStore, c *Contract) ([]byte, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire wallet id")
	}
	c.ID = id
	c.Address = WalletCondition(id).Address()
	if err := b.Save(db, orm.NewSimpleObj(id, c)); err != nil {
		return nil, err
	}
	return id, nil
}

// Save enforces the proper type.
func (b ContractBucket) Save(db vault.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Contract); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetContract returns a contract with given ID.
func (b ContractBucket) GetContract(db vault.ReadOnlyKVStore, walletID []byte) (*Contract, error) {
	if err := orm.ValidateSequence(walletID); err != nil {
		return nil, errors.Wrap(ErrInvalidWallet, err.Error())
	}
	obj, err := b.Get(db, walletID)
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "wallet %X", walletID)
	}
	c, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return c, nil
}

// Transaction is a transfer proposed by one of the wallet owners.
type Transaction struct {
	WalletID      []byte        `json:"wallet_id"`
	ID            TransactionID `json:"id"`
	To            vault.Address `json:"to"`
	Amount        *coin.Coin    `json:"amount"`
	Executed      bool          `json:"executed"`
	ApprovalCount uint32        `json:"approval_count"`
}

var _ orm.CloneableData = (*Transaction)(nil)

// Marshal serializes the transaction using the binary codec.
func (t *Transaction) Marshal() ([]byte, error) {
	return vault.Marshal(t)
}

// Unmarshal loads the transaction from its binary representation.
func (t *Transaction) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, t)
}

// Validate checks that the transaction is complete.
func (t *Transaction) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "WalletID", orm.ValidateSequence(t.WalletID))
	if t.ID == 0 {
		errs = errors.AppendField(errs, "ID", ErrInvalidTransactionID)
	}
	errs = errors.AppendField(errs, "To", t.To.Validate())
	if t.Amount == nil {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	} else if !t.Amount.IsNonNegative() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", t.Amount.Validate())
	}
	return errs
}

// Copy makes a deep copy of the transaction.
func (t *Transaction) Copy() orm.CloneableData {
	cp := *t
	cp.WalletID = append([]byte(nil), t.WalletID...)
	cp.To = append(vault.Address(nil), t.To...)
	if t.Amount != nil {
		cp.Amount = t.Amount.Clone()
	}
	return &cp
}

// TransactionBucket stores transactions keyed by wallet id and transaction
// id, so that a prefix query by wallet id returns them in order.
type TransactionBucket struct {
	orm.Bucket
}

// NewTransactionBucket initializes a TransactionBucket with default name.
func NewTransactionBucket() TransactionBucket {
	return TransactionBucket{
		Bucket: orm.NewBucket(TransactionBucketName, orm.NewSimpleObj(nil, new(Transaction))),
	}
}

// Sequence returns the counter that allocates transaction ids of given
// wallet.
func (b TransactionBucket) Sequence(walletID []byte) orm.Sequence {
	return b.Bucket.Sequence(hex.EncodeToString(walletID))
}

// Put stores the transaction under its key.
func (b TransactionBucket) Put(db vault.KVStore, t *Transaction) error {
	return b.Save(db, orm.NewSimpleObj(transactionKey(t.WalletID, t.ID), t))
}

// GetTransaction returns the transaction or nil if it does not exist.
func (b TransactionBucket) GetTransaction(db vault.ReadOnlyKVStore, walletID []byte, id TransactionID) (*Transaction, error) {
	obj, err := b.Get(db, transactionKey(walletID, id))
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	t, ok := obj.Value().(*Transaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return t, nil
}

func transactionKey(walletID []byte, id TransactionID) []byte {
	key := make([]byte, 0, len(walletID)+8)
	key = append(key, walletID...)
	return append(key, id.Bytes()...)
}

// Approval records that an owner approved a transaction.
type Approval struct {
	WalletID      []byte        `json:"wallet_id"`
	TransactionID TransactionID `json:"transaction_id"`
	Owner         vault.Address `json:"owner"`
}

var _ orm.CloneableData = (*Approval)(nil)

// Marshal serializes the approval using the binary codec.
func (a *Approval) Marshal() ([]byte, error) {
	return vault.Marshal(a)
}

// Unmarshal loads the approval from its binary representation.
func (a *Approval) Unmarshal(raw []byte) error {
	return vault.Unmarshal(raw, a)
}

// Validate checks that the approval is complete.
func (a *Approval) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "WalletID", orm.ValidateSequence(a.WalletID))
	if a.TransactionID == 0 {
		errs = errors.AppendField(errs, "TransactionID", ErrInvalidTransactionID)
	}
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	return errs
}

// Copy makes a deep copy of the approval.
func (a *Approval) Copy() orm.CloneableData {
	return &Approval{
		WalletID:      append([]byte(nil), a.WalletID...),
		TransactionID: a.TransactionID,
		Owner:         append(vault.Address(nil), a.Owner...),
	}
}

// ApprovalBucket stores approvals keyed by wallet id, transaction id and
// owner address.
type ApprovalBucket struct {
	orm.Bucket
}

// NewApprovalBucket initializes an ApprovalBucket with default name.
func NewApprovalBucket() ApprovalBucket {
	return ApprovalBucket{
		Bucket: orm.NewBucket(ApprovalBucketName, orm.NewSimpleObj(nil, new(Approval))),
	}
}

// Put stores the approval under its key.
func (b ApprovalBucket) Put(db vault.KVStore, a *Approval) error {
	return b.Save(db, orm.NewSimpleObj(approvalKey(a.WalletID, a.TransactionID, a.Owner), a))
}

// Has returns true if the owner approved the transaction.
func (b ApprovalBucket) Has(db vault.ReadOnlyKVStore, walletID []byte, id TransactionID, owner vault.Address) (bool, error) {
	return db.Has(b.DBKey(approvalKey(walletID, id, owner)))
}

func approvalKey(walletID []byte, id TransactionID, owner vault.Address) []byte {
	return append(transactionKey(walletID, id), owner...)
}
