package multisig

import "github.com/iov-one/vault/errors"

// multisig takes 1030-1040
var (
	ErrNotEnoughWallets                  = errors.Register(1030, "not enough wallets")
	ErrInvalidWallet                     = errors.Register(1031, "invalid wallet")
	ErrDuplicateWallet                   = errors.Register(1032, "duplicate wallet")
	ErrInvalidNumberOfRequiredApprovals  = errors.Register(1033, "invalid number of required approvals")
	ErrNotOwner                          = errors.Register(1034, "not an owner")
	ErrInvalidTransactionID              = errors.Register(1035, "invalid transaction id")
	ErrTransactionAlreadyApprovedByOwner = errors.Register(1036, "transaction already approved by owner")
	ErrTransactionAlreadyExecuted        = errors.Register(1037, "transaction already executed")
	ErrNotEnoughBalance                  = errors.Register(1038, "not enough balance")
	ErrNotEnoughApprovals                = errors.Register(1039, "not enough approvals")
	ErrTransferFailed                    = errors.Register(1040, "transfer failed")
)
