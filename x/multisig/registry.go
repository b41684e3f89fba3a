package multisig

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// MinimumOwners is the smallest owner set a wallet can be created with.
const MinimumOwners = 3

// OwnerRegistry holds the owner set and the approval threshold of a wallet.
// Both are fixed at construction.
type OwnerRegistry struct {
	owners   []vault.Address
	members  map[string]struct{}
	required uint32
}

// NewOwnerRegistry validates the owner set and the threshold. The checks run
// in a fixed order and the first failure is returned.
func NewOwnerRegistry(owners []vault.Address, requiredApprovals uint32) (*OwnerRegistry, error) {
	if len(owners) < MinimumOwners {
		return nil, errors.Wrapf(ErrNotEnoughWallets, "got %d, need at least %d", len(owners), MinimumOwners)
	}
	for i, o := range owners {
		if o.Validate() != nil || o.IsZero() {
			return nil, errors.Wrapf(ErrInvalidWallet, "owner %d", i)
		}
	}
	members := make(map[string]struct{}, len(owners))
	for i, o := range owners {
		if _, ok := members[string(o)]; ok {
			return nil, errors.Wrapf(ErrDuplicateWallet, "owner %d: %s", i, o)
		}
		members[string(o)] = struct{}{}
	}
	if !validThreshold(requiredApprovals, len(owners)) {
		return nil, errors.Wrapf(ErrInvalidNumberOfRequiredApprovals,
			"%d of %d owners is not a strict majority", requiredApprovals, len(owners))
	}

	cp := make([]vault.Address, len(owners))
	for i, o := range owners {
		cp[i] = append(vault.Address(nil), o...)
	}
	return &OwnerRegistry{
		owners:   cp,
		members:  members,
		required: requiredApprovals,
	}, nil
}

// validThreshold requires more than half of the owners, and not more than
// all of them.
func validThreshold(required uint32, owners int) bool {
	return 2*uint64(required) > uint64(owners) && uint64(required) <= uint64(owners)
}

// IsOwner returns true if given address is one of the owners.
func (r *OwnerRegistry) IsOwner(addr vault.Address) bool {
	_, ok := r.members[string(addr)]
	return ok
}

// Owners returns a copy of the owner list, in creation order.
func (r *OwnerRegistry) Owners() []vault.Address {
	cp := make([]vault.Address, len(r.owners))
	for i, o := range r.owners {
		cp[i] = append(vault.Address(nil), o...)
	}
	return cp
}

// RequiredApprovals returns the number of approvals a transaction needs
// before it can be executed.
func (r *OwnerRegistry) RequiredApprovals() uint32 {
	return r.required
}

// Len returns the number of owners.
func (r *OwnerRegistry) Len() int {
	return len(r.owners)
}
