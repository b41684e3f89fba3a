package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// NextNonce returns the sequence the next transaction signed by the owner
// of given address must carry. An address that never signed starts at 0.
func NextNonce(db vault.ReadOnlyKVStore, signer vault.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrapf(err, "sequence of %s", signer)
	}
	user := AsUser(obj)
	if user == nil {
		return 0, nil
	}
	return user.Sequence, nil
}
