package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Sequence maintains a counter, and generates a series of keys. Each key is
// greater than the last, both NextInt() as well as bytes.Compare() on
// NextVal(). The first value is 1.
//
// A sequence never wraps around. Once the maximum value was given out,
// every following call fails with ErrOverflow.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following
// pattern to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db vault.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s Sequence) NextInt(db vault.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the recently returned value of the sequence, 0 if none
// was returned yet. This method does not modify the sequence state.
func (s Sequence) Latest(db vault.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw), nil
}

func (s Sequence) increment(db vault.KVStore, inc int64) (int64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	if val > math.MaxInt64-inc {
		return 0, nil, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.id)
	}
	val += inc
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, err
	}
	return val, raw, nil
}

// DecodeSequence returns the value of a sequence stored as 8 bytes. Nil
// represents 0.
func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}

// EncodeSequence returns the 8 bytes big endian representation of given
// value. Byte order is the same as numeric order.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence returns an error if this is not an 8-byte sequence
// value.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}
