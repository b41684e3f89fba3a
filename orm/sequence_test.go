package orm

import (
	"math"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("wallets", "id")
	b := NewSequence("wallets", "other")

	latest, err := a.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)

	for want := int64(1); want <= 3; want++ {
		got, err := a.NextInt(db)
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}

	// sequences do not share state
	val, err := b.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), val)

	latest, err = a.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), latest)
}

func TestSequenceOverflowFailsLoudly(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("wallets", "id")
	assert.Nil(t, db.Set(seq.id, EncodeSequence(math.MaxInt64-1)))

	got, err := seq.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)

	_, err = seq.NextInt(db)
	assert.IsErr(t, errors.ErrOverflow, err)

	// the failed call did not modify the state
	latest, err := seq.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(math.MaxInt64), latest)
}

func TestSequenceEncodingKeepsOrder(t *testing.T) {
	assert.Equal(t, int64(0), DecodeSequence(nil))
	assert.Equal(t, int64(258), DecodeSequence(EncodeSequence(258)))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, EncodeSequence(258))

	assert.Nil(t, ValidateSequence(EncodeSequence(1)))
	assert.IsErr(t, errors.ErrEmpty, ValidateSequence(nil))
	assert.IsErr(t, errors.ErrInput, ValidateSequence([]byte{1}))
}
