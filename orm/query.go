package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// prefixRange turns a prefix into (start, end) to create an iterator.
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// queryPrefix returns all key-value pairs stored under keys with given
// prefix, in key order.
func queryPrefix(db vault.ReadOnlyKVStore, prefix []byte) ([]vault.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator will read all remaining data into an array and release
// the iterator.
func ConsumeIterator(itr vault.Iterator) ([]vault.Model, error) {
	defer itr.Release()

	var res []vault.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, vault.Model{Key: key, Value: value})
	}
}

// consumeIteratorKeys returns a list of all keys that given iterator
// returns. This function releases the iterator.
func consumeIteratorKeys(it vault.Iterator) ([][]byte, error) {
	defer it.Release()

	var keys [][]byte
	for {
		switch k, _, err := it.Next(); {
		case err == nil:
			keys = append(keys, k)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return keys, err
		}
	}
}
