package orm

import (
	"bytes"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Index is a secondary index of a bucket.
type Index interface {
	vault.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db vault.KVStore, prev Object, save Object) error

	// Keys returns an iterator that returns all entity keys that were
	// indexed under given value. Values of returned iterator are always
	// nil.
	Keys(db vault.ReadOnlyKVStore, value []byte) vault.Iterator
}

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object.
type MultiKeyIndexer func(Object) ([][]byte, error)

// compactIndex stores all entities indexed under a value as a set,
// serialized and stored under a single key. Use it only for small index
// collections.
//
// The value is one primary key (unique), or a MultiRef of primary keys
// (!unique).
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex constructs an index with multi key indexer.
// Indexer calculates the index for an object.
// unique enforces a unique constraint on the index.
// refKey calculates the absolute dbkey for a ref.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

func (i compactIndex) Name() string {
	return i.name
}

// indexKey is the full key we store in the db, including prefix.
func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in the secondary
// index.
func (i compactIndex) Update(db vault.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

func (i compactIndex) move(db vault.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	for _, k := range oldKeys {
		if !containsKey(newKeys, k) {
			if err := i.remove(db, k, prev.Key()); err != nil {
				return err
			}
		}
	}
	for _, k := range newKeys {
		if !containsKey(oldKeys, k) {
			if err := i.insert(db, k, save.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i compactIndex) insert(db vault.KVStore, key []byte, pk []byte) error {
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil && !bytes.Equal(cur, pk) {
			return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}

func (i compactIndex) remove(db vault.KVStore, key []byte, pk []byte) error {
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}

// Keys returns all entity keys that were indexed under given value.
func (i compactIndex) Keys(db vault.ReadOnlyKVStore, index []byte) vault.Iterator {
	refs, err := i.refs(db, index)
	if err != nil {
		return &failedIterator{err: err}
	}
	return &keysIterator{keys: refs}
}

func (i compactIndex) refs(db vault.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.indexKey(index))
	if err != nil || val == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

// Query handles queries from the QueryRouter. It returns the referenced
// entities, not the index entries.
func (i compactIndex) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	if mod != vault.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	refs, err := i.refs(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]vault.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, vault.Model{Key: key, Value: value})
	}
	return res, nil
}

type failedIterator struct {
	err error
}

var _ vault.Iterator = (*failedIterator)(nil)

func (it *failedIterator) Next() ([]byte, []byte, error) {
	return nil, nil, it.err
}

func (failedIterator) Release() {}

type keysIterator struct {
	keys [][]byte
}

var _ vault.Iterator = (*keysIterator)(nil)

func (it *keysIterator) Next() ([]byte, []byte, error) {
	if len(it.keys) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	key := it.keys[0]
	it.keys = it.keys[1:]
	return key, nil, nil
}

func (keysIterator) Release() {}
