package orm

import (
	"reflect"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather
// than Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db vault.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db vault.ReadOnlyKVStore, key []byte) error

	// ByIndex returns the keys of all models indexed under given value by
	// the named index.
	ByIndex(db vault.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)

	// Put saves given model in the database.
	Put(db vault.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db vault.KVStore, key []byte) error

	// Register registers this bucket and all of its indexes for queries.
	Register(name string, r vault.QueryRouter)
}

// NewModelBucket returns a ModelBucket storing entities in given bucket.
func NewModelBucket(b Bucket) ModelBucket {
	return &modelBucket{
		b: b,
	}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db vault.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db vault.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) ByIndex(db vault.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, ok := mb.b.indexes[indexName]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, indexName)
	}
	return consumeIteratorKeys(idx.Keys(db, value))
}

func (mb *modelBucket) Put(db vault.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db vault.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Register(name string, r vault.QueryRouter) {
	mb.b.Register(name, r)
}
