package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// counter is a minimal model used by the tests.
type counter struct {
	Name  string
	Count int64
}

var _ CloneableData = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error)  { return vault.Marshal(c) }
func (c *counter) Unmarshal(bz []byte) error { return vault.Unmarshal(bz, c) }
func (c *counter) Copy() CloneableData       { cpy := *c; return &cpy }

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Field("Count", errors.ErrInput, "negative")
	}
	return nil
}

type other struct {
	counter
}

func (o *other) Copy() CloneableData { cpy := *o; return &cpy }

func counterBucket() Bucket {
	return NewBucket("cnts", NewSimpleObj(nil, &counter{}))
}

func byName(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	if c.Name == "" {
		return nil, nil
	}
	return []byte(c.Name), nil
}
