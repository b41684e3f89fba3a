package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// MultiRef is a sorted set of references, stored by a non unique index
// under a single key.
type MultiRef struct {
	Refs [][]byte
}

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef creates a MultiRef with any number of initial references.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts this reference in the multiref, sorted by order.
// Returns an error if already there.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the multiref.
// Returns an error if already there.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the position of ref and whether it is present.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Validate always returns nil.
func (m *MultiRef) Validate() error {
	return nil
}

// Copy makes a deep copy of the set.
func (m *MultiRef) Copy() CloneableData {
	refs := make([][]byte, len(m.Refs))
	for i, r := range m.Refs {
		refs[i] = append([]byte(nil), r...)
	}
	return &MultiRef{Refs: refs}
}

func (m *MultiRef) Marshal() ([]byte, error) {
	return vault.Marshal(m)
}

func (m *MultiRef) Unmarshal(bz []byte) error {
	return vault.Unmarshal(bz, m)
}
