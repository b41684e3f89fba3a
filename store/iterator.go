package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// collectBtree returns all items of the btree within [start, end). Nil
// bounds are open.
func collectBtree(bt *btree.BTree, start, end []byte, reverse bool) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// itemIter combines the items of a cache with the iterator of its parent,
// taking into consideration overwrites and deletes.
type itemIter struct {
	items   []btree.Item
	parent  Iterator
	reverse bool

	// the next parent item, read ahead for comparison
	pKey, pValue []byte
	pLoaded      bool
	pDone        bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []btree.Item, parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

// Next returns the next item in the order of iteration, or ErrIteratorDone.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}

		hasOurs := len(i.items) > 0
		hasParent := !i.pDone

		switch {
		case !hasOurs && !hasParent:
			return nil, nil, errors.ErrIteratorDone
		case !hasOurs:
			i.pLoaded = false
			return i.pKey, i.pValue, nil
		}

		our := i.items[0]
		ourKey := our.(keyer).Key()

		if hasParent {
			cmp := bytes.Compare(i.pKey, ourKey)
			if i.reverse {
				cmp = -cmp
			}
			if cmp < 0 {
				i.pLoaded = false
				return i.pKey, i.pValue, nil
			}
			if cmp == 0 {
				// our value shadows the parent one
				i.pLoaded = false
			}
		}

		i.items = i.items[1:]
		switch t := our.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", our)
		}
	}
}

func (i *itemIter) loadParent() error {
	if i.pLoaded || i.pDone {
		return nil
	}
	if i.parent == nil {
		i.pDone = true
		return nil
	}
	key, value, err := i.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		i.pDone = true
		return nil
	}
	if err != nil {
		return err
	}
	i.pKey, i.pValue, i.pLoaded = key, value, true
	return nil
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	if i.parent != nil {
		i.parent.Release()
	}
	i.items = nil
}
