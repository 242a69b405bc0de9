package store

import (
	"bytes"

	"github.com/iov-one/custody/errors"
)

// mergeIterator combines cached btree entries with the iterator of the
// backing store. Cached entries shadow the parent ones and deleted entries
// hide them.
type mergeIterator struct {
	ours    []keyer
	idx     int
	reverse bool

	parent     Iterator
	parentDone bool
	// peeked parent entry, valid when hasPeek is true
	hasPeek bool
	pkey    []byte
	pvalue  []byte
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(ours []keyer, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{
		ours:    ours,
		reverse: reverse,
		parent:  parent,
	}
}

func (m *mergeIterator) peekParent() error {
	if m.hasPeek || m.parentDone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.parentDone = true
		return nil
	case err != nil:
		return err
	}
	m.hasPeek = true
	m.pkey, m.pvalue = key, value
	return nil
}

// Next returns the next key-value pair in iteration order, or
// ErrIteratorDone once both sources are exhausted.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}
		hasOurs := m.idx < len(m.ours)

		switch {
		case !hasOurs && !m.hasPeek:
			return nil, nil, errors.ErrIteratorDone
		case !hasOurs:
			m.hasPeek = false
			return m.pkey, m.pvalue, nil
		case m.hasPeek:
			cmp := bytes.Compare(m.ours[m.idx].Key(), m.pkey)
			if m.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				m.hasPeek = false
				return m.pkey, m.pvalue, nil
			}
			if cmp == 0 {
				// Cached entry shadows the parent one.
				m.hasPeek = false
			}
		}

		item := m.ours[m.idx]
		m.idx++
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
	}
}

// Release releases the parent iterator and the cached snapshot.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.ours = nil
}
