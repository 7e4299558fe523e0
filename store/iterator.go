package store

import (
	"bytes"

	"github.com/iov-one/custody/errors"
)

// mergeIterator walks the pending entries of a cache wrap together with an
// iterator of its parent. On equal keys the pending entry wins and deleted
// entries are skipped.
type mergeIterator struct {
	pending []*entry
	parent  Iterator
	desc    bool

	// head is the parent entry read ahead of time.
	head       Model
	hasHead    bool
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.readHead(); err != nil {
			return nil, nil, err
		}
		if len(m.pending) == 0 {
			if !m.hasHead {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache wrap")
			}
			return m.takeHead()
		}

		next := m.pending[0]
		if m.hasHead {
			switch c := m.compare(next.key, m.head.Key); {
			case c > 0:
				return m.takeHead()
			case c == 0:
				m.hasHead = false
			}
		}
		m.pending = m.pending[1:]
		if !next.deleted {
			return next.key, next.value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.pending = nil
	m.parent.Release()
}

func (m *mergeIterator) readHead() error {
	if m.hasHead || m.parentDone {
		return nil
	}
	key, value, err := m.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.parentDone = true
		return nil
	}
	if err != nil {
		return err
	}
	m.head = Model{Key: key, Value: value}
	m.hasHead = true
	return nil
}

func (m *mergeIterator) takeHead() ([]byte, []byte, error) {
	m.hasHead = false
	return m.head.Key, m.head.Value, nil
}

// compare orders keys in the direction of the iteration.
func (m *mergeIterator) compare(a, b []byte) int {
	c := bytes.Compare(a, b)
	if m.desc {
		return -c
	}
	return c
}
