package store

import (
	"github.com/iov-one/custody/errors"
)

// SliceIterator yields a fixed list of models in the order they were given.
type SliceIterator struct {
	rest []Model
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over the models. The caller is
// responsible for the ordering.
func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{rest: models}
}

// Next pops the first remaining model. ErrIteratorDone is returned once the
// list is exhausted.
func (it *SliceIterator) Next() (key, value []byte, err error) {
	if len(it.rest) == 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice")
	}
	m := it.rest[0]
	it.rest = it.rest[1:]
	return m.Key, m.Value, nil
}

func (it *SliceIterator) Release() {
	it.rest = nil
}

// emptyStore is the bottom layer of an in-memory store. Reads find nothing
// and writes are dropped.
type emptyStore struct{}

var _ KVStore = emptyStore{}

func (emptyStore) Get([]byte) ([]byte, error) { return nil, nil }
func (emptyStore) Has([]byte) (bool, error)   { return false, nil }
func (emptyStore) Set(_, _ []byte) error      { return nil }
func (emptyStore) Delete([]byte) error        { return nil }

func (emptyStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (emptyStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e emptyStore) NewBatch() Batch {
	return NewOpBatch(e)
}

// Op is a single pending write. It either sets a value or removes the key.
type Op struct {
	key     []byte
	value   []byte
	deleted bool
}

// SetOp returns an operation writing value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp returns an operation removing key.
func DelOp(key []byte) Op {
	return Op{key: key, deleted: true}
}

// Key returns the key modified by the operation.
func (o Op) Key() []byte {
	return o.key
}

// Value returns the value written by the operation, nil for a delete.
func (o Op) Value() []byte {
	if o.deleted {
		return nil
	}
	return o.value
}

// Deleted is true when the operation removes its key.
func (o Op) Deleted() bool {
	return o.deleted
}

// Apply executes the operation on the given store.
func (o Op) Apply(out SetDeleter) error {
	if o.deleted {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// OpBatch queues operations in memory and replays them in order on Write.
// The replay is not atomic, so it must only be used on top of in-memory
// layers or stores that provide their own commit step.
type OpBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*OpBatch)(nil)

// NewOpBatch returns an empty batch writing to out.
func NewOpBatch(out SetDeleter) *OpBatch {
	return &OpBatch{out: out}
}

func (b *OpBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *OpBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays all queued operations and empties the queue. On failure the
// queue is kept, operations applied so far are not reverted.
func (b *OpBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return errors.Wrapf(err, "operation %d of %d", i+1, len(b.ops))
		}
	}
	b.ops = nil
	return nil
}

// Ops returns the queued operations.
func (b *OpBatch) Ops() []Op {
	return b.ops
}

func (b *OpBatch) reset() {
	b.ops = nil
}
