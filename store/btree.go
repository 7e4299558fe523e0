package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is small on purpose, cache wraps live for a single
// transaction or block and rarely hold more than a few hundred entries.
const btreeDegree = 2

// BTreeCacheable gives a KVStore the btree backed cache wrap used by all
// in-memory layers.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a layer that is flushed into the wrapped store through
// its batch.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an empty store that lives in memory only.
func MemStore() CacheableKVStore {
	var base emptyStore
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree on top of a read only
// parent. Every write is also queued in the flush batch, so Write replays
// them in order on the parent.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	flush   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap layers a cache over parent. Nested layers pass the free
// list of their parent so btree nodes are recycled, free may be nil.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, flush Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(btreeDegree, free),
		free:    free,
		parent:  parent,
		flush:   flush,
	}
}

// CacheWrap stacks another layer on top of this one.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

func (c BTreeCacheWrap) NewBatch() Batch {
	return NewOpBatch(c)
}

// Write flushes all pending writes into the parent and empties the layer.
func (c BTreeCacheWrap) Write() error {
	err := c.flush.Write()
	c.Discard()
	return err
}

// Discard drops all pending writes. The layer can be reused afterwards.
func (c BTreeCacheWrap) Discard() {
	for c.pending.Len() > 0 {
		c.pending.DeleteMin()
	}
	if b, ok := c.flush.(*OpBatch); ok {
		b.reset()
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.pending.ReplaceOrInsert(&entry{key: key, value: value})
	return c.flush.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.pending.ReplaceOrInsert(&entry{key: key, deleted: true})
	return c.flush.Delete(key)
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := c.lookup(key); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c BTreeCacheWrap) lookup(key []byte) (*entry, bool) {
	item := c.pending.Get(&entry{key: key})
	if item == nil {
		return nil, false
	}
	return item.(*entry), true
}

// Iterator walks [start, end) in ascending order over this layer and its
// parent. A nil bound is open.
func (c BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergeIterator{
		pending: c.pendingRange(start, end),
		parent:  parent,
	}, nil
}

// ReverseIterator walks [start, end) in descending order over this layer and
// its parent. A nil bound is open.
func (c BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	entries := c.pendingRange(start, end)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return &mergeIterator{
		pending: entries,
		parent:  parent,
		desc:    true,
	}, nil
}

// pendingRange copies the pending entries of [start, end) in ascending
// order, so the iterator is not affected by later writes.
func (c BTreeCacheWrap) pendingRange(start, end []byte) []*entry {
	var entries []*entry
	visit := func(item btree.Item) bool {
		entries = append(entries, item.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.pending.Ascend(visit)
	case start == nil:
		c.pending.AscendLessThan(&entry{key: end}, visit)
	case end == nil:
		c.pending.AscendGreaterOrEqual(&entry{key: start}, visit)
	default:
		c.pending.AscendRange(&entry{key: start}, &entry{key: end}, visit)
	}
	return entries
}

// entry is a pending write. A deleted entry hides the value of the parent.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = (*entry)(nil)

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}
