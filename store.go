package custody

// ReadOnlyKVStore reads a key value store. Keys are compared bytewise.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending order. A nil bound is
	// open. The range must not be written to while it is iterated.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by KVStore and Batch. Neither key
// nor value may be modified after the call.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler works on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch groups writes into one atomic Write.
	NewBatch() Batch
}

type Batch interface {
	SetDeleter
	Write() error
}

// Iterator yields key value pairs until it returns ErrIteratorDone:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Release()
//	for {
//	  key, value, err := it.Next()
//	  if errors.ErrIteratorDone.Is(err) {
//	    break
//	  }
//	  ...
//	}
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can open a savepoint: a cache wrap that sees the store
// plus its own pending writes, written back or discarded as a whole.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes until Write. A cache wrap can be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore

	// Write applies the pending writes to the parent store.
	Write() error

	// Discard drops the pending writes.
	Discard()
}

// CommitKVStore is a versioned root store. Changes go through a cache
// wrap, Commit persists them as the next version.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)

	// LoadLatestVersion loads the last version fully persisted, which
	// after a crash may be older than the last commit.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a version of a CommitKVStore by height and merkle
// root.
type CommitID struct {
	Version int64
	Hash    []byte
}
