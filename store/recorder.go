package store

// Recorder is a store that remembers what was written through it.
type Recorder interface {
	KVStore

	// KVPairs maps every written key to the value set, or nil when the
	// key was deleted.
	KVPairs() map[string][]byte
}

// NewRecordingStore wraps the store and records every key written through
// it. A cacheable store stays cacheable, writes of its cache wraps are
// recorded only once they reach the wrapped store.
func NewRecordingStore(db KVStore) Recorder {
	rec := &recordingStore{KVStore: db, changeLog: make(changeLog)}
	if _, ok := db.(CacheableKVStore); ok {
		return cacheableRecordingStore{rec}
	}
	return rec
}

type changeLog map[string][]byte

func (c changeLog) KVPairs() map[string][]byte {
	return c
}

func (c changeLog) record(op Op) {
	c[string(op.Key())] = op.Value()
}

type recordingStore struct {
	KVStore
	changeLog
}

var _ Recorder = (*recordingStore)(nil)

func (r *recordingStore) Set(key, value []byte) error {
	return r.apply(SetOp(key, value))
}

func (r *recordingStore) Delete(key []byte) error {
	return r.apply(DelOp(key))
}

func (r *recordingStore) apply(op Op) error {
	if err := op.Apply(r.KVStore); err != nil {
		return err
	}
	r.record(op)
	return nil
}

func (r *recordingStore) NewBatch() Batch {
	return &recordingBatch{log: r.changeLog, inner: r.KVStore.NewBatch()}
}

type cacheableRecordingStore struct {
	*recordingStore
}

var _ CacheableKVStore = cacheableRecordingStore{}

func (r cacheableRecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}

// recordingBatch records its operations once the batch is written.
type recordingBatch struct {
	log    changeLog
	inner  Batch
	queued []Op
}

var _ Batch = (*recordingBatch)(nil)

func (b *recordingBatch) Set(key, value []byte) error {
	if err := b.inner.Set(key, value); err != nil {
		return err
	}
	b.queued = append(b.queued, SetOp(key, value))
	return nil
}

func (b *recordingBatch) Delete(key []byte) error {
	if err := b.inner.Delete(key); err != nil {
		return err
	}
	b.queued = append(b.queued, DelOp(key))
	return nil
}

func (b *recordingBatch) Write() error {
	if err := b.inner.Write(); err != nil {
		return err
	}
	for _, op := range b.queued {
		b.log.record(op)
	}
	b.queued = nil
	return nil
}
