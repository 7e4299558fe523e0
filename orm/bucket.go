/*
Package orm stores typed records in a key value store.

A Bucket owns a key space "<name>:" holding records of a single type. It can
carry secondary indexes, kept under "_i.<bucket>_<index>:", and hand out
sequences, kept under "_s.<bucket>:". Counters and indexes therefore never
share keys with records.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// SeqID is the name of the default id sequence of a bucket.
const SeqID = "id"

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket reads and writes records of one type under a common prefix and
// keeps its indexes up to date. Extensions embed it in a typed wrapper.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ custody.QueryHandler = Bucket{}

// NewBucket returns a bucket storing clones of proto. It panics on a name
// that is not 3 to 10 lower case letters or underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// Register exposes the bucket under "/<name>" and every index under
// "/<name>/<index>". An empty name uses the bucket name.
func (b Bucket) Register(name string, r custody.QueryRouter) {
	if name == "" {
		name = b.name
	}
	path := "/" + name
	r.Register(path, b)
	for indexName, idx := range b.indexes {
		r.Register(path+"/"+indexName, idx)
	}
}

// Query returns the record stored under the primary key (key mode) or all
// records whose primary key starts with data (prefix mode).
func (b Bucket) Query(ctx custody.Context, db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []custody.Model{{Key: key, Value: value}}, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
}

// DBKey returns the database key of a record. The result never aliases the
// bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	k := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(k, b.prefix...), key...)
}

// Get loads the record stored under key. A missing record is returned as
// nil without an error.
func (b Bucket) Get(db custody.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a fresh object keyed with key.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot unmarshal %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates the object, updates the indexes and writes the record.
func (b Bucket) Save(db custody.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the record and its index references.
func (b Bucket) Delete(db custody.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

// reindex moves the index references of the record stored under key to
// the ones of next. A nil next removes them.
func (b Bucket) reindex(db custody.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns the named counter of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of the bucket with one more index. It panics when
// the name is already taken, buckets are built at start up.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, indexer.multi(), unique)
}

// WithMultiKeyIndex is WithIndex for indexers returning many values.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice on bucket %q", name, b.name))
	}
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	indexes[name] = NewMultiKeyIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = indexes
	return b
}

// GetIndexed loads all records referenced by the named index under value.
func (b Bucket) GetIndexed(db custody.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %s", name)
	}
	refs, err := idx.Refs(db, value)
	if err != nil || len(refs) == 0 {
		return nil, err
	}
	objs := make([]Object, len(refs))
	for i, key := range refs {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index references missing %s %X", b.name, key)
		}
		objs[i] = obj
	}
	return objs, nil
}
