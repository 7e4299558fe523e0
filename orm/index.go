package orm

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Index is a secondary index of a bucket. It maps index values computed from
// an object to the primary keys of all objects producing them.
type Index interface {
	Name() string

	// Update moves the references of an object after it changed. prev is
	// nil for an insert and save is nil for a delete. Both objects must
	// share the same primary key.
	Update(db custody.KVStore, prev Object, save Object) error

	// Refs returns the primary keys indexed under value, in ascending
	// order.
	Refs(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error)

	custody.QueryHandler
}

// Indexer computes the index value of an object. A nil value leaves the
// object out of the index.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer computes all index values of an object.
type MultiKeyIndexer func(Object) ([][]byte, error)

func (fn Indexer) multi() MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		value, err := fn(obj)
		if err != nil || value == nil {
			return nil, err
		}
		return [][]byte{value}, nil
	}
}

// refIndex stores, under "_i.<name>:<value>", either the single primary key
// of a unique index or a MultiRef with all primary keys.
type refIndex struct {
	name    string
	prefix  []byte
	unique  bool
	values  MultiKeyIndexer
	recordK func(primary []byte) []byte
}

var _ Index = refIndex{}

// NewMultiKeyIndex returns an index called name. recordKey turns a primary
// key into the database key of the record, it is used to answer queries.
func NewMultiKeyIndex(name string, values MultiKeyIndexer, unique bool, recordKey func([]byte) []byte) Index {
	return refIndex{
		name:    name,
		prefix:  []byte("_i." + name + ":"),
		unique:  unique,
		values:  values,
		recordK: recordKey,
	}
}

func (x refIndex) Name() string {
	return x.name
}

func (x refIndex) dbKey(value []byte) []byte {
	k := make([]byte, 0, len(x.prefix)+len(value))
	return append(append(k, x.prefix...), value...)
}

func (x refIndex) Update(db custody.KVStore, prev Object, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "index update without an object")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrHuman, "index update cannot change the primary key")
	}
	before, err := x.valuesOf(prev)
	if err != nil {
		return err
	}
	after, err := x.valuesOf(save)
	if err != nil {
		return err
	}
	for _, v := range before {
		if !containsKey(after, v) {
			if err := x.unlink(db, v, prev.Key()); err != nil {
				return err
			}
		}
	}
	for _, v := range after {
		if !containsKey(before, v) {
			if err := x.link(db, v, save.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x refIndex) valuesOf(obj Object) ([][]byte, error) {
	if obj == nil {
		return nil, nil
	}
	values, err := x.values(obj)
	if err != nil {
		return nil, err
	}
	return uniqueKeys(values), nil
}

func (x refIndex) link(db custody.KVStore, value, primary []byte) error {
	refs, err := x.load(db, x.dbKey(value))
	if err != nil {
		return err
	}
	if x.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "%s index %X", x.name, value)
	}
	if err := refs.Add(primary); err != nil {
		return err
	}
	return x.store(db, x.dbKey(value), refs)
}

func (x refIndex) unlink(db custody.KVStore, value, primary []byte) error {
	refs, err := x.load(db, x.dbKey(value))
	if err != nil {
		return err
	}
	if err := refs.Remove(primary); err != nil {
		return errors.Wrapf(err, "%s index %X", x.name, value)
	}
	return x.store(db, x.dbKey(value), refs)
}

// load returns the references stored under key, an empty set when there are
// none.
func (x refIndex) load(db custody.ReadOnlyKVStore, key []byte) (*MultiRef, error) {
	raw, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	return x.decode(raw)
}

func (x refIndex) decode(raw []byte) (*MultiRef, error) {
	var refs MultiRef
	switch {
	case raw == nil:
	case x.unique:
		refs.Refs = [][]byte{raw}
	default:
		if err := refs.Unmarshal(raw); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "%s index: %s", x.name, err)
		}
	}
	return &refs, nil
}

func (x refIndex) store(db custody.KVStore, key []byte, refs *MultiRef) error {
	switch {
	case len(refs.Refs) == 0:
		return db.Delete(key)
	case x.unique:
		return db.Set(key, refs.Refs[0])
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "%s index: %s", x.name, err)
	}
	return db.Set(key, raw)
}

func (x refIndex) Refs(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := x.load(db, x.dbKey(value))
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// refsWithPrefix returns the primary keys of all index values starting with
// prefix.
func (x refIndex) refsWithPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	stored, err := queryPrefix(db, x.dbKey(prefix))
	if err != nil {
		return nil, err
	}
	var all [][]byte
	for _, m := range stored {
		refs, err := x.decode(m.Value)
		if err != nil {
			return nil, err
		}
		all = append(all, refs.Refs...)
	}
	return uniqueKeys(all), nil
}

// Query answers with the records referenced by the index value (key mode)
// or by all index values sharing a prefix (prefix mode).
func (x refIndex) Query(ctx custody.Context, db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	var (
		refs [][]byte
		err  error
	)
	switch mod {
	case custody.KeyQueryMod:
		refs, err = x.Refs(db, data)
	case custody.PrefixQueryMod:
		refs, err = x.refsWithPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
	if err != nil || len(refs) == 0 {
		return nil, err
	}

	res := make([]custody.Model, len(refs))
	for i, ref := range refs {
		key := x.recordK(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[i] = custody.Model{Key: key, Value: value}
	}
	return res, nil
}

func containsKey(set [][]byte, key []byte) bool {
	for _, k := range set {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

// uniqueKeys drops repeated keys, keeping the first occurrence.
func uniqueKeys(keys [][]byte) [][]byte {
	var out [][]byte
	for _, k := range keys {
		if !containsKey(out, k) {
			out = append(out, k)
		}
	}
	return out
}
