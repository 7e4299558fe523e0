package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ModelBucket reads and writes Models directly, hiding the Object wrapper of
// a Bucket.
type ModelBucket interface {
	// One loads the record stored under key into dest. It fails with
	// ErrNotFound for a missing record and ErrInvalidType when dest is not
	// of the stored type.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns ErrNotFound unless a record is stored under key.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// ByIndex loads all records referenced by the named index under value.
	ByIndex(db custody.ReadOnlyKVStore, indexName string, value []byte) ([]Model, error)

	Put(db custody.KVStore, key []byte, m Model) error

	// Delete fails with ErrNotFound when no record is stored under key.
	Delete(db custody.KVStore, key []byte) error

	Register(name string, r custody.QueryRouter)
}

// NewModelBucket wraps b.
func NewModelBucket(b Bucket) ModelBucket {
	return modelBucket{b: b}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = modelBucket{}

func (mb modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T %X", dest, key)
	}
	src := reflect.ValueOf(obj.Value())
	dst := reflect.ValueOf(dest)
	if !src.Type().AssignableTo(dst.Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "cannot load %T into %T", obj.Value(), dest)
	}
	dst.Elem().Set(src.Elem())
	return nil
}

func (mb modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	switch ok, err := mb.b.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return nil
}

func (mb modelBucket) ByIndex(db custody.ReadOnlyKVStore, indexName string, value []byte) ([]Model, error) {
	objs, err := mb.b.GetIndexed(db, indexName, value)
	if err != nil {
		return nil, err
	}
	models := make([]Model, len(objs))
	for i, o := range objs {
		m, ok := o.Value().(Model)
		if !ok {
			return nil, errors.Wrapf(errors.ErrInvalidType, "%T is not a model", o.Value())
		}
		models[i] = m
	}
	return models, nil
}

func (mb modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb modelBucket) Register(name string, r custody.QueryRouter) {
	mb.b.Register(name, r)
}
