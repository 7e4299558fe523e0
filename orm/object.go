package orm

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// Object is a record together with its primary key.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Cloneable
	x.Validater
	Value() custody.Persistent
}

// Cloneable returns an empty object of the same type, ready to be loaded.
type Cloneable interface {
	Clone() Object
}

// Model is the value of a record. Copy must return a deep copy.
type Model interface {
	custody.Persistent
	x.Validater
	Copy() Model
}

// SimpleObj pairs a primary key with a model. It is the Object of every
// bucket in this repository.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns an object storing value under key. A nil key is
// filled in by the bucket on load.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() custody.Persistent {
	return o.value
}

// Validate requires a key and a value, then validates the value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object with a zero value of the same model type and a
// copy of the key.
func (o *SimpleObj) Clone() Object {
	empty := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	clone := &SimpleObj{value: empty}
	if len(o.key) > 0 {
		clone.key = append([]byte(nil), o.key...)
	}
	return clone
}
