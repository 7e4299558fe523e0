package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// counter is a model used only by the tests of this package.
type counter struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

type counterCodec counter

func (m *counterCodec) Reset()         { *m = counterCodec{} }
func (m *counterCodec) String() string { return proto.CompactTextString(m) }
func (*counterCodec) ProtoMessage()    {}

func (c *counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterCodec)(c))
}

func (c *counter) Unmarshal(bz []byte) error {
	*c = counter{}
	return proto.Unmarshal(bz, (*counterCodec)(c))
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative count")
	}
	return nil
}

func (c *counter) Copy() Model {
	return &counter{
		Owner: append([]byte(nil), c.Owner...),
		Count: c.Count,
	}
}

func newCounterObj(key []byte, owner string, count int64) Object {
	var o []byte
	if owner != "" {
		o = []byte(owner)
	}
	return NewSimpleObj(key, &counter{Owner: o, Count: count})
}

func counterOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	if len(c.Owner) == 0 {
		return nil, nil
	}
	return c.Owner, nil
}

func counterCount(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return EncodeSequence(c.Count), nil
}
