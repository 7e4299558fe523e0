package cash

import (
	"github.com/gogo/protobuf/proto"
)

// The codec types share the memory layout of the models and carry the
// methods required by the protobuf reflection based marshaler.

type setCodec Set

func (m *setCodec) Reset()         { *m = setCodec{} }
func (m *setCodec) String() string { return proto.CompactTextString(m) }
func (*setCodec) ProtoMessage()    {}

// Marshal serializes the set to its protobuf representation.
func (m *Set) Marshal() ([]byte, error) {
	return proto.Marshal((*setCodec)(m))
}

// Unmarshal loads the set from its protobuf representation.
func (m *Set) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*setCodec)(m))
}

type sendMsgCodec SendMsg

func (m *sendMsgCodec) Reset()         { *m = sendMsgCodec{} }
func (m *sendMsgCodec) String() string { return proto.CompactTextString(m) }
func (*sendMsgCodec) ProtoMessage()    {}

// Marshal serializes the message to its protobuf representation.
func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgCodec)(m))
}

// Unmarshal loads the message from its protobuf representation.
func (m *SendMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*sendMsgCodec)(m))
}
