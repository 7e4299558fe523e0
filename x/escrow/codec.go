package escrow

import (
	"github.com/gogo/protobuf/proto"
)

type escrowCodec Escrow

func (m *escrowCodec) Reset()         { *m = escrowCodec{} }
func (m *escrowCodec) String() string { return proto.CompactTextString(m) }
func (*escrowCodec) ProtoMessage()    {}

// Marshal serializes the escrow to its protobuf representation.
func (m *Escrow) Marshal() ([]byte, error) {
	return proto.Marshal((*escrowCodec)(m))
}

// Unmarshal loads the escrow from its protobuf representation.
func (m *Escrow) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*escrowCodec)(m))
}

type createMsgCodec CreateMsg

func (m *createMsgCodec) Reset()         { *m = createMsgCodec{} }
func (m *createMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createMsgCodec) ProtoMessage()    {}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createMsgCodec)(m))
}

func (m *CreateMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createMsgCodec)(m))
}

type releaseMsgCodec ReleaseMsg

func (m *releaseMsgCodec) Reset()         { *m = releaseMsgCodec{} }
func (m *releaseMsgCodec) String() string { return proto.CompactTextString(m) }
func (*releaseMsgCodec) ProtoMessage()    {}

func (m *ReleaseMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*releaseMsgCodec)(m))
}

func (m *ReleaseMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*releaseMsgCodec)(m))
}

type refundMsgCodec RefundMsg

func (m *refundMsgCodec) Reset()         { *m = refundMsgCodec{} }
func (m *refundMsgCodec) String() string { return proto.CompactTextString(m) }
func (*refundMsgCodec) ProtoMessage()    {}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*refundMsgCodec)(m))
}

func (m *RefundMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*refundMsgCodec)(m))
}
