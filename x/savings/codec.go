package savings

import (
	"github.com/gogo/protobuf/proto"
)

type poolCodec Pool

func (m *poolCodec) Reset()         { *m = poolCodec{} }
func (m *poolCodec) String() string { return proto.CompactTextString(m) }
func (*poolCodec) ProtoMessage()    {}

func (m *Pool) Marshal() ([]byte, error)  { return proto.Marshal((*poolCodec)(m)) }
func (m *Pool) Unmarshal(bz []byte) error { return proto.Unmarshal(bz, (*poolCodec)(m)) }

type createPoolMsgCodec CreatePoolMsg

func (m *createPoolMsgCodec) Reset()         { *m = createPoolMsgCodec{} }
func (m *createPoolMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createPoolMsgCodec) ProtoMessage()    {}

func (m *CreatePoolMsg) Marshal() ([]byte, error) { return proto.Marshal((*createPoolMsgCodec)(m)) }
func (m *CreatePoolMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createPoolMsgCodec)(m))
}

type contributeMsgCodec ContributeMsg

func (m *contributeMsgCodec) Reset()         { *m = contributeMsgCodec{} }
func (m *contributeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*contributeMsgCodec) ProtoMessage()    {}

func (m *ContributeMsg) Marshal() ([]byte, error) { return proto.Marshal((*contributeMsgCodec)(m)) }
func (m *ContributeMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*contributeMsgCodec)(m))
}

type distributeMsgCodec DistributeMsg

func (m *distributeMsgCodec) Reset()         { *m = distributeMsgCodec{} }
func (m *distributeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*distributeMsgCodec) ProtoMessage()    {}

func (m *DistributeMsg) Marshal() ([]byte, error) { return proto.Marshal((*distributeMsgCodec)(m)) }
func (m *DistributeMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*distributeMsgCodec)(m))
}
