package sigs

import (
	"github.com/gogo/protobuf/proto"
)

type userDataCodec UserData

func (m *userDataCodec) Reset()         { *m = userDataCodec{} }
func (m *userDataCodec) String() string { return proto.CompactTextString(m) }
func (*userDataCodec) ProtoMessage()    {}

// Marshal serializes the user data to its protobuf representation.
func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataCodec)(m))
}

// Unmarshal loads the user data from its protobuf representation.
func (m *UserData) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*userDataCodec)(m))
}

type stdSignatureCodec StdSignature

func (m *stdSignatureCodec) Reset()         { *m = stdSignatureCodec{} }
func (m *stdSignatureCodec) String() string { return proto.CompactTextString(m) }
func (*stdSignatureCodec) ProtoMessage()    {}

// Marshal serializes the signature to its protobuf representation.
func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignatureCodec)(m))
}

// Unmarshal loads the signature from its protobuf representation.
func (m *StdSignature) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*stdSignatureCodec)(m))
}
