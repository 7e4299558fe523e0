package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// MultiRef is the value stored by a non unique index: a set of primary keys
// kept in ascending order.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

var _ Model = (*MultiRef)(nil)

type multiRefCodec MultiRef

func (m *multiRefCodec) Reset()         { *m = multiRefCodec{} }
func (m *multiRefCodec) String() string { return proto.CompactTextString(m) }
func (*multiRefCodec) ProtoMessage()    {}

func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*multiRefCodec)(m))
}

func (m *MultiRef) Unmarshal(bz []byte) error {
	m.Refs = nil
	return proto.Unmarshal(bz, (*multiRefCodec)(m))
}

// NewMultiRef returns a set holding refs. Duplicates are rejected.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := &MultiRef{}
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts ref at its sorted position.
func (m *MultiRef) Add(ref []byte) error {
	at, found := m.search(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[at+1:], m.Refs[at:])
	m.Refs[at] = ref
	return nil
}

// Remove takes ref out of the set.
func (m *MultiRef) Remove(ref []byte) error {
	at, found := m.search(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:at], m.Refs[at+1:]...)
	return nil
}

// search returns the position of ref, or the position it would be inserted
// at when it is not in the set.
func (m *MultiRef) search(ref []byte) (int, bool) {
	at := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return at, at < len(m.Refs) && bytes.Equal(m.Refs[at], ref)
}

func (m *MultiRef) Validate() error {
	return nil
}

func (m *MultiRef) Copy() Model {
	refs := make([][]byte, len(m.Refs))
	for i, r := range m.Refs {
		refs[i] = append([]byte(nil), r...)
	}
	return &MultiRef{Refs: refs}
}
