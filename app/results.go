package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ResultSet is one side of a query response. The Key of a response is the
// ResultSet of the found keys, the Value the ResultSet of their values in
// the same order.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetCodec ResultSet

func (m *resultSetCodec) Reset()         { *m = resultSetCodec{} }
func (m *resultSetCodec) String() string { return proto.CompactTextString(m) }
func (*resultSetCodec) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetCodec)(m))
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetCodec)(m))
}

func ResultsFromKeys(models []custody.Model) *ResultSet {
	return collect(models, func(m custody.Model) []byte { return m.Key })
}

func ResultsFromValues(models []custody.Model) *ResultSet {
	return collect(models, func(m custody.Model) []byte { return m.Value })
}

func collect(models []custody.Model, field func(custody.Model) []byte) *ResultSet {
	out := make([][]byte, len(models))
	for i, m := range models {
		out[i] = field(m)
	}
	return &ResultSet{Results: out}
}

// JoinResults pairs the keys and values of a query response again.
func JoinResults(keys, values *ResultSet) ([]custody.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%d keys and %d values", len(keys.Results), len(values.Results))
	}
	models := make([]custody.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = custody.Pair(k, values.Results[i])
	}
	return models, nil
}
