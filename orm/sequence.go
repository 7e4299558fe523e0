package orm

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
//
// The counter is kept in its own key space, separate from any bucket
// records, and the first value handed out is 0.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// ID returns the database key the counter state is stored under.
func (s Sequence) ID() []byte {
	return s.id
}

// NextVal returns the current value of the sequence encoded as 8 bytes and
// advances the counter.
func (s *Sequence) NextVal(db custody.KVStore) ([]byte, error) {
	_, bz, err := s.next(db)
	return bz, err
}

// NextInt returns the current value of the sequence and advances the
// counter.
func (s *Sequence) NextInt(db custody.KVStore) (int64, error) {
	val, _, err := s.next(db)
	return val, err
}

// Latest returns the value that the next call to NextVal or NextInt will
// return. This method does not modify the sequence state.
func (s *Sequence) Latest(db custody.ReadOnlyKVStore) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	val, err := DecodeSequence(raw)
	if err != nil {
		return 0, nil, err
	}
	return val, EncodeSequence(val), nil
}

func (s *Sequence) next(db custody.KVStore) (int64, []byte, error) {
	val, raw, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	if val < 0 || val+1 < 0 {
		return 0, nil, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, nil, err
	}
	return val, raw, nil
}

// DecodeSequence parses an 8 byte big endian sequence value. A missing value
// decodes to zero.
func DecodeSequence(bz []byte) (int64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "sequence must be 8 bytes, got %d", len(bz))
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val), nil
}

// EncodeSequence serializes a sequence value to 8 bytes, big endian, so
// that the lexicographical order of keys matches the numeric order.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence checks that id looks like a value handed out by a
// Sequence.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	case 8:
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "sequence must be 8 bytes, got %d", len(id))
	}
}
