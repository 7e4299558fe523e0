package orm

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceStartsAtZero(t *testing.T) {
	db := store.MemStore()

	s := NewSequence("esc", "id")
	for want := int64(0); want < 5; want++ {
		got, err := s.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	latest, raw, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(5), latest)
	assert.Equal(t, EncodeSequence(5), raw)
}

func TestSequenceNextValIsOrdered(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("pool", "id")

	first, err := s.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, first)

	second, err := s.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, second)
	assert.True(t, string(first) < string(second))
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("esc", "id")
	b := NewSequence("pool", "id")

	for i := 0; i < 3; i++ {
		_, err := a.NextInt(db)
		require.NoError(t, err)
	}
	got, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestSequenceKeyDoesNotCollideWithRecords(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("esc", NewSimpleObj(nil, new(counter)))
	s := b.Sequence(SeqID)

	assert.Equal(t, []byte("_s.esc:id"), s.ID())

	// A record stored under the id key does not move the counter.
	require.NoError(t, b.Save(db, newCounterObj([]byte("id"), "", 7)))
	got, err := s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestSequenceRollbackWithCache(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("esc", "id")

	cache := db.CacheWrap()
	_, err := s.NextInt(cache)
	require.NoError(t, err)
	cache.Discard()

	got, err := s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	v, err = DecodeSequence(EncodeSequence(12345))
	require.NoError(t, err)
	assert.Equal(t, int64(12345), v)

	_, err = DecodeSequence([]byte{1, 2, 3})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestValidateSequence(t *testing.T) {
	assert.NoError(t, ValidateSequence(EncodeSequence(1)))
	assert.True(t, errors.ErrEmpty.Is(ValidateSequence(nil)))
	assert.True(t, errors.ErrInvalidInput.Is(ValidateSequence([]byte{1})))
}
