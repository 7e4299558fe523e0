package orm

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiRefKeepsSortedSet(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	err = m.Add([]byte("b"))
	assert.True(t, errors.ErrDuplicate.Is(err))

	require.NoError(t, m.Remove([]byte("a")))
	assert.Equal(t, [][]byte{[]byte("b"), []byte("c")}, m.Refs)

	err = m.Remove([]byte("a"))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestMultiRefSerialization(t *testing.T) {
	m, err := NewMultiRef([]byte("alice"), []byte("bob"))
	require.NoError(t, err)

	bz, err := m.Marshal()
	require.NoError(t, err)

	var got MultiRef
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, m.Refs, got.Refs)

	cpy := got.Copy().(*MultiRef)
	cpy.Refs[0][0] = 'X'
	assert.Equal(t, []byte("alice"), got.Refs[0])
}
