package orm

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketNames(t *testing.T) {
	assert.NotPanics(t, func() { NewBucket("esc", NewSimpleObj(nil, new(counter))) })
	assert.NotPanics(t, func() { NewBucket("pool_x", NewSimpleObj(nil, new(counter))) })
	assert.Panics(t, func() { NewBucket("ab", NewSimpleObj(nil, new(counter))) })
	assert.Panics(t, func() { NewBucket("Escrow", NewSimpleObj(nil, new(counter))) })
	assert.Panics(t, func() { NewBucket("with:colon", NewSimpleObj(nil, new(counter))) })
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, new(counter)))

	key := []byte("one")
	obj, err := b.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)

	require.NoError(t, b.Save(db, newCounterObj(key, "alice", 5)))

	obj, err = b.Get(db, key)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, key, obj.Key())
	assert.Equal(t, int64(5), obj.Value().(*counter).Count)

	// stored under the prefixed key
	raw, err := db.Get([]byte("cnts:one"))
	require.NoError(t, err)
	assert.NotNil(t, raw)

	ok, err := b.Has(db, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.Delete(db, key))
	obj, err = b.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketSaveValidates(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, new(counter)))

	err := b.Save(db, newCounterObj([]byte("k"), "", -1))
	assert.True(t, errors.ErrInvalidModel.Is(err))

	err = b.Save(db, newCounterObj(nil, "", 1))
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestBucketDBKeyDoesNotAlias(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, new(counter)))
	a := b.DBKey([]byte("a"))
	c := b.DBKey([]byte("c"))
	assert.Equal(t, []byte("cnts:a"), a)
	assert.Equal(t, []byte("cnts:c"), c)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, new(counter)))
	for _, k := range []string{"aa", "ab", "b"} {
		require.NoError(t, b.Save(db, newCounterObj([]byte(k), "", 1)))
	}

	qr := custody.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	require.NotNil(t, h)

	ctx := context.Background()

	res, err := h.Query(ctx, db, custody.KeyQueryMod, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("cnts:ab"), res[0].Key)

	res, err = h.Query(ctx, db, custody.KeyQueryMod, []byte("zz"))
	require.NoError(t, err)
	assert.Len(t, res, 0)

	res, err = h.Query(ctx, db, custody.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []byte("cnts:aa"), res[0].Key)
	assert.Equal(t, []byte("cnts:ab"), res[1].Key)

	res, err = h.Query(ctx, db, custody.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = h.Query(ctx, db, "unknown", nil)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix     []byte
		start, end []byte
	}{
		"empty":    {nil, nil, nil},
		"simple":   {[]byte("abc"), []byte("abc"), []byte("abd")},
		"carry":    {[]byte{1, 255}, []byte{1, 255}, []byte{2}},
		"all ones": {[]byte{255, 255}, []byte{255, 255}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}
