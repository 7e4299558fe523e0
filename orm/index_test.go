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

func indexedBucket() Bucket {
	return NewBucket("cnts", NewSimpleObj(nil, new(counter))).
		WithIndex("owner", counterOwner, false).
		WithIndex("count", counterCount, true)
}

func keysOf(objs []Object) []string {
	var res []string
	for _, o := range objs {
		res = append(res, string(o.Key()))
	}
	return res
}

func TestIndexInsertUpdateDelete(t *testing.T) {
	db := store.MemStore()
	b := indexedBucket()

	require.NoError(t, b.Save(db, newCounterObj([]byte("k1"), "alice", 1)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("k2"), "alice", 2)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("k3"), "bob", 3)))

	objs, err := b.GetIndexed(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keysOf(objs))

	objs, err = b.GetIndexed(db, "count", EncodeSequence(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"k3"}, keysOf(objs))

	// move k1 from alice to bob
	require.NoError(t, b.Save(db, newCounterObj([]byte("k1"), "bob", 1)))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k2"}, keysOf(objs))
	objs, err = b.GetIndexed(db, "owner", []byte("bob"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k3"}, keysOf(objs))

	// removing the owner drops it from the index
	require.NoError(t, b.Save(db, newCounterObj([]byte("k2"), "", 2)))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Len(t, objs, 0)

	require.NoError(t, b.Delete(db, []byte("k3")))
	objs, err = b.GetIndexed(db, "owner", []byte("bob"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, keysOf(objs))
	objs, err = b.GetIndexed(db, "count", EncodeSequence(3))
	require.NoError(t, err)
	assert.Len(t, objs, 0)
}

func TestUniqueIndexRejectsDuplicate(t *testing.T) {
	db := store.MemStore()
	b := indexedBucket()

	require.NoError(t, b.Save(db, newCounterObj([]byte("k1"), "alice", 7)))
	err := b.Save(db, newCounterObj([]byte("k2"), "bob", 7))
	assert.True(t, errors.ErrDuplicate.Is(err))

	// saving the same object again is not a conflict
	require.NoError(t, b.Save(db, newCounterObj([]byte("k1"), "carol", 7)))
}

func TestUnknownIndex(t *testing.T) {
	db := store.MemStore()
	_, err := indexedBucket().GetIndexed(db, "missing", []byte("a"))
	assert.True(t, ErrInvalidIndex.Is(err))
}

func TestDuplicateIndexPanics(t *testing.T) {
	assert.Panics(t, func() {
		indexedBucket().WithIndex("owner", counterOwner, true)
	})
}

func TestMultiKeyIndex(t *testing.T) {
	db := store.MemStore()
	both := func(obj Object) ([][]byte, error) {
		c := obj.Value().(*counter)
		// index under the owner and a second synthetic key, with a duplicate
		return [][]byte{c.Owner, []byte("all"), c.Owner}, nil
	}
	b := NewBucket("cnts", NewSimpleObj(nil, new(counter))).
		WithMultiKeyIndex("tags", both, false)

	require.NoError(t, b.Save(db, newCounterObj([]byte("k1"), "alice", 1)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("k2"), "bob", 1)))

	objs, err := b.GetIndexed(db, "tags", []byte("all"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keysOf(objs))

	objs, err = b.GetIndexed(db, "tags", []byte("bob"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k2"}, keysOf(objs))
}

func TestIndexQuery(t *testing.T) {
	db := store.MemStore()
	b := indexedBucket()
	require.NoError(t, b.Save(db, newCounterObj([]byte("k1"), "alice", 1)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("k2"), "alfred", 2)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("k3"), "bob", 3)))

	qr := custody.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/cnts/owner")
	require.NotNil(t, h)

	ctx := context.Background()
	res, err := h.Query(ctx, db, custody.KeyQueryMod, []byte("alice"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("cnts:k1"), res[0].Key)

	res, err = h.Query(ctx, db, custody.PrefixQueryMod, []byte("al"))
	require.NoError(t, err)
	require.Len(t, res, 2)

	res, err = h.Query(ctx, db, custody.KeyQueryMod, []byte("nobody"))
	require.NoError(t, err)
	assert.Len(t, res, 0)
}
