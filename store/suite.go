package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/require"
)

// Opener returns an empty store together with a function releasing it.
type Opener func() (CacheableKVStore, func())

// RunCacheableSuite checks that a store and the cache wraps layered on top
// of it behave the same way as MemStore. Backends call it from their own
// tests.
func RunCacheableSuite(t *testing.T, open Opener) {
	t.Helper()
	t.Run("layers", func(t *testing.T) { checkLayers(t, open) })
	t.Run("shadowing", func(t *testing.T) { checkShadowing(t, open) })
	t.Run("merged ranges", func(t *testing.T) { checkMergedRanges(t, open) })
	t.Run("random ranges", func(t *testing.T) { checkRandomRanges(t, open) })
}

// ExpectValue fails unless Get returns want and Has agrees with it. A nil
// want means the key must be absent.
func ExpectValue(t testing.TB, db ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	require.Equal(t, want, got, "value of %q", key)
	has, err := db.Has(key)
	require.NoError(t, err)
	require.Equal(t, want != nil, has, "presence of %q", key)
}

func checkLayers(t *testing.T, open Opener) {
	base, done := open()
	defer done()

	escrow, pool, wallet := []byte("esc:1"), []byte("pool:1"), []byte("cash:1")

	ExpectValue(t, base, escrow, nil)
	require.NoError(t, base.Set(escrow, []byte("pending")))
	ExpectValue(t, base, escrow, []byte("pending"))

	// A layer reads through to its parent and keeps its writes private.
	layer := base.CacheWrap()
	ExpectValue(t, layer, escrow, []byte("pending"))
	require.NoError(t, layer.Set(pool, []byte("round 0")))
	ExpectValue(t, layer, pool, []byte("round 0"))
	ExpectValue(t, base, pool, nil)

	require.NoError(t, layer.Write())
	ExpectValue(t, base, pool, []byte("round 0"))

	dropped := base.CacheWrap()
	require.NoError(t, dropped.Set(wallet, []byte("100")))
	dropped.Discard()
	ExpectValue(t, base, wallet, nil)

	// Deletes reach the parent only on Write.
	release := base.CacheWrap()
	require.NoError(t, release.Delete(escrow))
	ExpectValue(t, release, escrow, nil)
	ExpectValue(t, base, escrow, []byte("pending"))
	require.NoError(t, release.Write())
	ExpectValue(t, base, escrow, nil)
	ExpectValue(t, base, pool, []byte("round 0"))
}

func checkShadowing(t *testing.T, open Opener) {
	keys := randomModels(4, 16, 1)
	vals := randomModels(4, 40, 1)
	k := func(i int) []byte { return keys[i].Key }
	v := func(i int) []byte { return vals[i].Key }

	parent, done := open()
	defer done()
	applyOps(t, parent, SetOp(k(1), v(1)), SetOp(k(2), v(2)))

	child := parent.CacheWrap()
	applyOps(t, child, SetOp(k(1), v(0)), SetOp(k(3), v(3)), DelOp(k(2)))

	ExpectValue(t, parent, k(1), v(1))
	ExpectValue(t, parent, k(2), v(2))
	ExpectValue(t, parent, k(3), nil)

	want := map[int][]byte{1: v(0), 2: nil, 3: v(3)}
	for i, val := range want {
		ExpectValue(t, child, k(i), val)
	}
	require.NoError(t, child.Write())
	for i, val := range want {
		ExpectValue(t, parent, k(i), val)
	}
}

func checkMergedRanges(t *testing.T, open Opener) {
	ms := randomModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	plain := sortedModels(a, b, c)
	overwritten := sortedModels(a2, b2, c, d)

	cases := map[string]struct {
		parent []Op
		child  []Op
		ranges []keyRange
	}{
		"child only": {
			child: setOps(a, b, c),
			ranges: []keyRange{
				{want: plain},
				{start: plain[1].Key, end: plain[2].Key, want: plain[1:2]},
				{desc: true, want: reversed(plain)},
			},
		},
		"parent only": {
			parent: setOps(a, b, c),
			ranges: []keyRange{
				{want: plain},
				{start: plain[1].Key, end: plain[2].Key, want: plain[1:2]},
				{desc: true, want: reversed(plain)},
			},
		},
		"child values win": {
			parent: setOps(a, b, c),
			child:  setOps(a2, b2, d),
			ranges: []keyRange{
				{want: overwritten},
				{start: overwritten[1].Key, end: overwritten[3].Key, want: overwritten[1:3]},
				{desc: true, want: reversed(overwritten)},
			},
		},
		"child deletes hide parent": {
			parent: setOps(a, c, d),
			child:  delOps(a, b, d),
			ranges: []keyRange{
				{want: []Model{c}},
				{desc: true, want: []Model{c}},
				{end: c.Key, want: nil},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, done := open()
			defer done()
			applyOps(t, base, tc.parent...)
			child := base.CacheWrap()
			applyOps(t, child, tc.child...)
			for _, r := range tc.ranges {
				r.check(t, child)
			}
		})
	}
}

func checkRandomRanges(t *testing.T, open Opener) {
	const size = 40

	inParent := randomModels(size, 8, 20)
	inChild := randomModels(size, 8, 20)
	all := sortedModels(append(append([]Model{}, inParent...), inChild...)...)

	base, done := open()
	defer done()
	// Deleting keys that never existed must not show up anywhere.
	applyOps(t, base, append(setOps(inParent...), delOps(randomModels(10, 8, 20)...)...)...)
	child := base.CacheWrap()
	applyOps(t, child, append(setOps(inChild...), delOps(randomModels(10, 8, 20)...)...)...)

	ranges := []keyRange{
		{want: all},
		{start: all[10].Key, want: all[10:]},
		{end: all[size-8].Key, want: all[:size-8]},
		{start: all[17].Key, end: all[28].Key, want: all[17:28]},
		{desc: true, want: reversed(all)},
		{start: all[34].Key, desc: true, want: reversed(all[34:])},
		{end: all[19].Key, desc: true, want: reversed(all[:19])},
		{start: all[6].Key, end: all[26].Key, desc: true, want: reversed(all[6:26])},
	}
	for _, r := range ranges {
		r.check(t, child)
	}
}

type keyRange struct {
	start, end []byte
	desc       bool
	want       []Model
}

func (r keyRange) check(t testing.TB, db ReadOnlyKVStore) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if r.desc {
		it, err = db.ReverseIterator(r.start, r.end)
	} else {
		it, err = db.Iterator(r.start, r.end)
	}
	require.NoError(t, err)
	defer it.Release()

	for i, want := range r.want {
		key, value, err := it.Next()
		require.NoError(t, err, "entry %d", i)
		if !bytes.Equal(want.Key, key) {
			t.Fatalf("entry %d: want key %X, got %X", i, want.Key, key)
		}
		require.Equal(t, want.Value, value, "entry %d", i)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want the iterator to be done, got %+v", err)
	}
}

func applyOps(t testing.TB, db SetDeleter, ops ...Op) {
	t.Helper()
	for _, op := range ops {
		require.NoError(t, op.Apply(db))
	}
}

func setOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = SetOp(m.Key, m.Value)
	}
	return ops
}

func delOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = DelOp(m.Key)
	}
	return ops
}

func randomModels(count, keySize, valueSize int) []Model {
	ms := make([]Model, count)
	for i := range ms {
		ms[i] = Pair(randomBytes(keySize), randomBytes(valueSize))
	}
	return ms
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func sortedModels(ms ...Model) []Model {
	out := append([]Model(nil), ms...)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Key, out[j].Key) < 0
	})
	return out
}

func reversed(ms []Model) []Model {
	out := make([]Model, len(ms))
	for i, m := range ms {
		out[len(ms)-1-i] = m
	}
	return out
}
