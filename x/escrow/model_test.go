package escrow

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowValidate(t *testing.T) {
	valid := func() *Escrow {
		return &Escrow{
			Creator:   custodytest.RandomAddr(t),
			Recipient: custodytest.RandomAddr(t),
			Amount:    coin.NewCoinp(10, "IOV"),
			Deadline:  1000,
			Address:   Condition(custodytest.SequenceID(1)).Address(),
		}
	}

	cases := map[string]struct {
		mutate  func(*Escrow)
		wantErr *errors.Error
	}{
		"valid":            {mutate: func(*Escrow) {}},
		"released":         {mutate: func(e *Escrow) { e.Released = true }},
		"missing creator":  {mutate: func(e *Escrow) { e.Creator = nil }, wantErr: errors.ErrInvalidInput},
		"missing amount":   {mutate: func(e *Escrow) { e.Amount = nil }, wantErr: errors.ErrInvalidAmount},
		"missing deadline": {mutate: func(e *Escrow) { e.Deadline = 0 }, wantErr: errors.ErrInvalidModel},
		"missing address":  {mutate: func(e *Escrow) { e.Address = nil }, wantErr: errors.ErrInvalidInput},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := valid()
			tc.mutate(e)
			err := e.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestEscrowCopyIsIndependent(t *testing.T) {
	orig := &Escrow{
		Creator:   custodytest.RandomAddr(t),
		Recipient: custodytest.RandomAddr(t),
		Amount:    coin.NewCoinp(10, "IOV"),
		Deadline:  1000,
		Address:   Condition(custodytest.SequenceID(1)).Address(),
	}
	cpy := orig.Copy().(*Escrow)
	assert.Equal(t, orig, cpy)

	cpy.Amount.Whole = 99
	cpy.Creator[0]++
	assert.Equal(t, int64(10), orig.Amount.Whole)
	assert.NotEqual(t, orig.Creator, cpy.Creator)
}

func TestBucketIDs(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()

	for i := uint64(0); i < 3; i++ {
		next, err := bucket.NextID(db)
		require.NoError(t, err)
		assert.Equal(t, custodytest.SequenceID(i), next)

		escrow := &Escrow{
			Creator:   custodytest.RandomAddr(t),
			Recipient: custodytest.RandomAddr(t),
			Amount:    coin.NewCoinp(10, "IOV"),
			Deadline:  1000,
		}
		obj, err := bucket.Build(db, escrow)
		require.NoError(t, err)
		assert.Equal(t, custodytest.SequenceID(i), obj.Key())
		assert.Equal(t, Condition(obj.Key()).Address(), escrow.Address)
		require.NoError(t, bucket.Save(db, obj))
	}

	// The counter and the records live in separate key spaces.
	raw, err := db.Get([]byte("_s.esc:id"))
	require.NoError(t, err)
	assert.Equal(t, custodytest.SequenceID(3), raw)
	ok, err := db.Has(append([]byte("esc:"), custodytest.SequenceID(2)...))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBucketRejectsOtherModels(t *testing.T) {
	err := NewBucket().Save(store.MemStore(), orm.NewSimpleObj(custodytest.SequenceID(1), &orm.MultiRef{}))
	assert.True(t, errors.ErrInvalidModel.Is(err))
}

func TestBucketIndexes(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()

	alice := custodytest.RandomAddr(t)
	bob := custodytest.RandomAddr(t)
	charlie := custodytest.RandomAddr(t)
	parties := [][2]custody.Address{{alice, bob}, {alice, charlie}, {bob, charlie}}
	for _, p := range parties {
		obj, err := bucket.Build(db, &Escrow{
			Creator:   p[0],
			Recipient: p[1],
			Amount:    coin.NewCoinp(1, "IOV"),
			Deadline:  1000,
		})
		require.NoError(t, err)
		require.NoError(t, bucket.Save(db, obj))
	}

	created, err := bucket.ByCreator(db, alice)
	require.NoError(t, err)
	assert.Len(t, created, 2)

	received, err := bucket.ByRecipient(db, charlie)
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, bob, AsEscrow(received[1]).Creator)

	none, err := bucket.ByRecipient(db, alice)
	require.NoError(t, err)
	assert.Empty(t, none)
}
