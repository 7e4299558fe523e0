package savings

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	a, b := custodytest.RandomAddr(t), custodytest.RandomAddr(t)
	raw := fmt.Sprintf(`{"savings": [{
		"name": "market women",
		"members": ["%s", "%s"],
		"contribution": "50 IOV",
		"payout_interval": 604800,
		"last_payout": "2026-01-05T00:00:00Z"
	}]}`, a, b)

	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	pool, err := NewPoolBucket().GetPool(db, custodytest.SequenceID(0))
	require.NoError(t, err)
	assert.Equal(t, "market women", pool.Name)
	assert.Equal(t, []custody.Address{a, b}, pool.Members)
	assert.Equal(t, int64(50), pool.Contribution.Whole)
	assert.Equal(t, int64(604800), pool.PayoutInterval)
	assert.Equal(t, custody.UnixTime(1767571200), pool.LastPayout)
	assert.Equal(t, PoolAccount(custodytest.SequenceID(0)), pool.Address)
}

func TestGenesisWithoutMembers(t *testing.T) {
	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(`{"savings": [{"name": "x", "contribution": "1 IOV"}]}`), &opts))
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)
}
