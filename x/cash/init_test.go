package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	addr := custodytest.NewCondition().Address()
	genesis := `{"cash": [{"address": "` + addr.String() + `", "coins": ["100 IOV", {"whole": 5, "ticker": "ETH"}]}]}`

	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	cs, err := NewController(NewBucket()).Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(100), cs.Balance("IOV").Whole)
	assert.Equal(t, int64(5), cs.Balance("ETH").Whole)
}

func TestGenesisInvalidAddress(t *testing.T) {
	opts := custody.Options{"cash": []byte(`[{"address": "", "coins": ["1 IOV"]}]`)}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.Error(t, err)
}

func TestGenesisEmpty(t *testing.T) {
	assert.NoError(t, Initializer{}.FromGenesis(custody.Options{}, store.MemStore()))
}

func TestGenesisMalformed(t *testing.T) {
	opts := custody.Options{"cash": []byte(`{"address": 1}`)}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
