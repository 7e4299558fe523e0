package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home directory with a genesis file as written by
// tendermint init.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "custody-init")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, "config"), 0755))
	genesis := `{"genesis_time":"2026-01-01T00:00:00Z","chain_id":"test-chain-LgVOZ0","validators":[{"power":"10"}]}`
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "config", "genesis.json"), []byte(genesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func readDoc(t *testing.T, home string) GenesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	var gotArgs []string
	gen := func(args []string) (json.RawMessage, error) {
		gotArgs = args
		return json.RawMessage(`{"cash":[]}`), nil
	}

	err := InitCmd(gen, log.NewNopLogger(), home, []string{"IOV"})
	require.NoError(t, err)
	assert.Equal(t, []string{"IOV"}, gotArgs)

	doc := readDoc(t, home)
	// keep old values, and add our values
	assert.EqualValues(t, `"test-chain-LgVOZ0"`, doc["chain_id"])
	assert.NotEmpty(t, doc["validators"])
	assert.JSONEq(t, `{"cash":[]}`, string(doc[appStateKey]))

	// a second run must not silently replace the state
	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrDuplicate.Is(err))

	overwrite := func([]string) (json.RawMessage, error) {
		return json.RawMessage(`{"escrow":[]}`), nil
	}
	require.NoError(t, InitCmd(overwrite, log.NewNopLogger(), home, []string{"-i"}))
	assert.JSONEq(t, `{"escrow":[]}`, string(readDoc(t, home)[appStateKey]))
}

func TestInitWithoutGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "custody-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) { return json.RawMessage(`{}`), nil }
	assert.Error(t, InitCmd(gen, log.NewNopLogger(), home, nil))
}

func TestInitGeneratorFailure(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	gen := func([]string) (json.RawMessage, error) { return nil, errors.ErrInvalidInput }
	err := InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.Nil(t, readDoc(t, home)[appStateKey])
}

func TestGenerateCoinKey(t *testing.T) {
	addr, seed, err := GenerateCoinKey()
	require.NoError(t, err)
	assert.NoError(t, addr.Validate())
	assert.Len(t, seed, 64)

	other, _, err := GenerateCoinKey()
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))
}
