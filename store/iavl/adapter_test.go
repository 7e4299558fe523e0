package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter(t *testing.T) {
	store.RunCacheableSuite(t, func() (store.CacheableKVStore, func()) {
		commit := NewMemCommitStore()
		return commit.Adapter(), commit.Close
	})
}

func TestCommitPersists(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "custody-iavl-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "commit")

	k, v := []byte("escrow:seq"), []byte{0, 0, 0, 0, 0, 0, 0, 1}
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))

	// Nothing is visible in the committed state before Commit.
	got, err := commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
	commit.Close()

	// Reopen and make sure the state was persisted.
	reopened := NewCommitStore(tmpDir, "commit")
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())
	latest, err = reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
	got, err = reopened.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
