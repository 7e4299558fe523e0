package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// CommitStore keeps the committed state and the two working copies ABCI
// needs: one for DeliverTx and a throwaway one for CheckTx.
type CommitStore struct {
	committed custody.CommitKVStore
	deliver   custody.KVCacheWrap
	check     custody.KVCacheWrap
}

// NewCommitStore loads the latest version of store. It panics when the
// store cannot be loaded, there is no way to start without state.
func NewCommitStore(store custody.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (custody.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the last commit. Pending
// check state is dropped.
func (cs *CommitStore) Commit() (custody.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return custody.CommitID{}, err
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() custody.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() custody.CacheableKVStore {
	return cs.deliver
}

// QueryStore is a read only view of the last commit.
func (cs *CommitStore) QueryStore() custody.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// chainIDKey starts with an underscore, which no bucket name may, so it
// never collides with a record.
var chainIDKey = []byte("_c:chainID")

// mustLoadChainID returns the stored chain id, empty before genesis.
func mustLoadChainID(db custody.ReadOnlyKVStore) string {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID stores the chain id once. A second call fails.
func saveChainID(db custody.KVStore, chainID string) error {
	if !custody.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	switch set, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case set:
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
