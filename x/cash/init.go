package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// GenesisAccount is one entry of the "cash" genesis section. The address
// is written in hex.
type GenesisAccount struct {
	Address custody.Address `json:"address"`
	Coins   coin.Coins      `json:"coins"`
}

// Initializer loads the genesis balances.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions(BucketName, &accounts); err != nil {
		return err
	}
	wallets := NewBucket()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		w, err := WalletWith(acc.Address, acc.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %s", acc.Address)
		}
		if err := wallets.Save(db, w); err != nil {
			return err
		}
	}
	return nil
}
