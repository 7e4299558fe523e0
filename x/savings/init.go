package savings

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// GenesisPool is used to parse the json from genesis file. Pools start at
// round zero with an empty balance.
type GenesisPool struct {
	Name           string            `json:"name"`
	Members        []custody.Address `json:"members"`
	Contribution   *coin.Coin        `json:"contribution"`
	PayoutInterval int64             `json:"payout_interval"`
	// LastPayout is the start of the first payout interval.
	LastPayout custody.UnixTime `json:"last_payout"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial pools from genesis and save them in the
// database.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var pools []GenesisPool
	if err := opts.ReadOptions("savings", &pools); err != nil {
		return err
	}
	bucket := NewPoolBucket()
	for i, p := range pools {
		_, err := bucket.Create(db, &Pool{
			Name:           p.Name,
			Members:        p.Members,
			Contribution:   p.Contribution,
			PayoutInterval: p.PayoutInterval,
			LastPayout:     p.LastPayout,
		})
		if err != nil {
			return errors.Wrapf(err, "pool %d", i)
		}
	}
	return nil
}
