package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
)

const optKey = "escrow"

// GenesisEscrow is used to parse the json from genesis file.
type GenesisEscrow struct {
	Creator   custody.Address  `json:"creator"`
	Recipient custody.Address  `json:"recipient"`
	Amount    *coin.Coin       `json:"amount"`
	Deadline  custody.UnixTime `json:"deadline"`
}

var _ custody.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct {
	Minter cash.CoinMinter
}

// FromGenesis will parse initial escrow info from genesis and save it in the
// database. The escrowed amount is issued directly to the custody account.
func (i *Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return err
	}

	bucket := NewBucket()
	for j, e := range escrows {
		escrow := &Escrow{
			Creator:   e.Creator,
			Recipient: e.Recipient,
			Amount:    e.Amount,
			Deadline:  e.Deadline,
		}
		obj, err := bucket.Build(db, escrow)
		if err != nil {
			return err
		}
		if err := bucket.Save(db, obj); err != nil {
			return errors.Wrapf(err, "invalid escrow at position: %d", j)
		}
		if err := i.Minter.CoinMint(db, escrow.Address, *escrow.Amount); err != nil {
			return errors.Wrap(err, "failed to issue coins")
		}
	}
	return nil
}
