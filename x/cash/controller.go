package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// Balancer is an interface to query the amount of coins held by an address.
type Balancer interface {
	// Balance returns the coins held by given address, an empty set if the
	// wallet does not exist.
	Balance(custody.ReadOnlyKVStore, custody.Address) (coin.Coins, error)
}

// CoinMover is an interface for moving coins between addresses.
type CoinMover interface {
	// MoveCoins moves the given amount from src to dest. It fails with
	// ErrTransferFailed and leaves both wallets untouched if the transfer
	// cannot be done.
	MoveCoins(custody.KVStore, custody.Address, custody.Address, coin.Coin) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	// CoinMint issues given amount of coins to the destination address.
	CoinMint(custody.KVStore, custody.Address, coin.Coin) error
}

// Controller is the funds mover used by every extension that needs to
// account for value.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController keeps balances in a wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return coin.Coins{}, nil
	}
	return w.Coins().Clone(), nil
}

// MoveCoins fails when src holds less than amount.
func (c BaseController) MoveCoins(db custody.KVStore, src custody.Address, dest custody.Address, amount coin.Coin) error {
	if err := c.moveCoins(db, src, dest, amount); err != nil {
		return errors.Wrapf(errors.ErrTransferFailed, "%s from %s to %s: %s", amount, src, dest, err)
	}
	return nil
}

func (c BaseController) moveCoins(db custody.KVStore, src custody.Address, dest custody.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %s", amount)
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrap(errors.ErrInsufficientAmount, "funds")
	}

	// Moving to self only needs the balance check.
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	// Compute both sides before writing anything.
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// CoinMint adds amount to dest. A negative amount burns coins but may not
// leave the wallet below zero.
func (c BaseController) CoinMint(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	if !recipient.Coins().IsNonNegative() {
		return errors.Wrap(errors.ErrInsufficientAmount, "wallet would go below zero")
	}
	return c.bucket.Save(db, recipient)
}
