package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName prefixes every wallet key.
const BucketName = "cash"

// Set is the content of a wallet: a normalized set of coins.
type Set struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

var _ orm.Model = (*Set)(nil)

func (s *Set) Validate() error {
	return coin.Coins(s.Coins).Validate()
}

func (s *Set) Copy() orm.Model {
	return &Set{Coins: coin.Coins(s.Coins).Clone()}
}

// Wallet is the balance of one address. The address is the primary key.
type Wallet struct {
	owner custody.Address
	set   *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet returns an empty wallet of owner.
func NewWallet(owner custody.Address) *Wallet {
	return &Wallet{owner: owner, set: new(Set)}
}

// WalletWith returns a wallet of owner holding the normalized sum of coins.
func WalletWith(owner custody.Address, coins ...*coin.Coin) (*Wallet, error) {
	normalized, err := coin.NormalizeCoins(coins)
	if err != nil {
		return nil, err
	}
	w := NewWallet(owner)
	w.set.Coins = normalized
	return w, nil
}

func (w Wallet) Key() []byte {
	return w.owner
}

func (w *Wallet) SetKey(key []byte) {
	w.owner = key
}

func (w Wallet) Value() custody.Persistent {
	return w.set
}

func (w Wallet) Validate() error {
	if err := w.owner.Validate(); err != nil {
		return errors.Wrap(err, "wallet owner")
	}
	return w.set.Validate()
}

func (w *Wallet) Clone() orm.Object {
	clone := &Wallet{set: w.set.Copy().(*Set)}
	if len(w.owner) > 0 {
		clone.owner = append(custody.Address(nil), w.owner...)
	}
	return clone
}

// Coins returns the holdings. The result must not be modified.
func (w Wallet) Coins() coin.Coins {
	return coin.Coins(w.set.Coins)
}

func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.set.Coins = cs
	return nil
}

func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}

// Bucket stores wallets by address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewWallet(nil))}
}

// Get returns the wallet of addr, nil when there is none.
func (b Bucket) Get(db custody.ReadOnlyKVStore, addr custody.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, obj)
	}
	return w, nil
}

// GetOrCreate returns the wallet of addr or a new empty one.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, addr custody.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = NewWallet(addr)
	}
	return w, nil
}

// Save writes the wallet. An empty wallet is removed instead.
func (b Bucket) Save(db custody.KVStore, w *Wallet) error {
	if len(w.set.Coins) > 0 {
		return b.Bucket.Save(db, w)
	}
	switch ok, err := b.Bucket.Has(db, w.owner); {
	case err != nil:
		return err
	case !ok:
		return nil
	}
	return b.Bucket.Delete(db, w.owner)
}
