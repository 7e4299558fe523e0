package savings

import (
	"math"
	"unicode/utf8"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// maxMembers defines the maximum number of members of a single pool.
	maxMembers = 200
	// maxNameLength is the maximum length of a pool name, in characters.
	maxNameLength = 128
	// maxPayoutInterval is a hundred years, in seconds.
	maxPayoutInterval = 100 * 365 * 24 * 60 * 60
)

// Pool is a rotating savings pool. Its membership and contribution unit are
// fixed at creation.
type Pool struct {
	Name         string            `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Members      []custody.Address `protobuf:"bytes,2,rep,name=members,proto3,casttype=github.com/iov-one/custody.Address" json:"members,omitempty"`
	Contribution *coin.Coin        `protobuf:"bytes,3,opt,name=contribution,proto3" json:"contribution,omitempty"`
	// CurrentRound is the number of payouts done so far.
	CurrentRound int64 `protobuf:"varint,4,opt,name=current_round,json=currentRound,proto3" json:"current_round,omitempty"`
	// TotalBalance is the amount of the pool currency held in custody.
	TotalBalance int64 `protobuf:"varint,5,opt,name=total_balance,json=totalBalance,proto3" json:"total_balance,omitempty"`
	// PayoutInterval is the minimal number of seconds between payouts.
	PayoutInterval int64            `protobuf:"varint,6,opt,name=payout_interval,json=payoutInterval,proto3" json:"payout_interval,omitempty"`
	LastPayout     custody.UnixTime `protobuf:"varint,7,opt,name=last_payout,json=lastPayout,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"last_payout,omitempty"`
	Address        custody.Address  `protobuf:"bytes,8,opt,name=address,proto3,casttype=github.com/iov-one/custody.Address" json:"address,omitempty"`
}

var _ orm.Model = (*Pool)(nil)

func (p *Pool) Validate() error {
	if err := validateName(p.Name, errors.ErrInvalidModel); err != nil {
		return err
	}
	if err := validateMembers(p.Members, errors.ErrInvalidModel); err != nil {
		return err
	}
	if err := validateContribution(p.Contribution); err != nil {
		return err
	}
	switch {
	case p.CurrentRound < 0:
		return errors.Wrap(errors.ErrInvalidModel, "negative round")
	case p.TotalBalance < 0:
		return errors.Wrap(errors.ErrInvalidModel, "negative balance")
	case p.PayoutInterval < 0:
		return errors.Wrap(errors.ErrInvalidModel, "negative payout interval")
	case p.PayoutInterval > maxPayoutInterval:
		return errors.Wrapf(errors.ErrInvalidModel, "payout interval above %d", maxPayoutInterval)
	}
	if err := p.LastPayout.Validate(); err != nil {
		return errors.Wrap(err, "last payout")
	}
	if err := p.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

func (p *Pool) Copy() orm.Model {
	cpy := &Pool{
		Name:           p.Name,
		Members:        make([]custody.Address, len(p.Members)),
		Contribution:   p.Contribution.Clone(),
		CurrentRound:   p.CurrentRound,
		TotalBalance:   p.TotalBalance,
		PayoutInterval: p.PayoutInterval,
		LastPayout:     p.LastPayout,
		Address:        p.Address.Clone(),
	}
	for i, m := range p.Members {
		cpy.Members[i] = m.Clone()
	}
	return cpy
}

// IsMember returns true if given address is one of the pool members.
func (p *Pool) IsMember(addr custody.Address) bool {
	for _, m := range p.Members {
		if m.Equals(addr) {
			return true
		}
	}
	return false
}

// Recipient returns the member that receives the payout of the current
// round.
func (p *Pool) Recipient() custody.Address {
	return p.Members[p.CurrentRound%int64(len(p.Members))]
}

// PayoutAmount returns the value of a single payout, the contribution of
// every member.
func (p *Pool) PayoutAmount() (coin.Coin, error) {
	return p.Contribution.Multiply(int64(len(p.Members)))
}

// NextPayout returns the earliest time of the next payout. A sum beyond
// the int64 range stays at the largest representable time, so the pool is
// never ready.
func (p *Pool) NextPayout() custody.UnixTime {
	if p.PayoutInterval > math.MaxInt64-int64(p.LastPayout) {
		return custody.UnixTime(math.MaxInt64)
	}
	return p.LastPayout + custody.UnixTime(p.PayoutInterval)
}

// IsPayoutReady returns true if the payout interval has elapsed at given
// time.
func (p *Pool) IsPayoutReady(now custody.UnixTime) bool {
	return now >= p.NextPayout()
}

// validateMembers returns an error if given list of members is not valid.
// Model validation returns different class of error than message validation,
// that is why require base error class to be given.
func validateMembers(members []custody.Address, baseErr *errors.Error) error {
	switch n := len(members); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "no members")
	case n > maxMembers:
		return errors.Wrap(baseErr, "too many members")
	}

	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "member %d", i)
		}
		addr := m.String()
		if _, ok := seen[addr]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "member %q is not unique", addr)
		}
		seen[addr] = struct{}{}
	}
	return nil
}

func validateName(name string, baseErr *errors.Error) error {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return errors.Wrap(baseErr, "name is required")
	case n > maxNameLength:
		return errors.Wrapf(baseErr, "name longer than %d", maxNameLength)
	}
	return nil
}

func validateContribution(c *coin.Coin) error {
	if coin.IsEmpty(c) || !c.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive contribution: %v", c)
	}
	return errors.Wrap(c.Validate(), "contribution")
}

const (
	// BucketName is where the pools are stored.
	BucketName = "pool"
	// MemberIndex is the name of the index of pools by member.
	MemberIndex = "member"
)

// PoolBucket stores pools under sequence generated ids.
type PoolBucket struct {
	orm.ModelBucket
	idSeq orm.Sequence
}

// NewPoolBucket returns a bucket for managing pools state.
func NewPoolBucket() *PoolBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Pool))).
		WithMultiKeyIndex(MemberIndex, idxMembers, false)
	return &PoolBucket{
		ModelBucket: orm.NewModelBucket(b),
		idSeq:       b.Sequence(orm.SeqID),
	}
}

// Create stores a new pool under the next id of the sequence and returns that
// id. The custody address of the pool is derived from its id.
func (b *PoolBucket) Create(db custody.KVStore, pool *Pool) ([]byte, error) {
	key, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	pool.Address = PoolAccount(key)
	if err := b.Put(db, key, pool); err != nil {
		return nil, err
	}
	return key, nil
}

// GetPool returns the pool stored under given id or ErrNotFound.
func (b *PoolBucket) GetPool(db custody.ReadOnlyKVStore, id []byte) (*Pool, error) {
	var pool Pool
	if err := b.One(db, id, &pool); err != nil {
		return nil, errors.Wrapf(err, "pool %X", id)
	}
	return &pool, nil
}

// ByMember returns all pools given address is a member of.
func (b *PoolBucket) ByMember(db custody.ReadOnlyKVStore, member custody.Address) ([]*Pool, error) {
	models, err := b.ByIndex(db, MemberIndex, member)
	if err != nil {
		return nil, err
	}
	pools := make([]*Pool, len(models))
	for i, m := range models {
		pools[i] = m.(*Pool)
	}
	return pools, nil
}

// PoolAccount returns the custody address of the pool with given id.
func PoolAccount(key []byte) custody.Address {
	return custody.NewCondition("savings", "seq", key).Address()
}

func idxMembers(obj orm.Object) ([][]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "Cannot take index of nil")
	}
	pool, ok := obj.Value().(*Pool)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "Can only take index of Pool")
	}
	keys := make([][]byte, len(pool.Members))
	for i, m := range pool.Members {
		keys[i] = m
	}
	return keys, nil
}
