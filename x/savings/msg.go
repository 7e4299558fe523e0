package savings

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	pathCreatePoolMsg = "savings/create"
	pathContributeMsg = "savings/contribute"
	pathDistributeMsg = "savings/distribute"
)

// CreatePoolMsg creates a new pool. The first member must sign it.
type CreatePoolMsg struct {
	Name           string            `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Members        []custody.Address `protobuf:"bytes,2,rep,name=members,proto3,casttype=github.com/iov-one/custody.Address" json:"members,omitempty"`
	Contribution   *coin.Coin        `protobuf:"bytes,3,opt,name=contribution,proto3" json:"contribution,omitempty"`
	PayoutInterval int64             `protobuf:"varint,4,opt,name=payout_interval,json=payoutInterval,proto3" json:"payout_interval,omitempty"`
}

// ContributeMsg moves funds of a member into the pool.
type ContributeMsg struct {
	PoolID []byte          `protobuf:"bytes,1,opt,name=pool_id,json=poolId,proto3" json:"pool_id,omitempty"`
	Member custody.Address `protobuf:"bytes,2,opt,name=member,proto3,casttype=github.com/iov-one/custody.Address" json:"member,omitempty"`
	Amount *coin.Coin      `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

// DistributeMsg pays out the current round of the pool.
type DistributeMsg struct {
	PoolID []byte `protobuf:"bytes,1,opt,name=pool_id,json=poolId,proto3" json:"pool_id,omitempty"`
	Ticker string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ custody.Msg = (*CreatePoolMsg)(nil)
var _ custody.Msg = (*ContributeMsg)(nil)
var _ custody.Msg = (*DistributeMsg)(nil)

func (CreatePoolMsg) Path() string {
	return pathCreatePoolMsg
}

func (msg *CreatePoolMsg) Validate() error {
	if err := validateName(msg.Name, errors.ErrInvalidMsg); err != nil {
		return err
	}
	if err := validateMembers(msg.Members, errors.ErrInvalidMsg); err != nil {
		return err
	}
	if err := validateContribution(msg.Contribution); err != nil {
		return err
	}
	switch {
	case msg.PayoutInterval < 0:
		return errors.Wrap(errors.ErrInvalidMsg, "negative payout interval")
	case msg.PayoutInterval > maxPayoutInterval:
		return errors.Wrapf(errors.ErrInvalidMsg, "payout interval above %d", maxPayoutInterval)
	}
	return nil
}

func (ContributeMsg) Path() string {
	return pathContributeMsg
}

func (msg *ContributeMsg) Validate() error {
	if err := orm.ValidateSequence(msg.PoolID); err != nil {
		return errors.Wrap(err, "pool id")
	}
	if err := msg.Member.Validate(); err != nil {
		return errors.Wrap(err, "member")
	}
	if coin.IsEmpty(msg.Amount) || !msg.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %v", msg.Amount)
	}
	return errors.Wrap(msg.Amount.Validate(), "amount")
}

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

func (msg *DistributeMsg) Validate() error {
	if err := orm.ValidateSequence(msg.PoolID); err != nil {
		return errors.Wrap(err, "pool id")
	}
	if !coin.IsCC(msg.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %q", msg.Ticker)
	}
	return nil
}
