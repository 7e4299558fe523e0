package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	pathCreateMsg  = "escrow/create"
	pathReleaseMsg = "escrow/release"
	pathRefundMsg  = "escrow/refund"
)

// CreateMsg deposits the amount of the creator into a new escrow.
type CreateMsg struct {
	Creator   custody.Address  `protobuf:"bytes,1,opt,name=creator,proto3,casttype=github.com/iov-one/custody.Address" json:"creator,omitempty"`
	Recipient custody.Address  `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/iov-one/custody.Address" json:"recipient,omitempty"`
	Amount    *coin.Coin       `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Deadline  custody.UnixTime `protobuf:"varint,4,opt,name=deadline,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"deadline,omitempty"`
}

// ReleaseMsg sends the escrowed funds to the recipient.
type ReleaseMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
	// Ticker must match the currency of the escrowed amount.
	Ticker string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

// RefundMsg returns the escrowed funds to the creator.
type RefundMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
	// Ticker must match the currency of the escrowed amount.
	Ticker string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ custody.Msg = (*CreateMsg)(nil)
var _ custody.Msg = (*ReleaseMsg)(nil)
var _ custody.Msg = (*RefundMsg)(nil)

//--------- Path routing --------

// Path fulfills custody.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Path fulfills custody.Msg interface to allow routing
func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

// Path fulfills custody.Msg interface to allow routing
func (RefundMsg) Path() string {
	return pathRefundMsg
}

//--------- Validation --------

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if err := m.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := validateAmount(m.Amount); err != nil {
		return err
	}
	if m.Deadline == 0 {
		return errors.Wrap(errors.ErrInvalidMsg, "deadline is required")
	}
	return errors.Wrap(m.Deadline.Validate(), "deadline")
}

// Validate makes sure that this is sensible
func (m *ReleaseMsg) Validate() error {
	return validateRef(m.EscrowID, m.Ticker)
}

// Validate makes sure that this is sensible
func (m *RefundMsg) Validate() error {
	return validateRef(m.EscrowID, m.Ticker)
}

func validateRef(id []byte, ticker string) error {
	if err := orm.ValidateSequence(id); err != nil {
		return errors.Wrap(err, "escrow id")
	}
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %q", ticker)
	}
	return nil
}
