package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

const (
	sendTxCost  int64 = 100
	maxMemoSize       = 128
	maxRefSize        = 64
)

// SendMsg moves coins from the source wallet to the destination.
type SendMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/custody.Address" json:"source,omitempty"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/custody.Address" json:"destination,omitempty"`
	Amount      *coin.Coin      `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is a free text, human readable note.
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
	// Ref is an optional binary reference, e.g. an invoice id.
	Ref []byte `protobuf:"bytes,5,opt,name=ref,proto3" json:"ref,omitempty"`
}

var _ custody.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return "cash/send"
}

// Validate reports every problem of the message at once.
func (s *SendMsg) Validate() error {
	errs := []error{
		errors.Wrap(s.Source.Validate(), "source"),
		errors.Wrap(s.Destination.Validate(), "destination"),
	}
	switch {
	case coin.IsEmpty(s.Amount) || !s.Amount.IsPositive():
		errs = append(errs, errors.Wrapf(errors.ErrInvalidAmount, "non-positive SendMsg: %v", s.Amount))
	default:
		errs = append(errs, errors.Wrap(s.Amount.Validate(), "amount"))
	}
	if len(s.Memo) > maxMemoSize {
		errs = append(errs, errors.Wrapf(errors.ErrInvalidState, "memo longer than %d", maxMemoSize))
	}
	if len(s.Ref) > maxRefSize {
		errs = append(errs, errors.Wrapf(errors.ErrInvalidState, "ref longer than %d", maxRefSize))
	}
	return errors.Append(errs...)
}
