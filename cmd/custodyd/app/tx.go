package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/savings"
	"github.com/iov-one/custody/x/sigs"
)

// Tx is the transaction envelope accepted by the chain. It carries exactly
// one message together with the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CashSendMsg          *cash.SendMsg          `protobuf:"bytes,51,opt,name=cash_send_msg,json=cashSendMsg,proto3" json:"cash_send_msg,omitempty"`
	EscrowCreateMsg      *escrow.CreateMsg      `protobuf:"bytes,52,opt,name=escrow_create_msg,json=escrowCreateMsg,proto3" json:"escrow_create_msg,omitempty"`
	EscrowReleaseMsg     *escrow.ReleaseMsg     `protobuf:"bytes,53,opt,name=escrow_release_msg,json=escrowReleaseMsg,proto3" json:"escrow_release_msg,omitempty"`
	EscrowRefundMsg      *escrow.RefundMsg      `protobuf:"bytes,54,opt,name=escrow_refund_msg,json=escrowRefundMsg,proto3" json:"escrow_refund_msg,omitempty"`
	SavingsCreateMsg     *savings.CreatePoolMsg `protobuf:"bytes,55,opt,name=savings_create_msg,json=savingsCreateMsg,proto3" json:"savings_create_msg,omitempty"`
	SavingsContributeMsg *savings.ContributeMsg `protobuf:"bytes,56,opt,name=savings_contribute_msg,json=savingsContributeMsg,proto3" json:"savings_contribute_msg,omitempty"`
	SavingsDistributeMsg *savings.DistributeMsg `protobuf:"bytes,57,opt,name=savings_distribute_msg,json=savingsDistributeMsg,proto3" json:"savings_distribute_msg,omitempty"`
}

var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTx wraps the message into a transaction envelope.
func NewTx(msg custody.Msg) (*Tx, error) {
	tx := new(Tx)
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSendMsg = m
	case *escrow.CreateMsg:
		tx.EscrowCreateMsg = m
	case *escrow.ReleaseMsg:
		tx.EscrowReleaseMsg = m
	case *escrow.RefundMsg:
		tx.EscrowRefundMsg = m
	case *savings.CreatePoolMsg:
		tx.SavingsCreateMsg = m
	case *savings.ContributeMsg:
		tx.SavingsContributeMsg = m
	case *savings.DistributeMsg:
		tx.SavingsDistributeMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrInvalidType, "unsupported message %T", msg)
	}
	return tx, nil
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	var msgs []custody.Msg
	add := func(present bool, msg custody.Msg) {
		if present {
			msgs = append(msgs, msg)
		}
	}
	add(tx.CashSendMsg != nil, tx.CashSendMsg)
	add(tx.EscrowCreateMsg != nil, tx.EscrowCreateMsg)
	add(tx.EscrowReleaseMsg != nil, tx.EscrowReleaseMsg)
	add(tx.EscrowRefundMsg != nil, tx.EscrowRefundMsg)
	add(tx.SavingsCreateMsg != nil, tx.SavingsCreateMsg)
	add(tx.SavingsContributeMsg != nil, tx.SavingsContributeMsg)
	add(tx.SavingsDistributeMsg != nil, tx.SavingsDistributeMsg)

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrEmpty, "transaction without a message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "transaction carries %d messages", len(msgs))
	}
}

// GetSignBytes returns the bytes to sign: the transaction without any
// signature.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	tx.Signatures = sigs
	return bz, err
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

type txCodec Tx

func (m *txCodec) Reset()         { *m = txCodec{} }
func (m *txCodec) String() string { return proto.CompactTextString(m) }
func (*txCodec) ProtoMessage()    {}

// Marshal serializes the transaction to its protobuf representation.
func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txCodec)(tx))
}

// Unmarshal loads the transaction from its protobuf representation.
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := proto.Unmarshal(bz, (*txCodec)(tx)); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
