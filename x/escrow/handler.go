package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

const (
	// pay escrow cost up-front
	createEscrowCost  int64 = 300
	releaseEscrowCost int64 = 0
	refundEscrowCost  int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, bank cash.CoinMover) {
	bucket := NewBucket()
	r.Handle(pathCreateMsg, CreateEscrowHandler{auth, bucket, bank})
	r.Handle(pathReleaseMsg, ReleaseEscrowHandler{auth, bucket, bank})
	r.Handle(pathRefundMsg, RefundEscrowHandler{auth, bucket, bank})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// CreateEscrowHandler moves the deposit of the creator into a new escrow.
type CreateEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ custody.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateEscrowHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores a new escrow and moves the tokens from the creator to the
// escrow account. The ID of the new escrow is returned as the result data.
func (h CreateEscrowHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	escrow := &Escrow{
		Creator:   msg.Creator,
		Recipient: msg.Recipient,
		Amount:    msg.Amount.Clone(),
		Deadline:  msg.Deadline,
	}
	obj, err := h.bucket.Build(db, escrow)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	// Deposit to the escrow account. A failed transfer aborts the
	// transaction together with the record and the sequence update.
	if err := h.bank.MoveCoins(db, escrow.Creator, escrow.Address, *escrow.Amount); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Debug("escrow created",
		"escrow", obj.Key(), "amount", escrow.Amount.String(), "deadline", escrow.Deadline)
	return &custody.DeliverResult{Data: obj.Key()}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) validate(ctx custody.Context, tx custody.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Creator, "creator"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReleaseEscrowHandler sends the deposit to the recipient once the deadline
// is reached.
type ReleaseEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ custody.Handler = ReleaseEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h ReleaseEscrowHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: releaseEscrowCost}, nil
}

// Deliver marks the escrow as released and moves the tokens from the escrow
// account to the recipient.
func (h ReleaseEscrowHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := settle(db, h.bucket, h.bank, msg.EscrowID, escrow, escrow.Recipient); err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("escrow released",
		"escrow", msg.EscrowID, "recipient", escrow.Recipient.String())
	return &custody.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ReleaseEscrowHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*ReleaseMsg, *Escrow, error) {
	var msg ReleaseMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, escrow.Recipient, "recipient"); err != nil {
		return nil, nil, err
	}
	if err := checkActive(escrow, msg.EscrowID); err != nil {
		return nil, nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	if now < escrow.Deadline {
		return nil, nil, errors.Wrapf(ErrDeadlineNotReached, "deadline %d, now %d", escrow.Deadline, now)
	}
	if err := checkTicker(escrow, msg.Ticker); err != nil {
		return nil, nil, err
	}
	return &msg, escrow, nil
}

// RefundEscrowHandler returns the deposit to the creator once the deadline
// has passed.
type RefundEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ custody.Handler = RefundEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RefundEscrowHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver marks the escrow as released and moves the tokens from the escrow
// account back to the creator.
func (h RefundEscrowHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := settle(db, h.bucket, h.bank, msg.EscrowID, escrow, escrow.Creator); err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("escrow refunded",
		"escrow", msg.EscrowID, "creator", escrow.Creator.String())
	return &custody.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundEscrowHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.bucket.GetEscrow(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, escrow.Creator, "creator"); err != nil {
		return nil, nil, err
	}
	if err := checkActive(escrow, msg.EscrowID); err != nil {
		return nil, nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Strictly after the deadline. At the deadline only a release is
	// possible.
	if now <= escrow.Deadline {
		return nil, nil, errors.Wrapf(ErrDeadlineNotPassed, "deadline %d, now %d", escrow.Deadline, now)
	}
	if err := checkTicker(escrow, msg.Ticker); err != nil {
		return nil, nil, err
	}
	return &msg, escrow, nil
}

// checkActive ensures that the funds are still in custody.
func checkActive(escrow *Escrow, id []byte) error {
	if escrow.Released {
		return errors.Wrapf(ErrAlreadyReleased, "escrow %X", id)
	}
	return nil
}

func checkTicker(escrow *Escrow, ticker string) error {
	if escrow.Amount.Ticker != ticker {
		return errors.Wrapf(errors.ErrCurrency, "escrow holds %s, not %s", escrow.Amount.Ticker, ticker)
	}
	return nil
}

// settle latches the escrow as released and persists it before any funds
// leave the custody account.
func settle(db custody.KVStore, bucket Bucket, bank cash.CoinMover, id []byte, escrow *Escrow, dest custody.Address) error {
	escrow.Released = true
	if err := bucket.Save(db, orm.NewSimpleObj(id, escrow)); err != nil {
		return errors.Wrap(err, "cannot store escrow")
	}
	return bank.MoveCoins(db, escrow.Address, dest, *escrow.Amount)
}

func blockNow(ctx custody.Context) (custody.UnixTime, error) {
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return custody.AsUnixTime(now), nil
}
