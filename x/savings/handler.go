package savings

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

const (
	createPoolCost int64 = 100
	contributeCost int64 = 0
	distributeCost int64 = 0
)

// CashController allows to move coins between accounts without the need to
// directly access the bucket.
// Required functionality is implemented by the x/cash extension.
type CashController interface {
	MoveCoins(custody.KVStore, custody.Address, custody.Address, coin.Coin) error
}

// RegisterQuery registers pool buckets for querying.
func RegisterQuery(qr custody.QueryRouter) {
	bucket := NewPoolBucket()
	bucket.Register("pools", qr)
	qr.Register("/pools/ready", readyQuery{bucket: bucket})
}

// RegisterRoutes registers handlers for pool message processing.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl CashController) {
	bucket := NewPoolBucket()
	r.Handle(pathCreatePoolMsg, &createPoolHandler{
		auth:   auth,
		bucket: bucket,
	})
	r.Handle(pathContributeMsg, &contributeHandler{
		auth:   auth,
		bucket: bucket,
		ctrl:   ctrl,
	})
	r.Handle(pathDistributeMsg, &distributeHandler{
		bucket: bucket,
		ctrl:   ctrl,
	})
}

// createPoolHandler creates a new pool with an empty balance. The first
// member must sign.
type createPoolHandler struct {
	auth   x.Authenticator
	bucket *PoolBucket
}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *createPoolHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: createPoolCost}, nil
}

// Deliver stores the pool with its first payout interval starting at the
// block time. The ID of the new pool is returned as the result data.
func (h *createPoolHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	key, err := h.bucket.Create(db, &Pool{
		Name:           msg.Name,
		Members:        msg.Members,
		Contribution:   msg.Contribution,
		PayoutInterval: msg.PayoutInterval,
		LastPayout:     now,
	})
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Debug("pool created", "pool", key, "members", len(msg.Members))
	return &custody.DeliverResult{Data: key}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h *createPoolHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CreatePoolMsg, error) {
	var msg CreatePoolMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// The first member is the initiator of the pool.
	if err := x.RequireAddress(ctx, h.auth, msg.Members[0], "first member"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// contributeHandler moves a member deposit into the pool account.
type contributeHandler struct {
	auth   x.Authenticator
	bucket *PoolBucket
	ctrl   CashController
}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *contributeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: contributeCost}, nil
}

// Deliver raises the pool balance and persists it before moving the
// tokens from the member to the pool account.
func (h *contributeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, pool, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	total, err := coin.NewCoin(pool.TotalBalance, pool.Contribution.Ticker).Add(*msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "pool balance")
	}
	pool.TotalBalance = total.Whole
	if err := h.bucket.Put(db, msg.PoolID, pool); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}
	if err := h.ctrl.MoveCoins(db, msg.Member, pool.Address, *msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h *contributeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*ContributeMsg, *Pool, error) {
	var msg ContributeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Member, "member"); err != nil {
		return nil, nil, err
	}
	pool, err := h.bucket.GetPool(db, msg.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if !pool.IsMember(msg.Member) {
		return nil, nil, errors.Wrapf(ErrNotMember, "%s", msg.Member)
	}
	if msg.Amount.Ticker != pool.Contribution.Ticker {
		return nil, nil, errors.Wrapf(errors.ErrCurrency, "pool accepts %s, not %s", pool.Contribution.Ticker, msg.Amount.Ticker)
	}
	return &msg, pool, nil
}

// distributeHandler pays out a round. It does not require any signature.
type distributeHandler struct {
	bucket *PoolBucket
	ctrl   CashController
}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h *distributeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: distributeCost}, nil
}

// Deliver advances the round and persists the pool before paying the
// recipient of the round out of the pool account.
func (h *distributeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, pool, payout, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	recipient := pool.Recipient()
	round := pool.CurrentRound
	pool.TotalBalance -= payout.Whole
	pool.CurrentRound++
	pool.LastPayout = now
	if err := h.bucket.Put(db, msg.PoolID, pool); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}
	if err := h.ctrl.MoveCoins(db, pool.Address, recipient, payout); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("pool payout",
		"pool", msg.PoolID, "round", round, "recipient", recipient.String(), "amount", payout.String())
	return &custody.DeliverResult{Data: recipient}, nil
}

// validate checks the interval, the balance and the ticker, in this order.
func (h *distributeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*DistributeMsg, *Pool, coin.Coin, error) {
	var msg DistributeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, coin.Coin{}, errors.Wrap(err, "load msg")
	}
	pool, err := h.bucket.GetPool(db, msg.PoolID)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	if !pool.IsPayoutReady(now) {
		return nil, nil, coin.Coin{}, errors.Wrapf(ErrIntervalNotElapsed, "next payout at %d", pool.NextPayout())
	}
	payout, err := pool.PayoutAmount()
	if err != nil {
		return nil, nil, coin.Coin{}, errors.Wrap(err, "payout amount")
	}
	if pool.TotalBalance < payout.Whole {
		return nil, nil, coin.Coin{}, errors.Wrapf(ErrInsufficientBalance, "balance %d, payout %d", pool.TotalBalance, payout.Whole)
	}
	if msg.Ticker != payout.Ticker {
		return nil, nil, coin.Coin{}, errors.Wrapf(errors.ErrCurrency, "pool pays %s, not %s", payout.Ticker, msg.Ticker)
	}
	return &msg, pool, payout, nil
}

// IsPayoutReady returns true if the payout interval of the pool has elapsed
// at the block time of the context.
func IsPayoutReady(ctx custody.Context, db custody.ReadOnlyKVStore, id []byte) (bool, error) {
	pool, err := NewPoolBucket().GetPool(db, id)
	if err != nil {
		return false, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return false, err
	}
	return pool.IsPayoutReady(now), nil
}

func blockNow(ctx custody.Context) (custody.UnixTime, error) {
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return custody.AsUnixTime(now), nil
}
