package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
)

// blockT is the block time the escrows of the tests are created at.
var blockT = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

type routes map[string]custody.Handler

func (r routes) Handle(path string, h custody.Handler) { r[path] = h }

// fixture wires escrow handlers to a wallet bucket in an in memory store.
type fixture struct {
	db     store.CacheableKVStore
	bank   cash.BaseController
	auth   *custodytest.CtxAuth
	routes routes
}

func newFixture() *fixture {
	f := &fixture{
		db:     store.MemStore(),
		bank:   cash.NewController(cash.NewBucket()),
		auth:   &custodytest.CtxAuth{Key: "escrow"},
		routes: make(routes),
	}
	RegisterRoutes(f.routes, f.auth, f.bank)
	return f
}

// ctx returns a context at blockT shifted by given offset and signed by
// given conditions.
func (f *fixture) ctx(offset time.Duration, signers ...custody.Condition) custody.Context {
	ctx := custody.WithBlockTime(context.Background(), blockT.Add(offset))
	return f.auth.SetConditions(ctx, signers...)
}

func (f *fixture) deliver(ctx custody.Context, msg custody.Msg) (*custody.DeliverResult, error) {
	return f.deliverOn(ctx, f.db, msg)
}

func (f *fixture) deliverOn(ctx custody.Context, db custody.KVStore, msg custody.Msg) (*custody.DeliverResult, error) {
	return f.routes[msg.Path()].Deliver(ctx, db, &custodytest.Tx{Msg: msg})
}

func (f *fixture) check(ctx custody.Context, msg custody.Msg) error {
	_, err := f.routes[msg.Path()].Check(ctx, f.db, &custodytest.Tx{Msg: msg})
	return err
}

func (f *fixture) balance(t testing.TB, addr custody.Address) int64 {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	if err != nil {
		t.Fatalf("cannot get balance: %s", err)
	}
	return coins.Balance("IOV").Whole
}

func (f *fixture) mint(t testing.TB, addr custody.Address, whole int64) {
	t.Helper()
	if err := f.bank.CoinMint(f.db, addr, coin.NewCoin(whole, "IOV")); err != nil {
		t.Fatalf("cannot mint: %s", err)
	}
}

// createEscrow creates an escrow at blockT and returns its id.
func (f *fixture) createEscrow(t testing.TB, creator, recipient custody.Condition, amount int64, deadline time.Duration) []byte {
	t.Helper()
	msg := &CreateMsg{
		Creator:   creator.Address(),
		Recipient: recipient.Address(),
		Amount:    coin.NewCoinp(amount, "IOV"),
		Deadline:  custody.AsUnixTime(blockT.Add(deadline)),
	}
	res, err := f.deliver(f.ctx(0, creator), msg)
	if err != nil {
		t.Fatalf("cannot create escrow: %+v", err)
	}
	return res.Data
}
