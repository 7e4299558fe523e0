package savings

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

const day = 24 * time.Hour

var genesisT = time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)

type routes map[string]custody.Handler

func (r routes) Handle(path string, h custody.Handler) { r[path] = h }

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
		auth:   &custodytest.CtxAuth{Key: "savings"},
		routes: make(routes),
	}
	RegisterRoutes(f.routes, f.auth, f.bank)
	return f
}

func (f *fixture) ctx(offset time.Duration, signers ...custody.Condition) custody.Context {
	ctx := custody.WithBlockTime(context.Background(), genesisT.Add(offset))
	return f.auth.SetConditions(ctx, signers...)
}

// exec runs the message through Check and Deliver, like the application does.
func (f *fixture) exec(ctx custody.Context, msg custody.Msg) (*custody.DeliverResult, error) {
	h := f.routes[msg.Path()]
	tx := &custodytest.Tx{Msg: msg}
	if _, err := h.Check(ctx, f.db.CacheWrap(), tx); err != nil {
		return nil, err
	}
	return h.Deliver(ctx, f.db, tx)
}

func (f *fixture) mint(t testing.TB, addr custody.Address, whole int64) {
	t.Helper()
	if err := f.bank.CoinMint(f.db, addr, coin.NewCoin(whole, "IOV")); err != nil {
		t.Fatalf("cannot mint: %s", err)
	}
}

func (f *fixture) balance(t testing.TB, addr custody.Address) int64 {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	if err != nil {
		t.Fatalf("cannot get balance: %s", err)
	}
	return coins.Balance("IOV").Whole
}

func (f *fixture) pool(t testing.TB, id []byte) *Pool {
	t.Helper()
	p, err := NewPoolBucket().GetPool(f.db, id)
	if err != nil {
		t.Fatalf("cannot get pool: %+v", err)
	}
	return p
}

// createPool creates a pool at genesisT, signed by the first member.
func (f *fixture) createPool(t testing.TB, members []custody.Condition, contribution int64, interval time.Duration) []byte {
	t.Helper()
	msg := &CreatePoolMsg{
		Name:           "chama",
		Members:        addresses(members),
		Contribution:   coin.NewCoinp(contribution, "IOV"),
		PayoutInterval: int64(interval / time.Second),
	}
	res, err := f.exec(f.ctx(0, members[0]), msg)
	if err != nil {
		t.Fatalf("cannot create pool: %+v", err)
	}
	return res.Data
}

func (f *fixture) contribute(ctx custody.Context, id []byte, member custody.Condition, amount int64) error {
	_, err := f.exec(ctx, &ContributeMsg{PoolID: id, Member: member.Address(), Amount: coin.NewCoinp(amount, "IOV")})
	return err
}

func (f *fixture) distribute(ctx custody.Context, id []byte) (*custody.DeliverResult, error) {
	return f.exec(ctx, &DistributeMsg{PoolID: id, Ticker: "IOV"})
}

func newMembers(n int) []custody.Condition {
	conds := make([]custody.Condition, n)
	for i := range conds {
		conds[i] = custodytest.NewCondition()
	}
	return conds
}

func addresses(conds []custody.Condition) []custody.Address {
	addrs := make([]custody.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}
