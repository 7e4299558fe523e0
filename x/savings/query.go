package savings

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// readyQuery answers whether the payout of a pool can be distributed at the
// block time of the query context. The value of the returned model is a
// single byte, 1 when ready and 0 otherwise.
type readyQuery struct {
	bucket *PoolBucket
}

var _ custody.QueryHandler = readyQuery{}

func (q readyQuery) Query(ctx custody.Context, db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	if mod != custody.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
	pool, err := q.bucket.GetPool(db, data)
	switch {
	case errors.ErrNotFound.Is(err):
		// return nothing on miss
		return nil, nil
	case err != nil:
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	ready := []byte{0}
	if pool.IsPayoutReady(now) {
		ready[0] = 1
	}
	return []custody.Model{{Key: data, Value: ready}}, nil
}
