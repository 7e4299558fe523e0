package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Savepoint runs the rest of the chain on a cache wrap of the store and
// writes it only when no error was returned. It is a no-op until enabled
// with OnCheck or OnDeliver.
type Savepoint struct {
	check, deliver bool
}

var _ custody.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	if !s.check {
		return next.Check(ctx, store, tx)
	}
	var res *custody.CheckResult
	err := isolated(store, func(db custody.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

// Deliver with a savepoint leaves nothing of a failed message behind, not
// even a sequence it consumed.
func (s Savepoint) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if !s.deliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *custody.DeliverResult
	err := isolated(store, func(db custody.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// isolated calls fn on a cache wrap of store. A store that cannot be
// wrapped is rejected before fn runs.
func isolated(store custody.KVStore, fn func(custody.KVStore) error) error {
	cacheable, ok := store.(custody.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrDatabase, "savepoint needs a cacheable store, got %T", store)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
