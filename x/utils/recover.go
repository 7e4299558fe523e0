package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery converts a panic further down the chain into an ErrPanic result.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (res *custody.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, store, tx)
	return
}

func (Recovery) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (res *custody.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, store, tx)
	return
}
