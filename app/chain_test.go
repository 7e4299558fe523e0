package app_test

import (
	"context"
	"testing"

	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &custodytest.Decorator{}
	c2 := &custodytest.Decorator{}
	h := &custodytest.Handler{}

	var missing *custodytest.Decorator
	stack := app.ChainDecorators(
		c1,
		utils.NewLogging(),
		missing, // nil decorators are dropped
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()

	_, err := stack.Check(ctx, db, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, db, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversFromPanic(t *testing.T) {
	outer := &custodytest.Decorator{}
	inner := &custodytest.Decorator{}

	stack := app.ChainDecorators(
		outer,
		utils.NewRecovery(),
	).Chain(
		inner,
	).WithHandler(custodytest.PanicHandler{Msg: "boom"})

	_, err := stack.Deliver(context.Background(), store.MemStore(), nil)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 1, outer.DeliverCallCount())
	assert.Equal(t, 1, inner.DeliverCallCount())
}
