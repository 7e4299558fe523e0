package app

import (
	"reflect"

	"github.com/iov-one/custody"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator runs first:
//
//	app.ChainDecorators(
//	  utils.NewLogging(),
//	  utils.NewRecovery(),
//	  sigs.NewDecorator(),
//	  utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators []custody.Decorator

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are skipped.
func ChainDecorators(ds ...custody.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds appended below the current ones.
func (d Decorators) Chain(ds ...custody.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNil(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNil(d custody.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h custody.Handler) custody.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer is one decorator bound to the rest of the stack.
type layer struct {
	dec  custody.Decorator
	next custody.Handler
}

func (l layer) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return l.dec.Check(ctx, store, tx, l.next)
}

func (l layer) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return l.dec.Deliver(ctx, store, tx, l.next)
}
