package custodytest

import (
	"context"
	"fmt"

	"github.com/iov-one/custody"
)

// Auth authenticates a fixed set of conditions: Signer and all of Signers.
type Auth struct {
	Signer  custody.Condition
	Signers []custody.Condition
}

func (a *Auth) GetConditions(custody.Context) []custody.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := append([]custody.Condition(nil), a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which conds are authenticated.
func (a *CtxAuth) SetConditions(ctx custody.Context, conds ...custody.Condition) custody.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx custody.Context) []custody.Condition {
	switch v := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []custody.Condition:
		return v
	default:
		panic(fmt.Sprintf("instead of []custody.Condition got %T", v))
	}
}

func (a *CtxAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []custody.Condition, addr custody.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
