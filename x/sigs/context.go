package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

type signersKey struct{}

// withSigners is unexported so that only the Decorator can authenticate.
func withSigners(ctx custody.Context, signers []custody.Condition) custody.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reports the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	signers, _ := ctx.Value(signersKey{}).([]custody.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if s.Address().Equals(addr) {
			return true
		}
	}
	return false
}
