package x

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Authenticator reports which conditions the current transaction fulfils.
// Handlers receive one in their constructor instead of reading signatures
// themselves.
type Authenticator interface {
	// GetConditions returns every fulfilled condition.
	GetConditions(custody.Context) []custody.Condition
	// HasAddress is true if any fulfilled condition maps to the address.
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth is the union of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

// GetConditions keeps the authenticator order and any duplicates.
func (m MultiAuth) GetConditions(ctx custody.Context) []custody.Condition {
	var conds []custody.Condition
	for _, a := range m {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx custody.Context, auth Authenticator) []custody.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]custody.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// RequireAddress fails with ErrUnauthorized unless addr is authenticated.
// role names the party in the error, for example "creator" or "member".
func RequireAddress(ctx custody.Context, auth Authenticator, addr custody.Address, role string) error {
	if auth == nil {
		return errors.Wrap(errors.ErrHuman, "no authenticator")
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s %s signature required", role, addr)
	}
	return nil
}
