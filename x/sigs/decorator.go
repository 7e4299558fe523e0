/*
Package sigs authenticates transactions by their ed25519 signatures and
keeps a nonce per signer against replays.

The Decorator verifies the signatures, consumes the nonces and exposes the
signers to the rest of the chain through Authenticate.
*/
package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// signatureVerifyCost is charged per valid signature on CheckTx.
const signatureVerifyCost = 500

// RegisterQuery serves the nonce records under /auth.
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator rejects transactions without a valid signature. Use
// AllowMissingSigs to let unsigned transactions through.
type Decorator struct {
	allowMissing bool
}

var _ custody.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissing = true
	return d
}

func (d Decorator) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	ctx, signers, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(len(signers) * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// authenticate returns ctx extended with the verified signers.
func (d Decorator) authenticate(ctx custody.Context, store custody.KVStore, tx custody.Tx) (custody.Context, []custody.Condition, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissing {
			return ctx, nil, nil
		}
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "transaction cannot be signed")
	}
	signers, err := VerifyTxSignatures(store, signed, custody.GetChainID(ctx))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissing {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), signers, nil
}
