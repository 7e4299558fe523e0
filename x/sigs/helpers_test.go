package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
)

// StdTx is a minimal signed transaction used by the tests.
type StdTx struct {
	custodytest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ custody.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx:      custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "test/sigs", Serialized: payload}},
		Payload: payload,
	}
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []custody.Condition
}

var _ custody.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &custody.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &custody.DeliverResult{}, nil
}
