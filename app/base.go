/*
Package app turns a custody.Handler and a custody.CommitKVStore into an
ABCI application.

StoreApp takes care of the storage, queries and the chain lifecycle.
BaseApp adds transaction decoding and dispatching of CheckTx and DeliverTx
to a handler, usually a Router wrapped with ChainDecorators.
*/
package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a StoreApp that also processes transactions.
type BaseApp struct {
	*StoreApp
	decoder custody.TxDecoder
	handler custody.Handler
}

var _ abci.Application = BaseApp{}

// NewBaseApp dispatches every transaction decoded by decoder to handler.
// With debug set, error results carry the full error.
func NewBaseApp(store *StoreApp, decoder custody.TxDecoder, handler custody.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
	}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return DeliverTxError(err, b.debug)
	}
	ctx := custody.WithLogInfo(b.BlockContext(), "call", "deliver_tx")
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return CheckTxError(err, b.debug)
	}
	ctx := custody.WithLogInfo(b.BlockContext(), "call", "check_tx")
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return CheckOrError(res, err, b.debug)
}

// decode turns a decoder panic on malformed input into an error.
func (b BaseApp) decode(raw []byte) (tx custody.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(raw)
	return
}
