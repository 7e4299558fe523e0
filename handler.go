package custody

import (
	"encoding/json"

	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler executes the messages of one path, such as "escrow/create".
type Handler interface {
	Checker
	Deliverer
}

// Checker decides whether a transaction may enter the mempool. Its writes
// are dropped at the next commit.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler, for concerns shared by every message
// such as signatures, savepoints or logging.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// CheckResult is a successful check. Failures are errors.
type CheckResult struct {
	// Data is machine readable, for example the id a create would get.
	Data []byte
	Log  string
	// GasAllocated caps the work the transaction may do.
	GasAllocated int64
	// GasPayment is what the transaction pays for.
	GasPayment int64
}

// DeliverResult is a successful delivery. Failures are errors.
type DeliverResult struct {
	// Data is machine readable, for example the id of a created record.
	Data    []byte
	Log     string
	GasUsed int64
	// Tags are indexed by the node, so clients can search for the
	// transactions that touched a record or ran an action.
	Tags []common.KVPair
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state of the genesis file, one raw section per
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section key into obj. A missing section leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis section of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs inits in order and stops at the first failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (all initializers) FromGenesis(opts Options, db KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
