package custodytest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B. Use it instead of
// the pointer type to allow notation to accept both objects.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Runner provides a translation layer between an ABCI interface and a
// custody application. It takes care of serializing transactions and
// creating blocks. Every block is one BlockInterval after the previous one.
type Runner struct {
	chainID string
	height  int64
	now     time.Time
	t       Tester
	app     abci.Application

	// BlockInterval is the time between two consecutive blocks.
	BlockInterval time.Duration
}

// NewRunner creates a Runner that processes check and deliver requests for
// the given application. The first block is created at the given time.
func NewRunner(t Tester, app abci.Application, chainID string, start time.Time) *Runner {
	return &Runner{
		chainID:       chainID,
		now:           start,
		t:             t,
		app:           app,
		BlockInterval: 5 * time.Second,
	}
}

// Blockchain is the view of the application available within a block.
type Blockchain interface {
	DeliverTx(custody.Tx) (*abci.ResponseDeliverTx, error)
	CheckTx(custody.Tx) error
	// Now returns the time of the current block.
	Now() time.Time
	custody.ReadOnlyKVStore
}

var _ Blockchain = (*Runner)(nil)

// InitChain serializes the genesis to JSON and loads it. Loading a genesis
// creates a block.
func (r *Runner) InitChain(genesis interface{}) {
	r.t.Helper()

	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		r.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	changed := r.InBlock(func(Blockchain) error {
		r.app.InitChain(abci.RequestInitChain{
			Time:          r.now,
			ChainId:       r.chainID,
			AppStateBytes: raw,
		})
		return nil
	})
	if !changed {
		r.t.Fatalf("genesis did not change the state")
	}
}

// CheckTx serializes the transaction and runs it through CheckTx. A failure
// is returned as an error that can be tested against the root errors.
func (r *Runner) CheckTx(tx custody.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	resp := r.app.CheckTx(raw)
	return errors.ABCIError(resp.Code, resp.Log)
}

// DeliverTx serializes the transaction and runs it through DeliverTx. A
// failure is returned as an error that can be tested against the root errors.
func (r *Runner) DeliverTx(tx custody.Tx) (*abci.ResponseDeliverTx, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal transaction")
	}
	resp := r.app.DeliverTx(raw)
	if err := errors.ABCIError(resp.Code, resp.Log); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Now returns the time of the block being processed, or the time of the
// next block outside of InBlock.
func (r *Runner) Now() time.Time {
	return r.now
}

// Height returns the height of the last block created.
func (r *Runner) Height() int64 {
	return r.height
}

// InBlock begins a block and runs given function. All transactions executed
// within given function are part of the newly created block. Upon success the
// block is finished and changes committed.
// InBlock returns true if the application state was modified.
//
// Any failure is ending the test instantly.
func (r *Runner) InBlock(executeTx func(Blockchain) error) bool {
	r.t.Helper()

	r.height++
	initialHash := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	// BeginBlock will panic on error.
	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: r.chainID,
			Height:  r.height,
			Time:    r.now,
		},
	})

	if err := executeTx(r); err != nil {
		r.t.Fatalf("operation failed with %+v", err)
	}

	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})

	finalHash := r.app.Commit().Data
	r.now = r.now.Add(r.BlockInterval)
	return !bytes.Equal(initialHash, finalHash)
}

// Skip moves the clock forward without creating a block.
func (r *Runner) Skip(d time.Duration) {
	r.now = r.now.Add(d)
}

// Query runs an ABCI query and returns the found models.
func (r *Runner) Query(path string, data []byte) ([]custody.Model, error) {
	resp := r.app.Query(abci.RequestQuery{Path: path, Data: data})
	if err := errors.ABCIError(resp.Code, resp.Log); err != nil {
		return nil, err
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(err, "cannot parse keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}
	return app.JoinResults(&keys, &values)
}

var _ custody.ReadOnlyKVStore = (*Runner)(nil)

// Get returns the committed value stored under the key.
func (r *Runner) Get(key []byte) ([]byte, error) {
	models, err := r.Query("/", key)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].Value, nil
}

func (r *Runner) Has(key []byte) (bool, error) {
	v, err := r.Get(key)
	return v != nil, err
}

// Iterator supports only iterating over the whole store.
func (r *Runner) Iterator(start, end []byte) (custody.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "iterator only implemented for entire range")
	}
	models, err := r.Query("/?prefix", nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (r *Runner) ReverseIterator(start, end []byte) (custody.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iteration not supported")
}
