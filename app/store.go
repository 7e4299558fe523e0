package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the part of an ABCI application that needs no transaction
// handling: state, queries, genesis and the block lifecycle. BaseApp
// embeds it.
//
// Info, InitChain, BeginBlock, EndBlock and Commit take no user input. A
// failure there means the node cannot go on, so they panic.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *CommitStore
	initializer custody.Initializer
	queryRouter custody.QueryRouter
	debug       bool

	// chainID is empty until InitChain on a fresh store.
	chainID string

	// baseContext lives as long as the app, blockContext is replaced on
	// every BeginBlock.
	baseContext  custody.Context
	blockContext custody.Context

	// blockTime of the last BeginBlock, queries are answered at it.
	blockTime time.Time
}

// NewStoreApp loads the latest state of store. It panics when the state
// cannot be read.
func NewStoreApp(name string, store custody.CommitKVStore, queryRouter custody.QueryRouter, baseContext custody.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID = mustLoadChainID(s.DeliverStore()); s.chainID != "" {
		s.baseContext = custody.WithChainID(s.baseContext, s.chainID)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = custody.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets what InitChain loads the genesis app_state with.
func (s *StoreApp) WithInit(init custody.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes errors carry their full message and stack trace.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger of the app and of every context it creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = custody.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) BlockContext() custody.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() custody.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() custody.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis stores the chain id and runs the initializer. It only
// succeeds once per store.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrHuman, "app state previously loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}
	var opts custody.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = custody.WithChainID(s.baseContext, chainID)
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          custody.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query serves the registered query handlers against the last committed
// state. The path is "/<name>" optionally followed by "?prefix" for a
// prefix query, the requested height is ignored. Key and Value of the
// response are ResultSets of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	handler := s.queryRouter.Handler(path)
	if handler == nil {
		return queryError(errors.Wrap(ErrNoSuchPath, req.Path), s.debug)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err, s.debug)
	}
	models, err := handler.Query(s.queryContext(info.Version), s.store.QueryStore(), mod, req.Data)
	if err != nil {
		return queryError(err, s.debug)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err, s.debug)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err, s.debug)
	}
	return res
}

// queryContext carries the height and the time of the last block. Until
// the first block after a start the wall clock is used.
func (s *StoreApp) queryContext(height int64) custody.Context {
	now := s.blockTime
	if now.IsZero() {
		now = time.Now()
	}
	return custody.WithBlockTime(custody.WithHeight(s.baseContext, height), now)
}

// splitPath cuts the query modifier after "?" off path.
func splitPath(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the app_state of the genesis file.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets up the context of every transaction in the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.blockTime = req.Header.GetTime()
	ctx := custody.WithHeader(s.baseContext, req.Header)
	ctx = custody.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = custody.WithBlockTime(ctx, s.blockTime)
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
