package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp holds the state of the ledger and answers the ABCI calls that
// do not process transactions: handshake, genesis, block boundaries,
// commits and queries. BaseApp embeds it and adds CheckTx and DeliverTx.
//
// Info, InitChain, BeginBlock, EndBlock and Commit have no way to report
// an error to the client. A failure in any of them panics and stops the
// node.
type StoreApp struct {
	logger log.Logger

	// name is reported by Info.
	name string

	store       *CommitStore
	initializer ledger.Initializer
	queryRouter ledger.QueryRouter

	// chainID is empty until InitChain ran. It is persisted and reloaded
	// on restart.
	chainID string

	// baseContext lives as long as the app, blockContext is replaced on
	// every BeginBlock.
	baseContext  ledger.Context
	blockContext ledger.Context

	debug bool
}

// NewStoreApp loads the latest committed state from store. It panics if
// the state cannot be loaded.
func NewStoreApp(name string, store ledger.CommitKVStore, queryRouter ledger.QueryRouter, baseContext ledger.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
		logger:      log.NewNopLogger(),
	}

	if s.chainID = loadChainID(s.DeliverStore()); s.chainID != "" {
		s.baseContext = ledger.WithChainID(s.baseContext, s.chainID)
	}
	s.blockContext = ledger.WithHeight(s.baseContext, s.store.CommitInfo().Version)
	return s
}

// WithInit sets the initializer called by InitChain.
func (s *StoreApp) WithInit(init ledger.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes errors carry their full message and stack trace.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger used by the app and passed to handlers.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = ledger.WithLogger(s.baseContext, logger)
	s.blockContext = ledger.WithLogger(s.blockContext, logger)
	s.logger = logger
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() ledger.Context {
	return s.blockContext
}

// DeliverStore returns the cache DeliverTx writes to. It is committed with
// the block.
func (s *StoreApp) DeliverStore() ledger.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the cache CheckTx writes to. It is dropped on commit.
func (s *StoreApp) CheckStore() ledger.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis runs only once in the lifetime of a chain, from InitChain.
// Restarts load the chain id from the store instead.
func (s *StoreApp) loadGenesis(data []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}

	var opts ledger.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = ledger.WithChainID(s.baseContext, chainID)
	s.blockContext = ledger.WithChainID(s.blockContext, chainID)

	if s.initializer == nil {
		return nil
	}
	s.logger.Info("Loading genesis", "chain", chainID, "sections", strings.Join(opts.Keys(), ","))
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info returns the last committed height and app hash, which tendermint
// uses to replay missing blocks.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info := s.store.CommitInfo()
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          ledger.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads from the last committed state.
//
// The path selects the handler, for example "/escrows" or "/wallets". A
// "?prefix" suffix turns a key lookup into a prefix scan. Key and Value of
// the response are ResultSets of equal length, one entry per model found.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		err := errors.Wrapf(errors.ErrNotFound, "unexpected query path %q, known paths: %s",
			req.Path, strings.Join(s.queryRouter.Paths(), ", "))
		return s.queryError(err)
	}

	height := s.store.CommitInfo().Version
	models, err := qh.Query(s.store.committedView(), mod, req.Data)
	if err != nil {
		return s.queryError(err)
	}

	res := abci.ResponseQuery{Height: height}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	return res
}

// splitPath separates the query modifier following a question mark.
func splitPath(path string) (string, string) {
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 1 {
		return path, ""
	}
	return chunks[0], chunks[1]
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Log: log, Code: code}
}

// Commit persists everything delivered in this block and resets the
// CheckTx state on top of it.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id := s.store.Commit()
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the genesis app state into the deliver store, so that it
// is persisted with the first commit.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock replaces the block context with one carrying the new header.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := ledger.WithHeader(s.baseContext, req.Header)
	s.blockContext = ledger.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
