package app

import (
	"context"
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/store/iavl"
	"github.com/campuspay/ledger/weavetest"
	"github.com/campuspay/ledger/weavetest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

// rawQuery answers with the value stored under the requested key.
type rawQuery struct{}

func (rawQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unsupported modifier %q", mod)
	}
	val := db.Get(data)
	if val == nil {
		return nil, nil
	}
	return []ledger.Model{ledger.Pair(data, val)}, nil
}

// initFunc adapts a function to the Initializer interface.
type initFunc func(ledger.Options, ledger.KVStore) error

func (fn initFunc) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	return fn(opts, db)
}

func newTestStoreApp(t testing.TB, db ledger.CommitKVStore) *StoreApp {
	t.Helper()
	qr := ledger.NewQueryRouter()
	qr.Register("/", rawQuery{})
	return NewStoreApp("test", db, qr, context.Background()).
		WithInit(initFunc(func(opts ledger.Options, kv ledger.KVStore) error {
			var seed struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			}
			if err := opts.ReadOptions("seed", &seed); err != nil {
				return err
			}
			kv.Set([]byte(seed.Key), []byte(seed.Value))
			return nil
		}))
}

func TestStoreAppLifecycle(t *testing.T) {
	db := weavetest.CommitKVStore(t)

	s := newTestStoreApp(t, db)
	assert.Equal(t, "", s.GetChainID())

	s.InitChain(abci.RequestInitChain{
		ChainId:       "campus-test",
		AppStateBytes: []byte(`{"seed": {"key": "greeting", "value": "hello"}}`),
	})
	assert.Equal(t, "campus-test", s.GetChainID())
	assert.Equal(t, "campus-test", ledger.GetChainID(s.BlockContext()))

	// nothing is visible to queries before the first commit
	res := s.Query(abci.RequestQuery{Path: "/", Data: []byte("greeting")})
	assert.Equal(t, uint32(0), res.Code)
	var missing ResultSet
	assert.Nil(t, missing.Unmarshal(res.Value))
	assert.Equal(t, 0, len(missing.Results))

	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	s.EndBlock(abci.RequestEndBlock{})
	commit := s.Commit()
	if len(commit.Data) == 0 {
		t.Fatal("app hash must not be empty")
	}

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "test", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	res = s.Query(abci.RequestQuery{Path: "/", Data: []byte("greeting")})
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, int64(1), res.Height)
	models, err := joinResponse(res)
	assert.Nil(t, err)
	assert.Equal(t, []ledger.Model{ledger.Pair([]byte("greeting"), []byte("hello"))}, models)

	// the chain id survives a restart
	restarted := newTestStoreApp(t, db)
	assert.Equal(t, "campus-test", restarted.GetChainID())
	assert.Panics(t, func() {
		restarted.InitChain(abci.RequestInitChain{ChainId: "campus-other", AppStateBytes: []byte(`{}`)})
	})
}

func TestStoreAppQueryErrors(t *testing.T) {
	s := newTestStoreApp(t, iavl.MockCommitStore())

	res := s.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = s.Query(abci.RequestQuery{Path: "/?prefix"})
	assert.Equal(t, errors.ErrInvalidInput.ABCICode(), res.Code)
}

func TestStoreAppInitChainFailures(t *testing.T) {
	cases := map[string]abci.RequestInitChain{
		"missing app state": {ChainId: "campus-test"},
		"malformed app state": {
			ChainId:       "campus-test",
			AppStateBytes: []byte(`{"seed": `),
		},
		"invalid chain id": {
			ChainId:       "x",
			AppStateBytes: []byte(`{}`),
		},
		"invalid initializer options": {
			ChainId:       "campus-test",
			AppStateBytes: []byte(`{"seed": 42}`),
		},
	}
	for testName, req := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newTestStoreApp(t, iavl.MockCommitStore())
			assert.Panics(t, func() { s.InitChain(req) })
		})
	}
}

func joinResponse(res abci.ResponseQuery) ([]ledger.Model, error) {
	var keys, values ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, err
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, err
	}
	return JoinResults(&keys, &values)
}
