package server

import (
	"encoding/json"
	"io/ioutil"
	"testing"

	"github.com/campuspay/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func fixedOptions(raw string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(raw), nil
	}
}

func readGenesis(t *testing.T, home string) GenesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(GenesisFile(home))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInitCmdCreatesGenesis(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	var seen []string
	gen := func(args []string) (json.RawMessage, error) {
		seen = args
		return json.RawMessage(`{"escrow":{}}`), nil
	}

	logger := log.NewNopLogger()
	err := InitCmd(gen, logger, home, []string{"-chain-id", "campus-test", "ABCD"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ABCD"}, seen)

	doc := readGenesis(t, home)
	assert.JSONEq(t, `"campus-test"`, string(doc["chain_id"]))
	assert.JSONEq(t, `{"escrow":{}}`, string(doc[appStateKey]))
	assert.True(t, fileExists(home+"/"+ConfigFile))
}

func TestInitCmdRefusesSecondAppState(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(fixedOptions(`{"a":1}`), logger, home, nil))
	err := InitCmd(fixedOptions(`{"a":2}`), logger, home, nil)
	require.Error(t, err)
	assert.True(t, errors.ErrDuplicate.Is(err))

	doc := readGenesis(t, home)
	assert.JSONEq(t, `{"a":1}`, string(doc[appStateKey]))
}

func TestInitCmdInvalidChainID(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	err := InitCmd(fixedOptions(`{}`), log.NewNopLogger(), home, []string{"-chain-id", "abc"})
	require.Error(t, err)
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.False(t, fileExists(GenesisFile(home)))
}

func TestInitCmdPropagatesGeneratorError(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	gen := func(args []string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "balance")
	}
	err := InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrInvalidAmount.Is(err))
}
