package ledger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextBlockInfo(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	_, ok = GetHeader(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 7)
	ctx = WithHeader(ctx, abci.Header{Height: 7, ChainID: "campus-test"})

	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), height)
	header, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, "campus-test", header.ChainID)

	// block information is set once per block and cannot be replaced
	assert.Panics(t, func() { WithHeight(ctx, 8) })
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	ctx = WithChainID(ctx, "campus-test")
	assert.Equal(t, "campus-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "campus-test") })
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var out bytes.Buffer
	logger := log.NewTMLogger(&out)
	ctx := WithLogger(bg, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithHeight(ctx, 3)
	tagged := WithLogInfo(ctx, "escrow", "campuspay")
	GetLogger(tagged).Info("claimed")
	assert.True(t, strings.Contains(out.String(), "escrow=campuspay"), out.String())

	// adding log info keeps the other values
	height, _ := GetHeight(tagged)
	assert.Equal(t, int64(3), height)
}

func TestChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"foo":                           false,
		"campus":                        true,
		"campus-TEST_88":                true,
		"invalid;;chars":                false,
		"this-chain-id-is-way-too-long": false,
	}
	for chainID, valid := range cases {
		assert.Equal(t, valid, IsValidChainID(chainID), chainID)
	}
}
