package ledger_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err     error
		debug   bool
		wantLog string
		code    uint32
	}{
		"stdlib error is redacted": {
			err:     fmt.Errorf("base"),
			wantLog: "internal error",
			code:    1,
		},
		"stdlib error in debug mode": {
			err:     fmt.Errorf("base"),
			debug:   true,
			wantLog: "base",
			code:    1,
		},
		"panic is redacted": {
			err:     errors.Wrap(errors.ErrPanic, "runtime error: index out of range"),
			wantLog: "internal error",
			code:    1,
		},
		"registered error": {
			err:     errors.Wrap(errors.ErrUnauthorized, "not the payer"),
			wantLog: "not the payer: unauthorized",
			code:    errors.ErrUnauthorized.ABCICode(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := ledger.DeliverTxError(tc.err, tc.debug)
			assert.Equal(t, tc.code, dres.Code)
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx: "+tc.wantLog), dres.Log)

			cres := ledger.CheckTxError(tc.err, tc.debug)
			assert.Equal(t, tc.code, cres.Code)
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx: "+tc.wantLog), cres.Log)
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := ledger.DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)

	c, gas := "aok", int64(12345)
	cres := ledger.CheckResult{GasAllocated: gas, Log: c}
	ac := cres.ToABCI()
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)
}

func TestParseDeliverOrError(t *testing.T) {
	res := ledger.DeliverOrError(ledger.DeliverResult{}, errors.ErrNotFound.New("no escrow"), false)
	_, err := ledger.ParseDeliverOrError(res)
	require.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err))

	res = ledger.DeliverOrError(ledger.DeliverResult{Log: "ok"}, nil, false)
	parsed, err := ledger.ParseDeliverOrError(res)
	require.NoError(t, err)
	assert.Equal(t, "ok", parsed.Log)
}

func TestTag(t *testing.T) {
	tag := ledger.Tag("escrow", "campuspay")
	assert.Equal(t, []byte("escrow"), tag.Key)
	assert.Equal(t, []byte("campuspay"), tag.Value)

	res := ledger.DeliverResult{Tags: []common.KVPair{
		ledger.Tag("escrow", "campuspay"),
		ledger.Tag("status", "active"),
		ledger.Tag("status", "claimed"),
	}}
	assert.Equal(t, map[string]string{"escrow": "campuspay", "status": "claimed"}, res.TagMap())
}
