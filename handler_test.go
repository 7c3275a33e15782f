package ledger

import (
	"testing"

	"github.com/campuspay/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	type account struct {
		Address string `json:"address"`
		Balance int64  `json:"balance"`
	}

	opts := Options{
		"cash":   []byte(`{"address": "ABCD", "balance": 100}`),
		"typo":   []byte(`{"adress": "ABCD"}`),
		"broken": []byte(`{"address": `),
		"double": []byte(`{"balance": 1} {"balance": 2}`),
	}
	assert.Equal(t, []string{"broken", "cash", "double", "typo"}, opts.Keys())

	var acct account
	require.NoError(t, opts.ReadOptions("cash", &acct))
	assert.Equal(t, account{Address: "ABCD", Balance: 100}, acct)

	var missing account
	require.NoError(t, opts.ReadOptions("escrow", &missing))
	assert.Equal(t, account{}, missing)

	for _, key := range []string{"typo", "broken", "double"} {
		err := opts.ReadOptions(key, &account{})
		assert.True(t, errors.ErrInvalidInput.Is(err), "%s: %+v", key, err)
	}
}

type nopQuery struct{}

func (nopQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) { return nil, nil }

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.RegisterAll(
		func(qr QueryRouter) { qr.Register("/wallets", nopQuery{}) },
		func(qr QueryRouter) { qr.Register("/escrows", nopQuery{}) },
	)
	assert.Equal(t, []string{"/escrows", "/wallets"}, r.Paths())
	assert.NotNil(t, r.Handler("/escrows"))
	assert.Nil(t, r.Handler("/escrow"))

	assert.Panics(t, func() { r.Register("/wallets", nopQuery{}) })
	assert.Panics(t, func() { r.Register("wallets", nopQuery{}) })
	assert.Panics(t, func() { r.Register("/wal lets", nopQuery{}) })
}
