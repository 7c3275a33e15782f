package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/store"
	"github.com/campuspay/ledger/weavetest"
	"github.com/campuspay/ledger/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	genesis := fmt.Sprintf(`{"cash": [
		{"address": %q, "balance": 200000},
		{"address": %q, "balance": 5}
	]}`, alice.String(), bob.String())

	var opts ledger.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(NewBucket())
	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(200000), got)
	got, err = ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), got)
}

func TestGenesisRejectsInvalidAccounts(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"zero balance": {
			genesis: `{"cash": [{"address": "0000000000000000000000000000000000000001", "balance": 0}]}`,
			wantErr: errors.ErrInvalidAmount,
		},
		"missing address": {
			genesis: `{"cash": [{"balance": 10}]}`,
			wantErr: errors.ErrInvalidInput,
		},
		"not a list": {
			genesis: `{"cash": {"balance": 10}}`,
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestGenesisWithoutCashSection(t *testing.T) {
	assert.Nil(t, Initializer{}.FromGenesis(ledger.Options{}, store.MemStore()))
}
