package cash

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use ledger.Address, so address in hex, not base64
type GenesisAccount struct {
	Address ledger.Address `json:"address"`
	Balance int64          `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := ctrl.CoinMint(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
