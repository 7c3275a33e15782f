package escrow

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

const optKey = "escrow"

// Genesis lists the escrow instances installed when the chain starts.
type Genesis struct {
	Instances []string `json:"instances"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis installs an empty record for every listed instance.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, name := range gen.Instances {
		if err := ValidateInstance(name); err != nil {
			return err
		}
		key := []byte(name)
		if err := bucket.Has(db, key); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "instance %q", name)
		}
		if err := bucket.Put(db, key, &Escrow{Status: StatusEmpty}); err != nil {
			return errors.Wrapf(err, "instance %q", name)
		}
	}
	return nil
}
