package cash

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

// Balancer is an interface to query the amount of coins held by an address.
type Balancer interface {
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (int64, error)
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. This operation is atomic.
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount int64) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	// CoinMint increases the number of funds on given account by a
	// specified amount.
	CoinMint(db ledger.KVStore, dest ledger.Address, amount int64) error
}

// Controller is the functionality needed by the escrow handlers and the
// genesis initializer.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is the default implementation of the Controller
// interface.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of coins held by an address. An address
// that never received anything has a zero balance.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (int64, error) {
	if err := addr.Validate(); err != nil {
		return 0, err
	}
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %d", amount)
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if err := sender.add(-amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}

	// Load the recipient after the sender was saved, so that moving to
	// self is a noop.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db ledger.KVStore, dest ledger.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %d", amount)
	}
	if err := dest.Validate(); err != nil {
		return err
	}
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := w.add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, w)
}
