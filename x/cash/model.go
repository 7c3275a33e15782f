package cash

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/codec"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/orm"
	"github.com/gogo/protobuf/proto"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Balance int64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return codec.Marshal((*walletWire)(w))
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*walletWire)(w))
}

type walletWire Wallet

func (m *walletWire) Reset()         { *m = walletWire{} }
func (m *walletWire) String() string { return proto.CompactTextString(m) }
func (*walletWire) ProtoMessage()    {}

// Validate requires the balance to be non-negative.
func (w *Wallet) Validate() error {
	if w.Balance < 0 {
		return errors.Wrapf(errors.ErrInvalidModel, "negative balance %d", w.Balance)
	}
	return nil
}

func (w *Wallet) Copy() orm.Model {
	return &Wallet{Balance: w.Balance}
}

// add returns the balance increased by amount or an error if it would
// overflow or drop below zero.
func (w *Wallet) add(amount int64) error {
	sum := w.Balance + amount
	if (amount > 0 && sum < w.Balance) || (amount < 0 && sum > w.Balance) {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	if sum < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", w.Balance, -amount)
	}
	w.Balance = sum
	return nil
}

// Bucket stores wallets indexed by the owner address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash bucket.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// GetOrCreate returns the wallet of given address, or an empty one if
// the address holds nothing yet.
func (b Bucket) GetOrCreate(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
