package escrow

import (
	"regexp"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/codec"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/orm"
	"github.com/gogo/protobuf/proto"
)

// BucketName is where we store the escrow records
const BucketName = "escrow"

var isInstanceName = regexp.MustCompile(`^[a-z0-9_\-]{3,32}$`).MatchString

// ValidateInstance returns an error if name cannot be used to identify
// an escrow instance.
func ValidateInstance(name string) error {
	if !isInstanceName(name) {
		return errors.Wrapf(errors.ErrInvalidInput, "instance name %q", name)
	}
	return nil
}

// Custody returns the address holding the funds of the named instance.
// Nobody can sign for it, only the escrow handlers move funds out of it.
func Custody(instance string) ledger.Address {
	return ledger.NewCondition("escrow", "inst", []byte(instance)).Address()
}

// Escrow is the record of a single escrow instance.
type Escrow struct {
	Payer    ledger.Address `protobuf:"bytes,1,opt,name=payer,proto3,casttype=github.com/campuspay/ledger.Address" json:"payer,omitempty"`
	Receiver ledger.Address `protobuf:"bytes,2,opt,name=receiver,proto3,casttype=github.com/campuspay/ledger.Address" json:"receiver,omitempty"`
	Amount   int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Status   Status         `protobuf:"varint,4,opt,name=status,proto3,casttype=Status" json:"status"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the record is consistent with its status.
func (e *Escrow) Validate() error {
	if !e.Status.Valid() {
		return errors.Wrapf(errors.ErrInvalidState, "status %d", e.Status)
	}
	if e.Status == StatusEmpty {
		if len(e.Payer) != 0 || len(e.Receiver) != 0 || e.Amount != 0 {
			return errors.Wrap(errors.ErrInvalidModel, "empty escrow with content")
		}
		return nil
	}
	if err := e.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := e.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if e.Payer.Equals(e.Receiver) {
		return errors.Wrap(ErrSelfDealing, "record")
	}
	if e.Amount <= 0 {
		return errors.Wrapf(errors.ErrInvalidAmount, "amount %d", e.Amount)
	}
	return nil
}

func (e *Escrow) Copy() orm.Model {
	return &Escrow{
		Payer:    copyAddr(e.Payer),
		Receiver: copyAddr(e.Receiver),
		Amount:   e.Amount,
		Status:   e.Status,
	}
}

func copyAddr(a ledger.Address) ledger.Address {
	if a == nil {
		return nil
	}
	return append(ledger.Address{}, a...)
}

func (e *Escrow) Marshal() ([]byte, error) {
	return codec.Marshal((*escrowWire)(e))
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*escrowWire)(e))
}

type escrowWire Escrow

func (m *escrowWire) Reset()         { *m = escrowWire{} }
func (m *escrowWire) String() string { return proto.CompactTextString(m) }
func (*escrowWire) ProtoMessage()    {}

// NewBucket returns a bucket for escrow records, keyed by instance name.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("escrows", qr)
}
