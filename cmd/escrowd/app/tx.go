package escrowd

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/codec"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/x/escrow"
	"github.com/campuspay/ledger/x/sigs"
	"github.com/gogo/protobuf/proto"
)

// Tx is the transaction envelope accepted by escrowd. It carries the
// signatures and exactly one escrow message.
//
// The message fields form the "sum" oneof of codec.proto. They are plain
// optional fields here, which is the same wire format. GetMsg rejects a
// transaction setting more than one of them.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CreateMsg *escrow.CreateMsg `protobuf:"bytes,10,opt,name=create_msg,json=createMsg,proto3" json:"create_msg,omitempty"`
	ClaimMsg  *escrow.ClaimMsg  `protobuf:"bytes,11,opt,name=claim_msg,json=claimMsg,proto3" json:"claim_msg,omitempty"`
	CancelMsg *escrow.CancelMsg `protobuf:"bytes,12,opt,name=cancel_msg,json=cancelMsg,proto3" json:"cancel_msg,omitempty"`
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps a single escrow message into a transaction.
func NewTx(msg ledger.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *escrow.CreateMsg:
		tx.CreateMsg = m
	case *escrow.ClaimMsg:
		tx.ClaimMsg = m
	case *escrow.CancelMsg:
		tx.CancelMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	var msgs []ledger.Msg
	if tx.CreateMsg != nil {
		msgs = append(msgs, tx.CreateMsg)
	}
	if tx.ClaimMsg != nil {
		msgs = append(msgs, tx.ClaimMsg)
	}
	if tx.CancelMsg != nil {
		msgs = append(msgs, tx.CancelMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "transaction carries no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "transaction carries %d messages", len(msgs))
	}
}

// GetSignatures returns the signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are left out, so
// the sign bytes only come from the message itself.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	for i, sig := range tx.Signatures {
		if sig == nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "signature #%d is nil", i)
		}
	}
	return codec.Marshal((*txWire)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*txWire)(tx))
}

type txWire Tx

func (m *txWire) Reset()         { *m = txWire{} }
func (m *txWire) String() string { return proto.CompactTextString(m) }
func (*txWire) ProtoMessage()    {}
