package escrow

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/codec"
	"github.com/gogo/protobuf/proto"
)

const (
	pathCreateMsg = "escrow/create"
	pathClaimMsg  = "escrow/claim"
	pathCancelMsg = "escrow/cancel"
)

// CreateMsg locks Amount of the signer funds for Receiver in the given
// instance.
type CreateMsg struct {
	Instance string         `protobuf:"bytes,1,opt,name=instance,proto3" json:"instance,omitempty"`
	Receiver ledger.Address `protobuf:"bytes,2,opt,name=receiver,proto3,casttype=github.com/campuspay/ledger.Address" json:"receiver,omitempty"`
	Amount   int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ ledger.Msg = (*CreateMsg)(nil)

// Path returns the routing path for this message.
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible. The amount is checked by
// the Machine together with the escrow state.
func (m *CreateMsg) Validate() error {
	if err := ValidateInstance(m.Instance); err != nil {
		return err
	}
	return m.Receiver.Validate()
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*createMsgWire)(m))
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*createMsgWire)(m))
}

// ClaimMsg releases the funds of an active escrow to its receiver.
type ClaimMsg struct {
	Instance string `protobuf:"bytes,1,opt,name=instance,proto3" json:"instance,omitempty"`
}

var _ ledger.Msg = (*ClaimMsg)(nil)

func (ClaimMsg) Path() string {
	return pathClaimMsg
}

func (m *ClaimMsg) Validate() error {
	return ValidateInstance(m.Instance)
}

func (m *ClaimMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*claimMsgWire)(m))
}

func (m *ClaimMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*claimMsgWire)(m))
}

// CancelMsg returns the funds of an active escrow to its payer.
type CancelMsg struct {
	Instance string `protobuf:"bytes,1,opt,name=instance,proto3" json:"instance,omitempty"`
}

var _ ledger.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Validate() error {
	return ValidateInstance(m.Instance)
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*cancelMsgWire)(m))
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*cancelMsgWire)(m))
}

// Wire twins of the messages. They carry no Marshal method, so the
// protobuf encoder walks their fields.
type (
	createMsgWire CreateMsg
	claimMsgWire  ClaimMsg
	cancelMsgWire CancelMsg
)

func (m *createMsgWire) Reset()         { *m = createMsgWire{} }
func (m *createMsgWire) String() string { return proto.CompactTextString(m) }
func (*createMsgWire) ProtoMessage()    {}

func (m *claimMsgWire) Reset()         { *m = claimMsgWire{} }
func (m *claimMsgWire) String() string { return proto.CompactTextString(m) }
func (*claimMsgWire) ProtoMessage()    {}

func (m *cancelMsgWire) Reset()         { *m = cancelMsgWire{} }
func (m *cancelMsgWire) String() string { return proto.CompactTextString(m) }
func (*cancelMsgWire) ProtoMessage()    {}
