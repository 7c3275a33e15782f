package orm

import (
	"github.com/campuspay/ledger/codec"
	"github.com/campuspay/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// Counter is a minimal model used to exercise the buckets.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3"`
}

var _ Model = (*Counter)(nil)

func (c *Counter) Marshal() ([]byte, error) {
	return codec.Marshal((*counterWire)(c))
}

func (c *Counter) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*counterWire)(c))
}

type counterWire Counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

func (c *Counter) Copy() Model {
	return &Counter{Count: c.Count}
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative count")
	}
	return nil
}

// Label is another model type, used to test type checks.
type Label struct {
	Text string `protobuf:"bytes,1,opt,name=text,proto3"`
}

func (l *Label) Marshal() ([]byte, error) {
	return codec.Marshal((*labelWire)(l))
}

func (l *Label) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*labelWire)(l))
}

type labelWire Label

func (m *labelWire) Reset()         { *m = labelWire{} }
func (m *labelWire) String() string { return proto.CompactTextString(m) }
func (*labelWire) ProtoMessage()    {}

func (l *Label) Copy() Model { return &Label{Text: l.Text} }

func (l *Label) Validate() error { return nil }
