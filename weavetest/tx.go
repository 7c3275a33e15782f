package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

// Tx wraps a single message. GetMsg returns Err when it is set.
type Tx struct {
	Msg ledger.Msg
	Err error
}

var _ ledger.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (ledger.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal returns the serialized message. Test transactions are never read
// back, so Unmarshal always fails.
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "test transactions cannot be decoded")
}

// Msg is a message routed to RoutePath. Every method returns Err, which
// makes it usable as both a valid and an invalid message.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ ledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}

var conditionSeq uint64

// NewCondition returns a condition that no other call in this process
// returned before.
func NewCondition() ledger.Condition {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, atomic.AddUint64(&conditionSeq, 1))
	return ledger.NewCondition("test", "seq", id)
}
