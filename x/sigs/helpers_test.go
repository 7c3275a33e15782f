package sigs

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/weavetest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	ledger.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &weavetest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: &weavetest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []ledger.Condition
}

var _ ledger.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return ledger.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return ledger.DeliverResult{}, nil
}
