package ledger

import (
	"github.com/campuspay/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are reported as errors, never as a result.
type DeliverResult struct {
	// Data is a machine readable return value.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and can be used to search the
	// transaction history, for example by escrow instance.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// TagMap returns the tags as a key to value map. When a key repeats, the
// last value wins.
func (d DeliverResult) TagMap() map[string]string {
	return tagMap(d.Tags)
}

// CheckResult is the outcome of a transaction that passed the mempool check.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum units of work the transaction may use.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError returns the ABCI response for DeliverTx, built from err if
// it is set and from result otherwise.
func DeliverOrError(result DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err == nil {
		return result.ToABCI()
	}
	return DeliverTxError(err, debug)
}

// CheckOrError returns the ABCI response for CheckTx, built from err if it
// is set and from result otherwise.
func CheckOrError(result CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err == nil {
		return result.ToABCI()
	}
	return CheckTxError(err, debug)
}

// ParseDeliverOrError is the inverse of DeliverOrError. A failed response is
// turned back into an error that matches the registered error it was
// created from.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}

// DeliverTxError converts an error into a failed DeliverTx response.
// Panics and unregistered errors are redacted unless in debug mode.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := txError("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError converts an error into a failed CheckTx response.
// Panics and unregistered errors are redacted unless in debug mode.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := txError("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func txError(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(errors.Redact(err, debug), debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}

// Tag builds an index tag for a DeliverResult.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

func tagMap(tags []common.KVPair) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[string(t.Key)] = string(t.Value)
	}
	return m
}
