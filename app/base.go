package app

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the complete ABCI application: StoreApp plus transaction
// processing. CheckTx and DeliverTx decode the raw bytes and pass the
// transaction to a single handler, usually a decorator stack ending in a
// Router.
type BaseApp struct {
	*StoreApp
	decoder ledger.TxDecoder
	handler ledger.Handler
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application processing transactions with handler.
// With debug set, error responses carry the full error and stack trace.
func NewBaseApp(store *StoreApp, decoder ledger.TxDecoder, handler ledger.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
	}
}

// DeliverTx runs a transaction of the current block against the deliver
// store.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", raw)
	if err != nil {
		return ledger.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return ledger.DeliverOrError(res, err, b.debug)
}

// CheckTx validates a transaction for the mempool against the check
// store.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", raw)
	if err != nil {
		return ledger.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return ledger.CheckOrError(res, err, b.debug)
}

// prepare decodes raw and returns the block context annotated for logging.
func (b BaseApp) prepare(call string, raw []byte) (ledger.Context, ledger.Tx, error) {
	tx, err := b.decode(raw)
	if err != nil {
		b.Logger().Debug("Cannot decode transaction", "call", call, "size", len(raw), "err", err)
		return nil, nil, err
	}
	ctx := ledger.WithLogInfo(b.BlockContext(), "call", call, "path", ledger.GetPath(tx))
	return ctx, tx, nil
}

// decode turns a decoder panic into an error.
func (b BaseApp) decode(raw []byte) (tx ledger.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
