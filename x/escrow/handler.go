package escrow

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/orm"
	"github.com/campuspay/ledger/x"
	"github.com/campuspay/ledger/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// pay escrow cost up-front
	createEscrowCost int64 = 300
	claimEscrowCost  int64 = 0
	cancelEscrowCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, bank Bank) {
	b := base{auth: auth, bucket: NewBucket(), bank: bank}
	r.Handle(pathCreateMsg, CreateHandler{b})
	r.Handle(pathClaimMsg, ClaimHandler{b})
	r.Handle(pathCancelMsg, CancelHandler{b})
}

// base holds what all escrow handlers share: loading the record and the
// caller, and committing a transition.
type base struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   Bank
}

// Bank is the part of the cash controller the escrow handlers use.
type Bank interface {
	cash.Balancer
	cash.CoinMover
}

// load returns the record of an installed instance and the address of
// the main signer.
func (b base) load(ctx ledger.Context, db ledger.KVStore, instance string) (Escrow, ledger.Address, error) {
	var rec Escrow
	if err := b.bucket.One(db, []byte(instance), &rec); err != nil {
		return rec, nil, errors.Wrapf(err, "instance %q", instance)
	}
	caller, err := x.Caller(ctx, b.auth)
	if err != nil {
		return rec, nil, err
	}
	return rec, caller, nil
}

// commit executes the transfer and stores the new record. Both writes go
// to the same store, so a savepoint around the handler discards both on
// failure.
func (b base) commit(ctx ledger.Context, db ledger.KVStore, op, instance string, next Escrow, t Transfer) (ledger.DeliverResult, error) {
	if err := b.bank.MoveCoins(db, t.From, t.To, t.Amount); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot move funds")
	}
	if err := b.bucket.Put(db, []byte(instance), &next); err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot store escrow")
	}

	ledger.GetLogger(ctx).Info("escrow transition",
		"instance", instance,
		"op", op,
		"status", next.Status.String(),
		"amount", t.Amount)

	return ledger.DeliverResult{
		Data: []byte(instance),
		Tags: []common.KVPair{
			ledger.Tag("escrow", instance),
			ledger.Tag("status", next.Status.String()),
		},
	}, nil
}

// CreateHandler opens an escrow and moves the funds into custody.
type CreateHandler struct {
	base
}

var _ ledger.Handler = CreateHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	_, _, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.CheckResult{}, err
	}
	// Funds move on deliver only, but a payer unable to cover the amount
	// is rejected here already.
	balance, err := h.bank.Balance(db, t.From)
	if err != nil {
		return ledger.CheckResult{}, errors.Wrap(err, "payer balance")
	}
	if balance < t.Amount {
		return ledger.CheckResult{}, errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", balance, t.Amount)
	}
	return ledger.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver moves the tokens from the signer to the custody account and
// activates the escrow if all preconditions are met.
func (h CreateHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (res ledger.DeliverResult, err error) {
	defer func() { observe("create", err) }()

	msg, next, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return h.commit(ctx, db, "create", msg.Instance, next, t)
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*CreateMsg, Escrow, Transfer, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, Escrow{}, Transfer{}, errors.Wrap(err, "load msg")
	}
	rec, caller, err := h.load(ctx, db, msg.Instance)
	if err != nil {
		return nil, Escrow{}, Transfer{}, err
	}
	next, t, err := Machine{Custody: Custody(msg.Instance)}.Create(rec, caller, msg.Receiver, msg.Amount)
	if err != nil {
		return nil, Escrow{}, Transfer{}, err
	}
	return &msg, next, t, nil
}

// ClaimHandler pays an active escrow out to its receiver.
type ClaimHandler struct {
	base
}

var _ ledger.Handler = ClaimHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ClaimHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: claimEscrowCost}, nil
}

// Deliver moves the funds from custody to the receiver.
func (h ClaimHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (res ledger.DeliverResult, err error) {
	defer func() { observe("claim", err) }()

	msg, next, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return h.commit(ctx, db, "claim", msg.Instance, next, t)
}

func (h ClaimHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ClaimMsg, Escrow, Transfer, error) {
	var msg ClaimMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, Escrow{}, Transfer{}, errors.Wrap(err, "load msg")
	}
	rec, caller, err := h.load(ctx, db, msg.Instance)
	if err != nil {
		return nil, Escrow{}, Transfer{}, err
	}
	next, t, err := Machine{Custody: Custody(msg.Instance)}.Claim(rec, caller)
	if err != nil {
		return nil, Escrow{}, Transfer{}, err
	}
	return &msg, next, t, nil
}

// CancelHandler returns the funds of an active escrow to its payer.
type CancelHandler struct {
	base
}

var _ ledger.Handler = CancelHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CancelHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return ledger.CheckResult{}, err
	}
	return ledger.CheckResult{GasAllocated: cancelEscrowCost}, nil
}

// Deliver moves the funds from custody back to the payer.
func (h CancelHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (res ledger.DeliverResult, err error) {
	defer func() { observe("cancel", err) }()

	msg, next, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	return h.commit(ctx, db, "cancel", msg.Instance, next, t)
}

func (h CancelHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*CancelMsg, Escrow, Transfer, error) {
	var msg CancelMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, Escrow{}, Transfer{}, errors.Wrap(err, "load msg")
	}
	rec, caller, err := h.load(ctx, db, msg.Instance)
	if err != nil {
		return nil, Escrow{}, Transfer{}, err
	}
	next, t, err := Machine{Custody: Custody(msg.Instance)}.Cancel(rec, caller)
	if err != nil {
		return nil, Escrow{}, Transfer{}, err
	}
	return &msg, next, t, nil
}
