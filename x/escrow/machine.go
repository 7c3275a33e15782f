package escrow

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

// Status is the lifecycle stage of an escrow.
type Status int32

const (
	StatusEmpty Status = iota
	StatusActive
	StatusClaimed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusActive:
		return "active"
	case StatusClaimed:
		return "claimed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Valid returns true for known statuses only.
func (s Status) Valid() bool {
	return s >= StatusEmpty && s <= StatusCancelled
}

// Transfer is a request to move Amount from one account to another. It
// must be executed together with storing the record it was returned with.
type Transfer struct {
	Amount int64
	From   ledger.Address
	To     ledger.Address
}

// Machine implements the escrow transitions for a single instance. All
// funds held by an active escrow are kept on the Custody account.
//
// Machine methods work on values. On failure the given record is
// returned unchanged.
type Machine struct {
	Custody ledger.Address
}

// Create opens a new escrow in an empty slot. The caller becomes the
// payer and must fund the custody account.
func (m Machine) Create(rec Escrow, caller, receiver ledger.Address, amount int64) (Escrow, Transfer, error) {
	switch rec.Status {
	case StatusEmpty:
	case StatusActive:
		return rec, Transfer{}, errors.Wrap(ErrAlreadyActive, "escrow in progress")
	default:
		// Claimed and cancelled records are never reset.
		return rec, Transfer{}, errors.Wrapf(ErrAlreadyActive, "escrow resolved as %s", rec.Status)
	}
	if receiver.Equals(caller) {
		return rec, Transfer{}, errors.Wrap(ErrSelfDealing, "create")
	}
	if amount <= 0 {
		return rec, Transfer{}, errors.Wrapf(errors.ErrInvalidAmount, "amount %d", amount)
	}
	next := Escrow{
		Payer:    caller,
		Receiver: receiver,
		Amount:   amount,
		Status:   StatusActive,
	}
	return next, Transfer{Amount: amount, From: caller, To: m.Custody}, nil
}

// Claim releases an active escrow to its receiver.
func (m Machine) Claim(rec Escrow, caller ledger.Address) (Escrow, Transfer, error) {
	if rec.Status != StatusActive {
		return rec, Transfer{}, errors.Wrapf(ErrNotActive, "status %s", rec.Status)
	}
	if !caller.Equals(rec.Receiver) {
		return rec, Transfer{}, errors.Wrap(errors.ErrUnauthorized, "only the receiver can claim")
	}
	next := rec
	next.Status = StatusClaimed
	return next, Transfer{Amount: rec.Amount, From: m.Custody, To: rec.Receiver}, nil
}

// Cancel returns the funds of an active escrow to its payer.
func (m Machine) Cancel(rec Escrow, caller ledger.Address) (Escrow, Transfer, error) {
	if rec.Status != StatusActive {
		return rec, Transfer{}, errors.Wrapf(ErrNotActive, "status %s", rec.Status)
	}
	if !caller.Equals(rec.Payer) {
		return rec, Transfer{}, errors.Wrap(errors.ErrUnauthorized, "only the payer can cancel")
	}
	next := rec
	next.Status = StatusCancelled
	return next, Transfer{Amount: rec.Amount, From: m.Custody, To: rec.Payer}, nil
}
