package weavetest

import "github.com/campuspay/ledger"

// calls counts invocations per processing phase. Failed calls are counted
// too.
type calls struct {
	check   int
	deliver int
}

// CheckCallCount returns how many times Check was called.
func (c *calls) CheckCallCount() int { return c.check }

// DeliverCallCount returns how many times Deliver was called.
func (c *calls) DeliverCallCount() int { return c.deliver }

// CallCount returns the total number of Check and Deliver calls.
func (c *calls) CallCount() int { return c.check + c.deliver }

// Handler is a ledger.Handler that returns preconfigured results.
type Handler struct {
	calls

	CheckResult ledger.CheckResult
	CheckErr    error

	DeliverResult ledger.DeliverResult
	DeliverErr    error
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	h.check++
	return h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	h.deliver++
	return h.DeliverResult, h.DeliverErr
}

// Decorator passes calls through to the next handler unless the error for
// that phase is set, in which case the error is returned and next is never
// reached.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ ledger.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return ledger.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return ledger.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that runs h behind d.
func Decorate(h ledger.Handler, d ledger.Decorator) ledger.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   ledger.Handler
	decorator ledger.Decorator
}

func (d decorated) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
