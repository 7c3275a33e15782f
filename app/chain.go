package app

import (
	"reflect"

	"github.com/campuspay/ledger"
)

// Decorators is an ordered list of decorators waiting for the handler
// they wrap.
type Decorators struct {
	chain []ledger.Decorator
}

// ChainDecorators starts a stack. The first decorator runs first. Nil
// entries are dropped, so optional decorators can be passed directly.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
func ChainDecorators(chain ...ledger.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with chain appended. The receiver is not
// modified.
func (d Decorators) Chain(chain ...ledger.Decorator) Decorators {
	all := make([]ledger.Decorator, 0, len(d.chain)+len(chain))
	all = append(all, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			all = append(all, dec)
		}
	}
	return Decorators{chain: all}
}

func isNilDecorator(dec ledger.Decorator) bool {
	if dec == nil {
		return true
	}
	v := reflect.ValueOf(dec)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h and returns the resulting handler.
func (d Decorators) WithHandler(h ledger.Handler) ledger.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{decorator: d.chain[i], next: h}
	}
	return h
}

// link runs one decorator with the rest of the stack as its next handler.
type link struct {
	decorator ledger.Decorator
	next      ledger.Handler
}

var _ ledger.Handler = link{}

func (l link) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	return l.decorator.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	return l.decorator.Deliver(ctx, db, tx, l.next)
}
