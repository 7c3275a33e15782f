package weavetest

import (
	"context"
	"fmt"

	"github.com/campuspay/ledger"
)

// Auth authenticates a fixed set of conditions: Signer, when set, followed
// by Signers.
type Auth struct {
	Signer  ledger.Condition
	Signers []ledger.Condition
}

func (a *Auth) GetConditions(ledger.Context) []ledger.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(append([]ledger.Condition{}, a.Signers...), a.Signer)
}

func (a *Auth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
// Two instances using different keys do not see each other's conditions.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating the given conditions.
func (a *CtxAuth) SetConditions(ctx ledger.Context, conds ...ledger.Condition) ledger.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	switch v := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []ledger.Condition:
		return v
	default:
		panic(fmt.Sprintf("instead of []ledger.Condition got %T", v))
	}
}

func (a *CtxAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []ledger.Condition, addr ledger.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
