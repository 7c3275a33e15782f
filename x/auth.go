/*
Package x contains the extensions of the ledger and the helpers shared
between them. The most important one is the Authenticator, which every
handler uses to learn who signed the transaction.
*/
package x

import (
	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

// Authenticator reveals the conditions a transaction satisfies. Handlers
// receive it in their constructor, so the signature scheme can be replaced
// without touching them.
type Authenticator interface {
	GetConditions(ledger.Context) []ledger.Condition
	HasAddress(ledger.Context, ledger.Address) bool
}

// MultiAuth authenticates everything any of its members does.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns the conditions of all members, in member order.
func (m MultiAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	var res []ledger.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// Caller returns the address of the first authenticated condition. That is
// the party acting in an escrow operation. A transaction without any
// signature fails with ErrUnauthorized.
func Caller(ctx ledger.Context, auth Authenticator) (ledger.Address, error) {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return conds[0].Address(), nil
}
