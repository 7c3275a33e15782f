package weavetest

import (
	"context"
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/weavetest/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()

	cases := map[string]struct {
		auth     Auth
		want     []ledger.Condition
		notFound ledger.Condition
	}{
		"no signers": {
			notFound: a,
		},
		"single signer": {
			auth:     Auth{Signer: a},
			want:     []ledger.Condition{a},
			notFound: b,
		},
		"signer is listed last": {
			auth:     Auth{Signer: c, Signers: []ledger.Condition{a, b}},
			want:     []ledger.Condition{a, b, c},
			notFound: NewCondition(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(nil)
			if len(tc.want) == 0 {
				assert.Equal(t, 0, len(got))
			} else {
				assert.Equal(t, tc.want, got)
			}
			for _, cond := range tc.want {
				assert.Equal(t, true, tc.auth.HasAddress(nil, cond.Address()))
			}
			assert.Equal(t, false, tc.auth.HasAddress(nil, tc.notFound.Address()))
		})
	}
}

func TestCtxAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()
	first := &CtxAuth{Key: "first"}
	second := &CtxAuth{Key: "second"}

	ctx := first.SetConditions(context.Background(), a, b)
	assert.Equal(t, []ledger.Condition{a, b}, first.GetConditions(ctx))
	assert.Equal(t, true, first.HasAddress(ctx, b.Address()))

	assert.Nil(t, second.GetConditions(ctx))
	assert.Equal(t, false, second.HasAddress(ctx, a.Address()))
}

func TestCtxAuthRejectsForeignValue(t *testing.T) {
	auth := &CtxAuth{Key: "auth"}
	ctx := context.WithValue(context.Background(), ctxAuthKey("auth"), "not conditions")
	assert.Panics(t, func() { auth.GetConditions(ctx) })
}
