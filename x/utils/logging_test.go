package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/store"
	"github.com/campuspay/ledger/weavetest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/claim"}}

	cases := map[string]struct {
		handler  ledger.Handler
		check    bool
		wantLine string
	}{
		"successful deliver is info": {
			handler:  &weavetest.Handler{DeliverResult: ledger.DeliverResult{Log: "all good"}},
			wantLine: "I[",
		},
		"failed deliver is error": {
			handler:  &weavetest.Handler{DeliverErr: errors.ErrUnauthorized},
			wantLine: "E[",
		},
		"successful check is debug": {
			handler:  &weavetest.Handler{},
			check:    true,
			wantLine: "D[",
		},
		"failed check is error": {
			handler:  &weavetest.Handler{CheckErr: errors.ErrNotFound},
			check:    true,
			wantLine: "E[",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&buf))
			db := store.MemStore()

			if tc.check {
				NewLogging().Check(ctx, db, tx, tc.handler)
			} else {
				NewLogging().Deliver(ctx, db, tx, tc.handler)
			}

			out := buf.String()
			if !strings.HasPrefix(out, tc.wantLine) {
				t.Fatalf("unexpected log level: %q", out)
			}
			if !strings.Contains(out, "path=escrow/claim") {
				t.Fatalf("message path not logged: %q", out)
			}
		})
	}
}
