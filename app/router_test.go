package app

import (
	"context"
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/store"
	"github.com/campuspay/ledger/weavetest"
	"github.com/campuspay/ledger/weavetest/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	var good weavetest.Handler
	bad := weavetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	r.Handle("escrow/good", &good)
	r.Handle("escrow/bad", &bad)

	assert.Panics(t, func() { r.Handle("escrow/good", &good) })
	assert.Panics(t, func() { r.Handle("l:7", &good) })

	ctx := context.Background()
	db := store.MemStore()
	txFor := func(path string) ledger.Tx {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, db, txFor("escrow/good"))
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, txFor("escrow/good"))
	assert.Nil(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, txFor("escrow/bad"))
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 1, bad.CallCount())

	_, err = r.Check(ctx, db, txFor("escrow/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, txFor("escrow/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrInvalidMsg, err)

	_, err = r.Check(ctx, db, &weavetest.Tx{Err: errors.ErrInvalidInput})
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
