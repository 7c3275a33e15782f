package orm

import (
	"testing"

	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/store"
	"github.com/campuspay/ledger/weavetest/assert"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts", &Counter{})

	if err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 Counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketPutRejects(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	cases := map[string]struct {
		key     []byte
		model   Model
		wantErr *errors.Error
	}{
		"invalid model": {
			key:     []byte("c1"),
			model:   &Counter{Count: -1},
			wantErr: errors.ErrInvalidModel,
		},
		"wrong model type": {
			key:     []byte("c1"),
			model:   &Label{Text: "x"},
			wantErr: errors.ErrInvalidModel,
		},
		"empty key": {
			key:     nil,
			model:   &Counter{Count: 1},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, b.Put(db, tc.key, tc.model))
		})
	}
}

func TestModelBucketOneWrongDestination(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})
	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 5}))

	var l Label
	assert.IsErr(t, errors.ErrInvalidType, b.One(db, []byte("c1"), &l))
}

func TestModelBucketStoresDefaultValues(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	assert.Nil(t, b.Put(db, []byte("zero"), &Counter{}))
	assert.Nil(t, b.Has(db, []byte("zero")))

	c := Counter{Count: 42}
	assert.Nil(t, b.One(db, []byte("zero"), &c))
	assert.Equal(t, int64(0), c.Count)
}
