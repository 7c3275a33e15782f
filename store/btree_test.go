package store

import (
	"testing"

	"github.com/campuspay/ledger/weavetest/assert"
)

var suite = NewTestSuite(func() (CacheableKVStore, func()) {
	return MemStore(), func() {}
})

func TestBTreeCache(t *testing.T) { suite.Run(t) }

func TestBTreeCacheableWritesToBase(t *testing.T) {
	base := MemStore()
	devnull := BTreeCacheable{base}

	cache := devnull.CacheWrap()
	cache.Set([]byte("escrow"), []byte("active"))
	assert.Equal(t, false, base.Has([]byte("escrow")))

	cache.Write()
	assert.Equal(t, []byte("active"), base.Get([]byte("escrow")))
}

func TestDiscardDropsPendingWrites(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))

	child := base.CacheWrap()
	child.Set([]byte("b"), []byte("2"))
	child.Delete([]byte("a"))
	child.Discard()
	// a later write of the same cache must not replay discarded ops
	child.Write()

	assert.Equal(t, []byte("1"), base.Get([]byte("a")))
	assert.Equal(t, false, base.Has([]byte("b")))
}

func TestNestedSavepoints(t *testing.T) {
	base := MemStore()

	outer := base.CacheWrap()
	outer.Set([]byte("funds"), []byte("100"))

	inner := outer.CacheWrap()
	inner.Set([]byte("funds"), []byte("0"))
	inner.Set([]byte("record"), []byte("active"))
	inner.Discard()

	assert.Equal(t, []byte("100"), outer.Get([]byte("funds")))
	assert.Equal(t, false, outer.Has([]byte("record")))

	outer.Write()
	assert.Equal(t, []byte("100"), base.Get([]byte("funds")))
}

func TestSliceIterator(t *testing.T) {
	iter := NewSliceIterator([]Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2"))})
	var keys []string
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Panics(t, func() { iter.Next() })
}
