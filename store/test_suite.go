package store

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"
	"testing"

	"github.com/campuspay/ledger/weavetest/assert"
)

// TestSuite checks the caching behaviour every CacheableKVStore backend
// must provide. Backends run it from their own tests with Run.
type TestSuite struct {
	open func() (CacheableKVStore, func())
}

// NewTestSuite returns a suite opening a fresh, empty store for every check.
func NewTestSuite(open func() (base CacheableKVStore, cleanup func())) *TestSuite {
	return &TestSuite{open: open}
}

// Run executes all checks as subtests.
func (s *TestSuite) Run(t *testing.T) {
	t.Run("layers", s.layers)
	t.Run("conflicts", s.conflicts)
	t.Run("nested savepoints", s.nested)
	t.Run("iterate fixed", s.iterateFixed)
	t.Run("iterate random", s.iterateRandom)
}

func (s *TestSuite) withStore(t *testing.T, fn func(CacheableKVStore)) {
	base, cleanup := s.open()
	defer cleanup()
	fn(base)
}

// layers walks through the lifecycle of a transaction: writes are visible
// in the cache only, until the cache is written or discarded.
func (s *TestSuite) layers(t *testing.T) {
	s.withStore(t, func(base CacheableKVStore) {
		escrow, active := []byte("escrow:campuspay"), []byte("active")
		wallet, funds := []byte("wallet:payer"), []byte("500")
		custody := []byte("wallet:custody")

		assertValue(t, base, escrow, nil)
		base.Set(escrow, active)
		assertValue(t, base, escrow, active)

		tx := base.CacheWrap()
		assertValue(t, tx, escrow, active)
		tx.Set(wallet, funds)
		assertValue(t, tx, wallet, funds)
		assertValue(t, base, wallet, nil)
		tx.Write()
		assertValue(t, base, wallet, funds)

		failed := base.CacheWrap()
		failed.Set(custody, funds)
		failed.Discard()

		claim := base.CacheWrap()
		claim.Delete(escrow)
		claim.Write()

		assertValue(t, base, escrow, nil)
		assertValue(t, base, wallet, funds)
		assertValue(t, base, custody, nil)
	})
}

// conflicts overwrites, deletes and adds keys in a cache on top of data
// that already exists in the parent.
func (s *TestSuite) conflicts(t *testing.T) {
	s.withStore(t, func(parent CacheableKVStore) {
		SetOp([]byte("a"), []byte("parent-a")).Apply(parent)
		SetOp([]byte("b"), []byte("parent-b")).Apply(parent)

		child := parent.CacheWrap()
		for _, op := range []Op{
			SetOp([]byte("a"), []byte("child-a")),
			SetOp([]byte("c"), []byte("child-c")),
			DelOp([]byte("b")),
		} {
			op.Apply(child)
		}

		want := map[string][]byte{"a": []byte("child-a"), "b": nil, "c": []byte("child-c")}
		for k, v := range want {
			assertValue(t, child, []byte(k), v)
		}
		assertValue(t, parent, []byte("a"), []byte("parent-a"))
		assertValue(t, parent, []byte("b"), []byte("parent-b"))
		assertValue(t, parent, []byte("c"), nil)

		child.Write()
		for k, v := range want {
			assertValue(t, parent, []byte(k), v)
		}
	})
}

// nested discards an inner cache while keeping the outer one, the way a
// failed transaction is rolled back within a block.
func (s *TestSuite) nested(t *testing.T) {
	s.withStore(t, func(base CacheableKVStore) {
		block := base.CacheWrap()
		block.Set([]byte("wallet:payer"), []byte("500"))

		tx := block.CacheWrap()
		tx.Set([]byte("wallet:payer"), []byte("0"))
		tx.Set([]byte("escrow:campuspay"), []byte("active"))
		assertIterate(t, tx, nil, nil, false, []Model{
			Pair([]byte("escrow:campuspay"), []byte("active")),
			Pair([]byte("wallet:payer"), []byte("0")),
		})
		tx.Discard()

		assertValue(t, block, []byte("wallet:payer"), []byte("500"))
		assertValue(t, block, []byte("escrow:campuspay"), nil)
		block.Write()
		assertValue(t, base, []byte("wallet:payer"), []byte("500"))
	})
}

// iterateFixed covers iteration over a child that shadows and deletes
// parent keys.
func (s *TestSuite) iterateFixed(t *testing.T) {
	a, b, c, d := Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2")),
		Pair([]byte("c"), []byte("3")), Pair([]byte("d"), []byte("4"))
	a2, b2 := Pair(a.Key, []byte("11")), Pair(b.Key, []byte("22"))

	cases := map[string]struct {
		parent []Op
		child  []Op
		start  []byte
		end    []byte
		want   []Model
	}{
		"child only": {
			child: setOps(a, b, c),
			want:  []Model{a, b, c},
		},
		"parent only": {
			parent: setOps(a, b, c),
			start:  b.Key,
			want:   []Model{b, c},
		},
		"merged": {
			parent: setOps(a, c),
			child:  setOps(b, d),
			end:    d.Key,
			want:   []Model{a, b, c},
		},
		"child overwrites parent": {
			parent: setOps(a, b, c),
			child:  setOps(a2, b2, d),
			want:   []Model{a2, b2, c, d},
		},
		"child deletes parent": {
			parent: setOps(a, c, d),
			child:  delOps(a, b, d),
			want:   []Model{c},
		},
		"range ends before the only value": {
			parent: setOps(a, c, d),
			child:  delOps(a, b, d),
			end:    c.Key,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s.withStore(t, func(base CacheableKVStore) {
				child := prepare(base, tc.parent, tc.child)
				assertIterate(t, child, tc.start, tc.end, false, tc.want)
				assertIterate(t, child, tc.start, tc.end, true, reverse(tc.want))
			})
		})
	}
}

// iterateRandom compares iteration over random data with the sorted
// expectation, using every combination of range limits.
func (s *TestSuite) iterateRandom(t *testing.T) {
	const size = 40

	parent, child := randModels(size), randModels(size)
	all := sortModels(append(append([]Model{}, parent...), child...))
	parentOps := append(setOps(parent...), delOps(randModels(10)...)...)
	childOps := append(setOps(child...), delOps(randModels(10)...)...)

	s.withStore(t, func(base CacheableKVStore) {
		cache := prepare(base, parentOps, childOps)
		for _, r := range [][2]int{{0, len(all)}, {10, len(all)}, {0, 52}, {17, 61}} {
			var start, end []byte
			if r[0] > 0 {
				start = all[r[0]].Key
			}
			if r[1] < len(all) {
				end = all[r[1]].Key
			}
			want := all[r[0]:r[1]]
			assertIterate(t, cache, start, end, false, want)
			assertIterate(t, cache, start, end, true, reverse(want))
		}
	})
}

func prepare(base CacheableKVStore, parent, child []Op) KVCacheWrap {
	for _, op := range parent {
		op.Apply(base)
	}
	cache := base.CacheWrap()
	for _, op := range child {
		op.Apply(cache)
	}
	return cache
}

func assertValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	if got := kv.Get(key); !bytes.Equal(want, got) {
		t.Fatalf("%s: want %X value, got %X", key, want, got)
	}
	assert.Equal(t, want != nil, kv.Has(key))
}

func assertIterate(t testing.TB, kv ReadOnlyKVStore, start, end []byte, desc bool, want []Model) {
	t.Helper()
	var it Iterator
	if desc {
		it = kv.ReverseIterator(start, end)
	} else {
		it = kv.Iterator(start, end)
	}
	defer it.Close()

	var got []Model
	for ; it.Valid(); it.Next() {
		got = append(got, Pair(it.Key(), it.Value()))
	}
	if len(got) != len(want) {
		t.Fatalf("want %d models, got %d: %s", len(want), len(got), describe(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) || !bytes.Equal(want[i].Value, got[i].Value) {
			t.Fatalf("model %d: want %X=%X, got %X=%X", i, want[i].Key, want[i].Value, got[i].Key, got[i].Value)
		}
	}
}

func describe(ms []Model) string {
	var b bytes.Buffer
	for _, m := range ms {
		fmt.Fprintf(&b, "%X ", m.Key)
	}
	return b.String()
}

func randModels(count int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(12), randBytes(24))
	}
	return models
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := append([]Model{}, models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func setOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func delOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
