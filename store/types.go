package store

import "github.com/campuspay/ledger"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = ledger.ReadOnlyKVStore
type SetDeleter = ledger.SetDeleter
type KVStore = ledger.KVStore
type Iterator = ledger.Iterator
type CacheableKVStore = ledger.CacheableKVStore
type KVCacheWrap = ledger.KVCacheWrap
type CommitKVStore = ledger.CommitKVStore
type CommitID = ledger.CommitID
type Model = ledger.Model

var Pair = ledger.Pair

// Batch can write multiple ops atomically to an underlying store.
type Batch interface {
	SetDeleter
	Write()
}
