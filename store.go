package ledger

// ReadOnlyKVStore gives read access to the state. Nil keys panic.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator returns the keys in [start, end) in ascending order. A nil
	// start or end leaves that side of the range open. The iterated domain
	// must not be written to while the iterator is open.
	Iterator(start, end []byte) Iterator

	// ReverseIterator returns the keys in [start, end) in descending order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write half of a KVStore. Nil keys panic.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the state every handler reads and writes. During a
// transaction it is always a cache on top of the committed state, so
// nothing a failed transaction writes is kept.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator walks over a range of models:
//
//   it := db.Iterator(start, end)
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     key, value := it.Key(), it.Value()
//   }
//
// Next, Key and Value panic once Valid returned false. Returned slices must
// not be modified.
type Iterator interface {
	Valid() bool
	Next()
	Key() (key []byte)
	Value() (value []byte)
	Close()
}

// CacheableKVStore can open a cache on top of itself, similar to a SQL
// savepoint.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes that are not yet applied to the parent store.
// Reads see the pending writes. Write applies them to the parent, Discard
// drops them. Caches can be nested.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent state of the ledger. Every Commit saves
// a new version.
type CommitKVStore interface {
	// Get reads from the last committed version.
	Get(key []byte) []byte

	// CacheWrap opens a cache on top of the working state. Its writes reach
	// disk with the next Commit after Write is called.
	CacheWrap() KVCacheWrap

	Commit() CommitID

	// LoadLatestVersion loads the latest persisted version. After a crash
	// during a commit, an older but consistent version is loaded.
	LoadLatestVersion() error

	LatestVersion() CommitID
}

// CommitID identifies a committed version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
