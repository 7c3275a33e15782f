package weavetest

import (
	"testing"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/store/iavl"
)

// CommitKVStore returns the iavl store escrowd runs on, backed by a
// goleveldb database in a temporary directory. The directory is removed
// when the test ends. Use it instead of store.MemStore when commits,
// versions or app hashes matter.
func CommitKVStore(t testing.TB) ledger.CommitKVStore {
	t.Helper()
	return iavl.NewCommitStore(t.TempDir(), "db")
}
