package app

import (
	"github.com/campuspay/ledger"
)

// CommitStore splits a CommitKVStore into the two views an ABCI app works
// on during a block:
//
//   - deliver collects the writes of DeliverTx and is flushed on Commit,
//   - check collects the writes of CheckTx and is thrown away on Commit.
//
// Both are rebuilt on top of the new state after every commit. Calls are
// serialized by the ABCI connection, so there is no locking.
type CommitStore struct {
	committed ledger.CommitKVStore
	deliver   ledger.KVCacheWrap
	check     ledger.KVCacheWrap
}

// NewCommitStore loads the latest version of store and panics if that is
// not possible.
func NewCommitStore(store ledger.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() ledger.CommitID {
	return cs.committed.LatestVersion()
}

// Commit persists the delivered writes as a new version.
func (cs *CommitStore) Commit() ledger.CommitID {
	cs.check.Discard()
	cs.deliver.Write()
	id := cs.committed.Commit()
	cs.reset()
	return id
}

func (cs *CommitStore) CheckStore() ledger.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() ledger.CacheableKVStore {
	return cs.deliver
}

// committedView is a throwaway cache over the last commit. Queries read
// from it, so they never see uncommitted writes.
func (cs *CommitStore) committedView() ledger.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}
