package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/campuspay/ledger/store"
	"github.com/campuspay/ledger/weavetest/assert"
)

func makeCommitStore(t testing.TB) (CommitStore, string, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		t.Fatalf("cannot create temp dir: %s", err)
	}
	commit := NewCommitStore(tmpDir, "base")
	cleanup := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, tmpDir, cleanup
}

var suite = store.NewTestSuite(func() (store.CacheableKVStore, func()) {
	commit := MockCommitStore()
	return commit.Adapter(), commit.Close
})

func TestAdapterCache(t *testing.T) { suite.Run(t) }

func TestCommitOnlyExposesSavedState(t *testing.T) {
	commit := MockCommitStore()
	defer commit.Close()

	k, v := []byte("escrow:campuspay"), []byte("active")
	cache := commit.CacheWrap()
	cache.Set(k, v)
	cache.Write()

	// written to the working tree but not committed yet
	assert.Nil(t, commit.Get(k))
	assert.Equal(t, int64(0), commit.LatestVersion().Version)

	id := commit.Commit()
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("commit must produce a root hash")
	}
	assert.Equal(t, v, commit.Get(k))
	assert.Equal(t, id, commit.LatestVersion())

	// same content gives the same hash
	other := MockCommitStore()
	defer other.Close()
	c2 := other.CacheWrap()
	c2.Set(k, v)
	c2.Write()
	assert.Equal(t, id.Hash, other.Commit().Hash)
}

func TestReloadFromDisk(t *testing.T) {
	commit, dir, cleanup := makeCommitStore(t)
	defer cleanup()

	k, v := []byte("wallet:alice"), []byte("200000")
	cache := commit.CacheWrap()
	cache.Set(k, v)
	cache.Write()
	id := commit.Commit()

	// an uncommitted write is lost on restart
	lost := commit.CacheWrap()
	lost.Set([]byte("wallet:bob"), []byte("1"))
	lost.Write()
	commit.Close()

	reopened := NewCommitStore(dir, "base")
	assert.Nil(t, reopened.LoadLatestVersion())
	assert.Equal(t, id, reopened.LatestVersion())
	assert.Equal(t, v, reopened.Get(k))
	assert.Nil(t, reopened.Get([]byte("wallet:bob")))
	reopened.Close()
}
