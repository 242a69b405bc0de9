package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/store"
)

func makeBase() (store.CacheableKVStore, func()) {
	commit, cleanup := makeCommitStore()
	return commit, cleanup
}

func makeCommitStore() (*CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		panic(err)
	}
	cleanup := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, cleanup
}

func TestCacheGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestIteratorWithConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestMockCommitStore(t *testing.T) {
	mock := func() (store.CacheableKVStore, func()) {
		return MockCommitStore(), func() {}
	}
	store.NewTestSuite(mock).GetSet(t)
}

func TestCommitOverwrite(t *testing.T) {
	commit, cleanup := makeCommitStore()
	defer cleanup()
	commit.numHistory = 1

	suite := store.NewTestSuite(makeBase)

	id := commit.LatestVersion()
	assert.Equal(t, int64(0), id.Version)

	k1, k2, k3 := []byte("key-1"), []byte("key-2"), []byte("key-3")

	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set(k1, []byte("one")))
	assert.Nil(t, parent.Set(k2, []byte("two")))
	assert.Nil(t, parent.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}

	child := commit.CacheWrap()
	assert.Nil(t, child.Set(k1, []byte("eleven")))
	assert.Nil(t, child.Set(k3, []byte("seven")))
	assert.Nil(t, child.Delete(k2))

	// A parallel cache wrap sees the committed state only.
	side := commit.CacheWrap()
	suite.AssertGetHas(t, side, k1, []byte("one"), true)
	suite.AssertGetHas(t, side, k2, []byte("two"), true)
	suite.AssertGetHas(t, side, k3, nil, false)

	assert.Nil(t, child.Write())
	suite.AssertGetHas(t, commit, k1, []byte("eleven"), true)
	suite.AssertGetHas(t, commit, k2, nil, false)
	suite.AssertGetHas(t, commit, k3, []byte("seven"), true)

	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.Equal(t, id2, commit.LatestVersion())
}

func TestCommitStoreReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	first, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	assert.Nil(t, first.Set([]byte("vault"), []byte("locked")))
	// Not committed data is lost on reload.
	id, err := first.Commit()
	assert.Nil(t, err)
	assert.Nil(t, first.Set([]byte("pending"), []byte("lost")))
	assert.Nil(t, first.Close())

	second, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	defer second.Close()

	assert.Equal(t, id, second.LatestVersion())
	val, err := second.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("locked"), val)
	has, err := second.Has([]byte("pending"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}
