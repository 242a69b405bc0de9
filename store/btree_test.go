package store

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(memStoreConstructor).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(memStoreConstructor).CacheConflicts(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	NewTestSuite(memStoreConstructor).IteratorWithConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	const size = 50

	parentSet := randModels(size, 8, 40)
	childSet := randModels(size, 8, 40)
	all := sortModels(append(append([]Model(nil), parentSet...), childSet...))

	tc := iterCase{
		pre:   makeSetOps(parentSet...),
		child: makeSetOps(childSet...),
		queries: []rangeQuery{
			{nil, nil, false, all},
			{all[10].Key, nil, false, all[10:]},
			{nil, all[size-8].Key, false, all[:size-8]},
			{all[17].Key, all[28].Key, false, all[17:28]},
			{nil, nil, true, reverse(all)},
			{all[34].Key, nil, true, reverse(all[34:])},
			{nil, all[19].Key, true, reverse(all[:19])},
			{all[6].Key, all[26].Key, true, reverse(all[6:26])},
		},
	}
	tc.verify(t, MemStore())
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	batch := NewNonAtomicBatch(db)

	assert.Nil(t, batch.Set([]byte("a"), []byte("1")))
	assert.Nil(t, batch.Delete([]byte("b")))
	assert.Equal(t, 2, len(batch.ShowOps()))

	// Nothing is visible before the write.
	has, err := db.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, batch.Write())
	assert.Equal(t, 0, len(batch.ShowOps()))
	val, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), val)
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := 0; i < count; i++ {
		models[i].Key = randBytes(keySize)
		models[i].Value = randBytes(valueSize)
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
