package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
)

func TestSyncStoreConcurrentAccess(t *testing.T) {
	db := NewSyncStore(MemStore())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := []byte(fmt.Sprintf("key-%02d", n))
			if err := db.Set(key, []byte("value")); err != nil {
				t.Errorf("cannot set: %s", err)
			}
			if _, err := db.Get(key); err != nil {
				t.Errorf("cannot get: %s", err)
			}
			it, err := db.Iterator(nil, nil)
			if err != nil {
				t.Errorf("cannot iterate: %s", err)
				return
			}
			it.Release()
		}(i)
	}
	wg.Wait()

	it, err := db.Iterator(nil, nil)
	assert.Nil(t, err)
	all, err := ReadAll(it)
	assert.Nil(t, err)
	assert.Equal(t, 20, len(all))
	assert.Equal(t, []byte("key-00"), all[0].Key)

	rit, err := db.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	rall, err := ReadAll(rit)
	assert.Nil(t, err)
	assert.Equal(t, []byte("key-19"), rall[0].Key)
}

func TestSyncStoreCacheWrap(t *testing.T) {
	db := NewSyncStore(MemStore())
	assert.Nil(t, db.Set([]byte("a"), []byte("1")))

	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("b"), []byte("2")))
	assert.Nil(t, cache.Delete([]byte("a")))

	// Nothing is visible before the write.
	val, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), val)
	ok, err := db.Has([]byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	assert.Nil(t, cache.Write())

	ok, err = db.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
	val, err = db.Get([]byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), val)

	discarded := db.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("c"), []byte("3")))
	discarded.Discard()
	ok, err = db.Has([]byte("c"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	var called bool
	assert.Nil(t, db.Exclusive(func() error {
		called = true
		return nil
	}))
	assert.Equal(t, true, called)
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"nil prefix":        {},
		"regular prefix":    {prefix: []byte("vault:"), wantStart: []byte("vault:"), wantEnd: []byte("vault;")},
		"trailing max byte": {prefix: []byte{1, 0xFF}, wantStart: []byte{1, 0xFF}, wantEnd: []byte{2}},
		"only max bytes":    {prefix: []byte{0xFF, 0xFF}, wantStart: []byte{0xFF, 0xFF}},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := PrefixRange(tc.prefix)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}
