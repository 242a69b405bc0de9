package store

import (
	"sync"
)

// SyncStore guards every operation of the wrapped store with a mutex so that
// it can be shared between goroutines. Iterators are materialized while the
// lock is held and never observe concurrent writes.
type SyncStore struct {
	mu sync.RWMutex
	kv KVStore
}

var _ CacheableKVStore = (*SyncStore)(nil)

// NewSyncStore returns a store safe for concurrent use.
func NewSyncStore(kv KVStore) *SyncStore {
	return &SyncStore{kv: kv}
}

// Get implements KVStore.
func (s *SyncStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Get(key)
}

// Has implements KVStore.
func (s *SyncStore) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Has(key)
}

// Set implements KVStore.
func (s *SyncStore) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(key, value)
}

// Delete implements KVStore.
func (s *SyncStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(key)
}

// Iterator implements KVStore.
func (s *SyncStore) Iterator(start, end []byte) (Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, err := s.kv.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return materialize(it)
}

// ReverseIterator implements KVStore.
func (s *SyncStore) ReverseIterator(start, end []byte) (Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, err := s.kv.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return materialize(it)
}

// CacheWrap returns a cache wrap whose Write applies all buffered changes
// while the lock is held, so that no reader observes a partial write.
func (s *SyncStore) CacheWrap() KVCacheWrap {
	batch := &syncBatch{NonAtomicBatch: NewNonAtomicBatch(s.kv), mu: &s.mu}
	return NewBTreeCacheWrap(s, batch, nil)
}

// Exclusive runs fn while no other operation can access the store. Use it
// to run operations of the wrapped store that are not part of the KVStore
// interface, for example a commit.
func (s *SyncStore) Exclusive(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

type syncBatch struct {
	*NonAtomicBatch
	mu *sync.RWMutex
}

func (b *syncBatch) Write() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.NonAtomicBatch.Write()
}

// materialize reads all entries of the iterator and releases it.
func materialize(it Iterator) (Iterator, error) {
	defer it.Release()
	models, err := ReadAll(it)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}
