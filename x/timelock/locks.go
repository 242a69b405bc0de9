package timelock

import "sync"

// vaultLocks hands out one mutex per vault. A mutex is released from the
// registry when nobody holds or waits for it.
type vaultLocks struct {
	mu    sync.Mutex
	locks map[string]*vaultLock
}

type vaultLock struct {
	sync.Mutex
	refs int
}

func newVaultLocks() *vaultLocks {
	return &vaultLocks{locks: make(map[string]*vaultLock)}
}

// Lock blocks until the vault with given ID is exclusively held. Call the
// returned function to unlock.
func (l *vaultLocks) Lock(id []byte) (unlock func()) {
	key := string(id)

	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &vaultLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *vaultLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
