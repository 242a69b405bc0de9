package timelock

import (
	"sync"
	"testing"
	"time"
)

func TestVaultLocks(t *testing.T) {
	locks := newVaultLocks()

	unlockA := locks.Lock([]byte("a"))
	unlockB := locks.Lock([]byte("b"))
	if n := locks.size(); n != 2 {
		t.Fatalf("want 2 locks, got %d", n)
	}

	acquired := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		unlock := locks.Lock([]byte("a"))
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("lock of the same vault acquired twice")
	case <-time.After(50 * time.Millisecond):
	}

	unlockA()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock was not handed over")
	}

	<-done
	unlockB()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock([]byte("c"))()
		}()
	}
	wg.Wait()

	if n := locks.size(); n != 0 {
		t.Fatalf("want all locks released, got %d", n)
	}
}
