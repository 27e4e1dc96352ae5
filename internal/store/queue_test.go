package store

import (
	"sync"
	"testing"
)

func TestKeyedLocksSerializeSameKey(t *testing.T) {
	locks := newKeyedLocks()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("rec-1")
			counter++
			locks.Unlock("rec-1")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyedLocksDropEntriesWhenIdle(t *testing.T) {
	locks := newKeyedLocks()

	locks.Lock("a")
	locks.Lock("b")
	locks.Unlock("a")

	locks.mu.Lock()
	n := len(locks.entries)
	locks.mu.Unlock()
	if n != 1 {
		t.Errorf("entries = %d with one lock held, want 1", n)
	}

	locks.Unlock("b")
	locks.mu.Lock()
	n = len(locks.entries)
	locks.mu.Unlock()
	if n != 0 {
		t.Errorf("entries = %d after all released, want 0", n)
	}
}

func TestKeyedLocksIndependentKeys(t *testing.T) {
	locks := newKeyedLocks()

	locks.Lock("a")
	done := make(chan struct{})
	go func() {
		locks.Lock("b") // must not block on a's lock
		locks.Unlock("b")
		close(done)
	}()
	<-done
	locks.Unlock("a")
}
