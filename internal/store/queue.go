package store

import "sync"

// keyedLocks serializes mutations per entity id: one in-flight mutation
// per id at a time, later calls blocking until the prior one resolves.
// Without this, two rapid updates to the same record could resolve out of
// order and silently lose the earlier write.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{entries: make(map[string]*lockEntry)}
}

// Lock acquires the lock for key, blocking while another caller holds it.
func (k *keyedLocks) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the lock for key, dropping the entry once nobody waits.
func (k *keyedLocks) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
