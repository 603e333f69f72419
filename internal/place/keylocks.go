package place

import "sync"

// KeyLocks serializes placement decisions that share a destination slot
// key. Probing one key from two goroutines could race on "does the target
// exist" and produce duplicate writes or lost disambiguation slots, so the
// decider holds the key's lock for the whole decision. Locks are created on
// first use and live for the run; the map is bounded by the number of
// distinct keys processed.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLocks creates a ready-to-use lock table.
func NewKeyLocks() *KeyLocks {
	return &KeyLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it if needed, and returns the
// matching unlock function.
func (kl *KeyLocks) Lock(key string) (unlock func()) {
	kl.mu.Lock()
	m, ok := kl.locks[key]
	if !ok {
		m = &sync.Mutex{}
		kl.locks[key] = m
	}
	kl.mu.Unlock()

	m.Lock()
	return m.Unlock
}
