// Package sessionlock provides a keyed mutual-exclusion lock used to
// serialize checkout operations on the same session. The step engine itself
// performs no locking; callers are expected to wrap state-changing operations
// for a session in Lock/Unlock so that at most one progression runs at a
// time per session. Operations on distinct sessions never contend.
package sessionlock

import "sync"

// Keyed is a set of mutexes indexed by session identifier. Entries are
// reference-counted and removed when the last holder releases them, so the
// map does not grow with the number of sessions ever seen.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyed creates an empty keyed lock set.
func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for the given key, creating it on first use.
// Blocks while another goroutine holds the same key.
func (k *Keyed) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key. Calling Unlock for a key that
// is not held is a programming error and panics, matching sync.Mutex.
func (k *Keyed) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("sessionlock: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
