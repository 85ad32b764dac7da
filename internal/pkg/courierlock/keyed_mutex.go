// Package courierlock serializes mutating operations per courier identity.
// Storage transactions alone do not prevent an assign and a reconcile for
// the same courier from interleaving; callers take the courier's lock for
// the duration of the whole read-modify-write unit.
package courierlock

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex provides one mutex per courier identifier. Entries are
// reference counted and removed once the last holder unlocks, so the map
// does not grow with the fleet's lifetime.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[kernel.CourierID]*entry
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[kernel.CourierID]*entry),
	}
}

// Lock acquires the mutex for the given courier, blocking while another
// goroutine holds it. Locks for different couriers never contend.
func (k *KeyedMutex) Lock(id kernel.CourierID) {
	k.mu.Lock()
	e, ok := k.entries[id]
	if !ok {
		e = &entry{}
		k.entries[id] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the courier's mutex. Calling Unlock without a matching
// Lock panics, same as sync.Mutex.
func (k *KeyedMutex) Unlock(id kernel.CourierID) {
	k.mu.Lock()
	e, ok := k.entries[id]
	if !ok {
		k.mu.Unlock()
		panic("courierlock: unlock of unlocked courier")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, id)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
