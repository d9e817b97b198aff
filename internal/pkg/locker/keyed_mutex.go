// Package locker provides in-process mutual exclusion scoped by entity key.
package locker

import (
	"slices"
	"sync"
)

// KeyedMutex serializes work per key ("order:<id>", "courier:<id>") while
// letting unrelated keys proceed in parallel. Entries are reference counted
// and dropped once nobody holds or waits for them.
//
// The zero value is ready to use.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

// Lock acquires every key and returns the function that releases them.
// Keys are deduplicated and taken in sorted order, so two callers locking
// overlapping key sets cannot deadlock.
func (k *KeyedMutex) Lock(keys ...string) (unlock func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*keyedEntry, 0, len(sorted))
	for _, key := range sorted {
		e := k.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				k.release(sorted[i])
			}
		})
	}
}

// Len reports how many keys are currently held or awaited.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func (k *KeyedMutex) acquire(key string) *keyedEntry {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.entries == nil {
		k.entries = make(map[string]*keyedEntry)
	}
	e, ok := k.entries[key]
	if !ok {
		e = &keyedEntry{}
		k.entries[key] = e
	}
	e.refs++
	return e
}

func (k *KeyedMutex) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e := k.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

// OrderKey is the lock key of an order.
func OrderKey(id string) string { return "order:" + id }

// CourierKey is the lock key of a courier.
func CourierKey(id string) string { return "courier:" + id }
