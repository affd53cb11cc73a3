package services

import "sync"

// KeyMutex serializes work per entity key. Every check-then-act sequence in
// the services runs between Lock and its returned unlock so that two staff
// terminals cannot interleave on the same table, order or bill. Multi-entity
// operations always acquire keys in table, order, bill order.
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*keyMutexEntry
}

type keyMutexEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{entries: make(map[string]*keyMutexEntry)}
}

// Lock blocks until the key is held and returns the matching unlock.
func (km *KeyMutex) Lock(key string) func() {
	km.mu.Lock()
	entry, ok := km.entries[key]
	if !ok {
		entry = &keyMutexEntry{}
		km.entries[key] = entry
	}
	entry.refs++
	km.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		km.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(km.entries, key)
		}
		km.mu.Unlock()
	}
}

func tableKey(tableID string) string { return "table/" + tableID }
func orderKey(orderID string) string { return "order/" + orderID }
func billKey(billID string) string   { return "bill/" + billID }
func idKey(collection string) string { return "ids/" + collection }
