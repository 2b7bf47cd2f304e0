package custody

import (
	"context"
	"sync"
)

type itemKey struct {
	collection string
	itemID     uint64
}

// InMemoryRegistry is a reference custody registry for embedded deployments
// and tests. It is passive: it never calls back into the engine.
type InMemoryRegistry struct {
	mu     sync.RWMutex
	owners map[itemKey]string
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		owners: make(map[itemKey]string),
	}
}

// Register mints an item to an owner, replacing any previous registration.
func (r *InMemoryRegistry) Register(owner, collection string, itemID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[itemKey{collection: collection, itemID: itemID}] = owner
}

func (r *InMemoryRegistry) Transfer(ctx context.Context, from, to, collection string, itemID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := itemKey{collection: collection, itemID: itemID}
	owner, ok := r.owners[key]
	if !ok {
		return &UnknownItemError{Collection: collection, ItemID: itemID}
	}
	if owner != from {
		return &NotOwnerError{Collection: collection, ItemID: itemID, Owner: owner}
	}

	r.owners[key] = to
	return nil
}

func (r *InMemoryRegistry) OwnerOf(ctx context.Context, collection string, itemID uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[itemKey{collection: collection, itemID: itemID}]
	if !ok {
		return "", &UnknownItemError{Collection: collection, ItemID: itemID}
	}
	return owner, nil
}
