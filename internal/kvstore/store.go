package kvstore

import "context"

// Store is a named-snapshot store. Each state container owns exactly one
// name and persists its full serialized state under it; nothing else
// writes to that name. Concurrent writers are not coordinated (last
// writer wins).
type Store interface {
	// Get returns the snapshot stored under name. The second return is
	// false when no snapshot has ever been written for that name.
	Get(ctx context.Context, name string) ([]byte, bool, error)
	// Set replaces the snapshot stored under name.
	Set(ctx context.Context, name string, value []byte) error
	// Delete removes the snapshot; deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error
}

// Storage names owned by the state containers.
const (
	CartStorageKey      = "marketplace-cart"
	FavoritesStorageKey = "marketplace-favorites"
)
