package custody

import (
	"context"
)

// CustodyInterface is the collectible-ownership registry the engine moves
// items through. Transfer fails if the caller is not the current owner or has
// not authorized the move; the engine treats any failure as operation abort.
type CustodyInterface interface {
	Transfer(ctx context.Context, from, to, collection string, itemID uint64) error
	OwnerOf(ctx context.Context, collection string, itemID uint64) (string, error)
}
