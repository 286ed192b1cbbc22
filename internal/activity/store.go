package activity

import "context"

// Store is the persistence interface for activity entries.
// Error contract: reads return empty slices rather than sentinel errors when
// nothing matches; Append returns nil on success or a wrapped infrastructure
// error.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Entry, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*Entry, error)
}
