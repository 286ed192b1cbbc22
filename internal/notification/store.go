package notification

import (
	"context"
	"time"
)

// Store is the persistence interface for notifications.
// Error contract:
// - MarkRead returns sentinel.ErrNotFound when the notification does not
//   exist or belongs to another user; ownership is enforced by the query.
// - Other methods return nil on success or wrapped errors on failure.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, id string, userID string, at time.Time) error
	CountUnread(ctx context.Context, userID string) (int, error)
}
