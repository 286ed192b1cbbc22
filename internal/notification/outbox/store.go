package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the outbox persistence operations.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append adds a new entry. Call it within the same transaction as the
	// business operation that produced the event.
	Append(ctx context.Context, entry *Entry) error

	// FetchUnprocessed returns up to limit pending entries, oldest first.
	// Implementations should use row-level locking (FOR UPDATE SKIP LOCKED)
	// to support concurrent dispatchers.
	FetchUnprocessed(ctx context.Context, limit int) ([]*Entry, error)

	// MarkProcessed marks an entry as successfully published.
	MarkProcessed(ctx context.Context, id uuid.UUID, processedAt time.Time) error

	// CountPending returns the number of unprocessed entries.
	CountPending(ctx context.Context) (int64, error)

	// DeleteProcessedBefore removes old processed entries and returns the
	// number deleted.
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
