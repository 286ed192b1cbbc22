// Package outbox implements the transactional outbox for notification
// delivery. Entries are appended in the same transaction as the notification
// rows they mirror; a background dispatcher publishes them after commit, so a
// broker outage can never roll back a signature.
package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one pending event in the outbox table.
type Entry struct {
	ID            uuid.UUID
	AggregateType string     // e.g. "lease"
	AggregateID   string     // e.g. lease ID
	EventType     string     // e.g. "signature_required"
	Payload       []byte     // JSON-encoded event body
	CreatedAt     time.Time  // when the entry was created
	ProcessedAt   *time.Time // nil = pending, non-nil = published
}

// IsPending reports whether this entry has not been published yet.
func (e *Entry) IsPending() bool {
	return e.ProcessedAt == nil
}

// NewEntry creates an outbox entry with a generated UUID.
func NewEntry(aggregateType, aggregateID, eventType string, payload []byte, at time.Time) *Entry {
	return &Entry{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
	}
}
