// Package activity records the append-only audit trail of user actions.
// Entries are immutable once written; there is no update or delete path.
package activity

import (
	"time"

	"github.com/google/uuid"

	"leasegate/pkg/domain"
)

// Actions recorded by the signing flow.
const (
	ActionLeaseSigned     = "lease_signed"
	ActionLeaseActivated  = "lease_activated"
	ActionSigningReminder = "signing_reminder_sent"
)

// Entity types referenced by entries.
const (
	EntityLease = "lease"
)

// Entry is one audit record. Device is derived from the raw user agent at
// write time so readers never need to re-parse it.
type Entry struct {
	ID         uuid.UUID
	UserID     domain.UserID
	Action     string
	EntityType string
	EntityID   string
	Details    string
	IPAddress  string
	UserAgent  string
	Device     string
	CreatedAt  time.Time
}

// Meta carries the client-supplied audit context attached to a signing action.
type Meta struct {
	IPAddress string
	UserAgent string
}

// NewEntry builds an entry for an action taken by userID on an entity.
func NewEntry(userID domain.UserID, action, entityType, entityID, details string, meta Meta, at time.Time) *Entry {
	return &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Device:     DeviceLabel(meta.UserAgent),
		CreatedAt:  at,
	}
}
