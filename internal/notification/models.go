// Package notification holds in-app notifications and their delivery
// plumbing. Rows are written atomically with the business state that caused
// them; delivery to external channels is best-effort via the outbox.
package notification

import (
	"time"

	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
)

// Type labels why a notification was sent.
type Type string

const (
	TypeSignatureRequired Type = "signature_required"
	TypeLeaseSigned       Type = "lease_signed"
	TypeLeaseActivated    Type = "lease_activated"
	TypeSigningReminder   Type = "signing_reminder"
)

// IsValid checks if the type is one of the supported enum values.
func (t Type) IsValid() bool {
	switch t {
	case TypeSignatureRequired, TypeLeaseSigned, TypeLeaseActivated, TypeSigningReminder:
		return true
	}
	return false
}

// Notification is an at-most-once message addressed to a single user.
type Notification struct {
	ID        domain.NotificationID
	UserID    domain.UserID
	Type      Type
	Title     string
	Message   string
	ActionURL string
	Metadata  map[string]string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// New builds a notification with invariant checks.
func New(userID domain.UserID, typ Type, title, message, actionURL string, metadata map[string]string, at time.Time) (*Notification, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "notification recipient required")
	}
	if !typ.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid notification type")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "notification title required")
	}
	return &Notification{
		ID:        domain.NewNotificationID(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		Metadata:  metadata,
		CreatedAt: at,
	}, nil
}

// IsRead reports whether the recipient has read the notification.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
