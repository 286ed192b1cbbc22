package service

import (
	"encoding/json"
	"time"

	"leasegate/internal/notification"
	"leasegate/internal/notification/outbox"
	"leasegate/pkg/domain"
)

// notificationEvent is the outbox payload mirrored to the broker for each
// notification row. Consumers route on the outbox entry's event type.
type notificationEvent struct {
	NotificationID string            `json:"notification_id"`
	UserID         string            `json:"user_id"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	ActionURL      string            `json:"action_url"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

func notificationPayload(n *notification.Notification) ([]byte, error) {
	return json.Marshal(notificationEvent{
		NotificationID: n.ID.String(),
		UserID:         n.UserID.String(),
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		ActionURL:      n.ActionURL,
		Metadata:       n.Metadata,
		CreatedAt:      n.CreatedAt,
	})
}

func newOutboxEntry(leaseID domain.LeaseID, typ notification.Type, payload []byte, at time.Time) *outbox.Entry {
	return outbox.NewEntry("lease", leaseID.String(), string(typ), payload, at)
}
