package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
	"leasegate/pkg/sentinel"
)

// Service exposes the read side of notifications to the API. Writes happen
// inside the signing transaction through the leasing store.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a notification Service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// List returns the caller's notifications, optionally only unread ones.
func (s *Service) List(ctx context.Context, caller domain.Caller, unreadOnly bool) ([]*Notification, error) {
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing caller identity")
	}
	out, err := s.store.ListByUser(ctx, caller.UserID.String(), unreadOnly)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return out, nil
}

// MarkRead marks one of the caller's notifications as read. Marking an
// already-read notification is a no-op.
func (s *Service) MarkRead(ctx context.Context, caller domain.Caller, id domain.NotificationID) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "missing caller identity")
	}
	if id.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "notification ID required")
	}
	err := s.store.MarkRead(ctx, id.String(), caller.UserID.String(), s.now())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "notification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notification read")
	}
	return nil
}

// UnreadCount returns the caller's unread notification count.
func (s *Service) UnreadCount(ctx context.Context, caller domain.Caller) (int, error) {
	if caller.IsZero() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "missing caller identity")
	}
	count, err := s.store.CountUnread(ctx, caller.UserID.String())
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count unread notifications")
	}
	return count, nil
}
