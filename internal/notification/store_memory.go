package notification

import (
	"context"
	"maps"
	"sync"
	"time"

	"leasegate/pkg/sentinel"
)

// InMemoryStore keeps notifications in memory for dev mode and tests.
type InMemoryStore struct {
	mu            sync.RWMutex
	notifications []*Notification
}

// NewInMemoryStore constructs an empty in-memory notification store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Create(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, cloneNotification(n))
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Notification
	// Newest first.
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.UserID.String() != userID {
			continue
		}
		if unreadOnly && n.IsRead() {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	return out, nil
}

func (s *InMemoryStore) MarkRead(_ context.Context, id string, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.ID.String() != id || n.UserID.String() != userID {
			continue
		}
		if n.ReadAt == nil {
			readAt := at
			n.ReadAt = &readAt
		}
		return nil
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) CountUnread(_ context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID.String() == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

// Len reports the number of stored notifications. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notifications)
}

func cloneNotification(n *Notification) *Notification {
	copied := *n
	if n.Metadata != nil {
		copied.Metadata = maps.Clone(n.Metadata)
	}
	if n.ReadAt != nil {
		readAt := *n.ReadAt
		copied.ReadAt = &readAt
	}
	return &copied
}
