package activity

import (
	"context"
	"sync"
)

// InMemoryStore keeps activity entries in memory for dev mode and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewInMemoryStore constructs an empty in-memory activity store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	// Newest first.
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID.String() != userID {
			continue
		}
		copied := *s.entries[i]
		out = append(out, &copied)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListByEntity(_ context.Context, entityType, entityID string) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for _, e := range s.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Len reports the number of stored entries. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
