package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/models"
	"leasegate/internal/notification"
	"leasegate/internal/notification/outbox"
	"leasegate/pkg/domain"
	"leasegate/pkg/sentinel"
)

// InMemoryStore keeps lease aggregates in memory for dev mode and tests. The
// side-record stores are injected so the same notification and activity
// stores back both this store and their own HTTP surfaces.
type InMemoryStore struct {
	mu            sync.RWMutex
	leases        map[domain.LeaseID]*models.Lease
	activities    activity.Store
	notifications notification.Store
	outbox        outbox.Store
}

// NewInMemoryStore constructs an empty in-memory lease store.
func NewInMemoryStore(activities activity.Store, notifications notification.Store, ob outbox.Store) *InMemoryStore {
	return &InMemoryStore{
		leases:        make(map[domain.LeaseID]*models.Lease),
		activities:    activities,
		notifications: notifications,
		outbox:        ob,
	}
}

// AddLease seeds a lease aggregate. Intended for the seeder and tests.
func (s *InMemoryStore) AddLease(lease *models.Lease) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leases[lease.ID] = lease.Clone()
}

func (s *InMemoryStore) FindLease(_ context.Context, id domain.LeaseID) (*models.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lease, ok := s.leases[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return lease.Clone(), nil
}

func (s *InMemoryStore) MarkLandlordSigned(_ context.Context, id domain.LeaseID, signature string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease, ok := s.leases[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !lease.Status.Signable() {
		return sentinel.ErrInvalidState
	}
	if lease.LandlordSignedAt != nil {
		return sentinel.ErrConflict
	}

	signedAt := at
	lease.LandlordSignedAt = &signedAt
	lease.LandlordSignature = signature
	if lease.Status == models.StatusDraft {
		lease.Status = models.StatusPendingSignature
	}
	lease.UpdatedAt = at
	return nil
}

func (s *InMemoryStore) MarkTenantSigned(_ context.Context, id domain.LeaseID, tenantID domain.LeaseTenantID, signature string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease, ok := s.leases[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !lease.Status.Signable() {
		return sentinel.ErrInvalidState
	}

	for _, tenant := range lease.Tenants {
		if tenant.ID != tenantID {
			continue
		}
		if tenant.SignedAt != nil {
			return sentinel.ErrConflict
		}
		signedAt := at
		tenant.SignedAt = &signedAt
		tenant.Signature = signature
		lease.UpdatedAt = at
		return nil
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) ActivateLease(_ context.Context, id domain.LeaseID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease, ok := s.leases[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !lease.Status.CanTransitionTo(models.StatusActive) {
		return sentinel.ErrInvalidState
	}

	signedAt := at
	lease.Status = models.StatusActive
	lease.AllTenantsSignedAt = &signedAt
	lease.UpdatedAt = at
	return nil
}

func (s *InMemoryStore) SetUnitStatus(_ context.Context, id domain.UnitID, status models.UnitStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The unit is embedded in each aggregate, so every lease sharing the unit
	// carries its own copy to update.
	found := false
	for _, lease := range s.leases {
		if lease.Unit.ID == id {
			lease.Unit.Status = status
			found = true
		}
	}
	if !found {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *InMemoryStore) ListAwaitingLandlord(_ context.Context, landlordUserID domain.UserID) ([]*models.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Lease
	for _, lease := range s.leases {
		if lease.Property.LandlordUserID == landlordUserID &&
			lease.Status.Signable() &&
			lease.LandlordSignedAt == nil {
			out = append(out, lease.Clone())
		}
	}
	sortLeases(out)
	return out, nil
}

func (s *InMemoryStore) ListAwaitingTenant(_ context.Context, tenantUserID domain.UserID) ([]*models.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Lease
	for _, lease := range s.leases {
		if !lease.Status.Signable() {
			continue
		}
		tenant := lease.TenantByUser(tenantUserID)
		if tenant != nil && tenant.SignedAt == nil {
			out = append(out, lease.Clone())
		}
	}
	sortLeases(out)
	return out, nil
}

func (s *InMemoryStore) AppendActivity(ctx context.Context, entry *activity.Entry) error {
	return s.activities.Append(ctx, entry)
}

func (s *InMemoryStore) CreateNotification(ctx context.Context, n *notification.Notification) error {
	return s.notifications.Create(ctx, n)
}

func (s *InMemoryStore) AppendOutbox(ctx context.Context, entry *outbox.Entry) error {
	return s.outbox.Append(ctx, entry)
}

// Map iteration order is random; pending lists need a stable order for
// pagination-free clients.
func sortLeases(leases []*models.Lease) {
	sort.Slice(leases, func(i, j int) bool {
		if leases[i].CreatedAt.Equal(leases[j].CreatedAt) {
			return leases[i].ID.String() < leases[j].ID.String()
		}
		return leases[i].CreatedAt.Before(leases[j].CreatedAt)
	})
}
