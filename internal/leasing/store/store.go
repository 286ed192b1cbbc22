// Package store provides persistence for the lease signing aggregate.
package store

import (
	"context"
	"time"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/models"
	"leasegate/internal/notification"
	"leasegate/internal/notification/outbox"
	"leasegate/pkg/domain"
)

// Store is the persistence interface for the signing flow. Signature writes
// are conditional: they fail with sentinel.ErrConflict when the party has
// already signed, so a lost race surfaces as a conflict instead of a silent
// overwrite.
//
// Error contract:
// - FindLease returns sentinel.ErrNotFound for unknown IDs.
// - MarkLandlordSigned and MarkTenantSigned return sentinel.ErrNotFound for
//   unknown IDs, sentinel.ErrInvalidState when the lease status does not
//   accept signatures, and sentinel.ErrConflict when already signed.
// - ActivateLease returns sentinel.ErrInvalidState when the lifecycle does
//   not allow the transition.
// - List methods return empty slices, never ErrNotFound.
type Store interface {
	// FindLease loads the full aggregate: lease, unit, property, tenants.
	FindLease(ctx context.Context, id domain.LeaseID) (*models.Lease, error)

	// MarkLandlordSigned records the landlord signature. A draft lease moves
	// to pending_signature; tenant signatures never change the status.
	MarkLandlordSigned(ctx context.Context, id domain.LeaseID, signature string, at time.Time) error

	// MarkTenantSigned records one tenant party's signature.
	MarkTenantSigned(ctx context.Context, id domain.LeaseID, tenantID domain.LeaseTenantID, signature string, at time.Time) error

	// ActivateLease moves the lease to active and stamps AllTenantsSignedAt.
	ActivateLease(ctx context.Context, id domain.LeaseID, at time.Time) error

	// SetUnitStatus updates a unit's occupancy state.
	SetUnitStatus(ctx context.Context, id domain.UnitID, status models.UnitStatus) error

	// ListAwaitingLandlord returns signable leases owned by the landlord that
	// still lack the landlord signature.
	ListAwaitingLandlord(ctx context.Context, landlordUserID domain.UserID) ([]*models.Lease, error)

	// ListAwaitingTenant returns signable leases on which the user is an
	// unsigned tenant party.
	ListAwaitingTenant(ctx context.Context, tenantUserID domain.UserID) ([]*models.Lease, error)

	// AppendActivity, CreateNotification and AppendOutbox write the side
	// records of a signing action. Inside RunInTx they commit or roll back
	// with the signature itself.
	AppendActivity(ctx context.Context, entry *activity.Entry) error
	CreateNotification(ctx context.Context, n *notification.Notification) error
	AppendOutbox(ctx context.Context, entry *outbox.Entry) error
}

// StoreTx runs a function against a transactional view of the store. All
// writes inside fn commit together or not at all, and concurrent transactions
// on the same lease are serialized.
type StoreTx interface {
	RunInTx(ctx context.Context, id domain.LeaseID, fn func(Store) error) error
}
