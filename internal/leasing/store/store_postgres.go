package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/models"
	"leasegate/internal/notification"
	"leasegate/internal/notification/outbox"
	"leasegate/pkg/domain"
	"leasegate/pkg/sentinel"
)

// PostgresStore persists lease aggregates in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
	tx *sql.Tx

	activities    activity.Store
	notifications notification.Store
	outbox        outbox.Store
}

// NewPostgres constructs a PostgreSQL-backed lease store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:            db,
		activities:    activity.NewPostgres(db),
		notifications: notification.NewPostgres(db),
		outbox:        outbox.NewPostgres(db),
	}
}

// NewPostgresTx constructs a lease store bound to a transaction. The side
// record stores share the same transaction, so a rollback takes the activity
// entry, notification rows and outbox entries with it.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{
		tx:            tx,
		activities:    activity.NewPostgresTx(tx),
		notifications: notification.NewPostgresTx(tx),
		outbox:        outbox.NewPostgresTx(tx),
	}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *PostgresStore) FindLease(ctx context.Context, id domain.LeaseID) (*models.Lease, error) {
	const leaseQuery = `
		SELECT l.id, l.status, l.rent_cents, l.deposit_cents, l.start_date, l.end_date,
		       l.landlord_signed_at, l.landlord_signature, l.all_tenants_signed_at,
		       l.created_at, l.updated_at,
		       u.id, u.property_id, u.unit_number, u.status,
		       p.id, p.name, p.address, p.landlord_user_id, p.landlord_name
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE l.id = $1
	`
	var (
		lease      models.Lease
		leaseID    uuid.UUID
		unitID     uuid.UUID
		propertyID uuid.UUID
		unitProp   uuid.UUID
		landlordID uuid.UUID
		signature  sql.NullString
	)
	err := s.execer().QueryRowContext(ctx, leaseQuery, uuid.UUID(id)).Scan(
		&leaseID, &lease.Status, &lease.RentCents, &lease.DepositCents,
		&lease.StartDate, &lease.EndDate,
		&lease.LandlordSignedAt, &signature, &lease.AllTenantsSignedAt,
		&lease.CreatedAt, &lease.UpdatedAt,
		&unitID, &unitProp, &lease.Unit.UnitNumber, &lease.Unit.Status,
		&propertyID, &lease.Property.Name, &lease.Property.Address,
		&landlordID, &lease.Property.LandlordName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lease: %w", err)
	}
	lease.ID = domain.LeaseID(leaseID)
	lease.Unit.ID = domain.UnitID(unitID)
	lease.Unit.PropertyID = domain.PropertyID(unitProp)
	lease.Property.ID = domain.PropertyID(propertyID)
	lease.Property.LandlordUserID = domain.UserID(landlordID)
	lease.LandlordSignature = signature.String

	tenants, err := s.leaseTenants(ctx, id)
	if err != nil {
		return nil, err
	}
	lease.Tenants = tenants
	return &lease, nil
}

func (s *PostgresStore) leaseTenants(ctx context.Context, id domain.LeaseID) ([]*models.LeaseTenant, error) {
	const query = `
		SELECT lt.id, lt.user_id, lt.name, lt.is_primary, lt.signed_at, lt.signature
		FROM lease_tenants lt
		WHERE lt.lease_id = $1
		ORDER BY lt.is_primary DESC, lt.name ASC
	`
	rows, err := s.execer().QueryContext(ctx, query, uuid.UUID(id))
	if err != nil {
		return nil, fmt.Errorf("load lease tenants: %w", err)
	}
	defer rows.Close()

	var out []*models.LeaseTenant
	for rows.Next() {
		var (
			tenant    models.LeaseTenant
			tenantID  uuid.UUID
			userID    uuid.UUID
			signature sql.NullString
		)
		if err := rows.Scan(&tenantID, &userID, &tenant.Name, &tenant.IsPrimary, &tenant.SignedAt, &signature); err != nil {
			return nil, fmt.Errorf("scan lease tenant: %w", err)
		}
		tenant.ID = domain.LeaseTenantID(tenantID)
		tenant.UserID = domain.UserID(userID)
		tenant.Signature = signature.String
		out = append(out, &tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease tenants: %w", err)
	}
	return out, nil
}

// MarkLandlordSigned is a conditional update: the WHERE clause enforces the
// signable status and the not-yet-signed guard, so a lost race shows up as
// zero rows affected.
func (s *PostgresStore) MarkLandlordSigned(ctx context.Context, id domain.LeaseID, signature string, at time.Time) error {
	const query = `
		UPDATE leases
		SET landlord_signed_at = $2,
		    landlord_signature = $3,
		    status = CASE WHEN status = 'draft' THEN 'pending_signature' ELSE status END,
		    updated_at = $2
		WHERE id = $1
		  AND status IN ('draft', 'pending_signature')
		  AND landlord_signed_at IS NULL
	`
	res, err := s.execer().ExecContext(ctx, query, uuid.UUID(id), at, signature)
	if err != nil {
		return fmt.Errorf("mark landlord signed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark landlord signed: %w", err)
	}
	if affected == 0 {
		return s.classifySignFailure(ctx, id, func(l *models.Lease) bool { return l.LandlordSignedAt != nil })
	}
	return nil
}

func (s *PostgresStore) MarkTenantSigned(ctx context.Context, id domain.LeaseID, tenantID domain.LeaseTenantID, signature string, at time.Time) error {
	const query = `
		UPDATE lease_tenants lt
		SET signed_at = $3,
		    signature = $4
		FROM leases l
		WHERE lt.id = $2
		  AND lt.lease_id = $1
		  AND l.id = lt.lease_id
		  AND l.status IN ('draft', 'pending_signature')
		  AND lt.signed_at IS NULL
	`
	res, err := s.execer().ExecContext(ctx, query, uuid.UUID(id), uuid.UUID(tenantID), at, signature)
	if err != nil {
		return fmt.Errorf("mark tenant signed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark tenant signed: %w", err)
	}
	if affected == 0 {
		return s.classifySignFailure(ctx, id, func(l *models.Lease) bool {
			for _, t := range l.Tenants {
				if t.ID == tenantID {
					return t.SignedAt != nil
				}
			}
			return false
		})
	}

	const touch = `UPDATE leases SET updated_at = $2 WHERE id = $1`
	if _, err := s.execer().ExecContext(ctx, touch, uuid.UUID(id), at); err != nil {
		return fmt.Errorf("touch lease: %w", err)
	}
	return nil
}

// classifySignFailure re-reads the lease to report why a conditional
// signature update matched no rows.
func (s *PostgresStore) classifySignFailure(ctx context.Context, id domain.LeaseID, alreadySigned func(*models.Lease) bool) error {
	lease, err := s.FindLease(ctx, id)
	if err != nil {
		return err
	}
	if alreadySigned(lease) {
		return sentinel.ErrConflict
	}
	if !lease.Status.Signable() {
		return sentinel.ErrInvalidState
	}
	return sentinel.ErrNotFound
}

func (s *PostgresStore) ActivateLease(ctx context.Context, id domain.LeaseID, at time.Time) error {
	const query = `
		UPDATE leases
		SET status = 'active',
		    all_tenants_signed_at = $2,
		    updated_at = $2
		WHERE id = $1
		  AND status IN ('draft', 'pending_signature')
	`
	res, err := s.execer().ExecContext(ctx, query, uuid.UUID(id), at)
	if err != nil {
		return fmt.Errorf("activate lease: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate lease: %w", err)
	}
	if affected == 0 {
		if _, err := s.FindLease(ctx, id); errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *PostgresStore) SetUnitStatus(ctx context.Context, id domain.UnitID, status models.UnitStatus) error {
	const query = `UPDATE units SET status = $2 WHERE id = $1`
	res, err := s.execer().ExecContext(ctx, query, uuid.UUID(id), status)
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListAwaitingLandlord(ctx context.Context, landlordUserID domain.UserID) ([]*models.Lease, error) {
	const query = `
		SELECT l.id
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_user_id = $1
		  AND l.status IN ('draft', 'pending_signature')
		  AND l.landlord_signed_at IS NULL
		ORDER BY l.created_at ASC, l.id ASC
	`
	return s.listByQuery(ctx, query, uuid.UUID(landlordUserID))
}

func (s *PostgresStore) ListAwaitingTenant(ctx context.Context, tenantUserID domain.UserID) ([]*models.Lease, error) {
	const query = `
		SELECT l.id
		FROM leases l
		JOIN lease_tenants lt ON lt.lease_id = l.id
		WHERE lt.user_id = $1
		  AND l.status IN ('draft', 'pending_signature')
		  AND lt.signed_at IS NULL
		ORDER BY l.created_at ASC, l.id ASC
	`
	return s.listByQuery(ctx, query, uuid.UUID(tenantUserID))
}

func (s *PostgresStore) listByQuery(ctx context.Context, query string, arg any) ([]*models.Lease, error) {
	rows, err := s.execer().QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	var ids []domain.LeaseID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan lease id: %w", err)
		}
		ids = append(ids, domain.LeaseID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease ids: %w", err)
	}

	out := make([]*models.Lease, 0, len(ids))
	for _, id := range ids {
		lease, err := s.FindLease(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, lease)
	}
	return out, nil
}

func (s *PostgresStore) AppendActivity(ctx context.Context, entry *activity.Entry) error {
	return s.activities.Append(ctx, entry)
}

func (s *PostgresStore) CreateNotification(ctx context.Context, n *notification.Notification) error {
	return s.notifications.Create(ctx, n)
}

func (s *PostgresStore) AppendOutbox(ctx context.Context, entry *outbox.Entry) error {
	return s.outbox.Append(ctx, entry)
}
