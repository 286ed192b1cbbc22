// Package service implements the lease signing workflow: serving the signing
// view, recording signatures, activating fully signed leases, and nudging
// parties that have not signed yet.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/metrics"
	"leasegate/internal/leasing/models"
	"leasegate/internal/leasing/store"
	"leasegate/internal/notification"
	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
	"leasegate/pkg/sentinel"
)

// Service coordinates lease signing. All operations take the authenticated
// caller explicitly; access is decided against the lease's own relations, not
// the caller's role.
type Service struct {
	store    store.Store
	txRunner store.StoreTx
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the signing service.
func New(st store.Store, txRunner store.StoreTx, opts ...Option) *Service {
	s := &Service{
		store:    st,
		txRunner: txRunner,
		logger:   slog.Default(),
		tracer:   otel.Tracer("leasegate/leasing"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetLeaseForSigning loads the signing view for a party. Admins may view any
// lease but are never a signing party, so their view always has CanSign
// false.
func (s *Service) GetLeaseForSigning(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID) (*models.SigningView, error) {
	ctx, span := s.tracer.Start(ctx, "leasing.GetLeaseForSigning",
		trace.WithAttributes(attribute.String("lease.id", leaseID.String())))
	defer span.End()

	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if leaseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "lease ID is required")
	}

	lease, err := s.store.FindLease(ctx, leaseID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "lease not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lease")
	}

	party, ok := models.ResolveSigningParty(lease, caller)
	if !ok && caller.Role != domain.RoleAdmin {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "you do not have access to this lease")
	}
	if !lease.Status.ViewableForSigning() {
		return nil, dErrors.New(dErrors.CodeNotAvailable, fmt.Sprintf("lease is %s and cannot be viewed for signing", lease.Status))
	}

	if !ok {
		return &models.SigningView{
			Lease:    lease,
			Progress: lease.SigningProgress(),
		}, nil
	}
	return models.NewSigningView(lease, party), nil
}

// PendingSignatures lists the leases still awaiting the caller's signature.
// A user can be landlord on some properties and tenant on others; both sides
// are merged.
func (s *Service) PendingSignatures(ctx context.Context, caller domain.Caller) ([]*models.PendingLease, error) {
	ctx, span := s.tracer.Start(ctx, "leasing.PendingSignatures")
	defer span.End()

	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	asLandlord, err := s.store.ListAwaitingLandlord(ctx, caller.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending signatures")
	}
	asTenant, err := s.store.ListAwaitingTenant(ctx, caller.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending signatures")
	}

	out := make([]*models.PendingLease, 0, len(asLandlord)+len(asTenant))
	for _, lease := range append(asLandlord, asTenant...) {
		out = append(out, &models.PendingLease{
			Lease:    lease,
			Progress: lease.SigningProgress(),
		})
	}
	return out, nil
}

// ResendInvitation re-notifies every unsigned tenant on a lease. Only the
// landlord may trigger it.
func (s *Service) ResendInvitation(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID) (*models.ResendResult, error) {
	ctx, span := s.tracer.Start(ctx, "leasing.ResendInvitation",
		trace.WithAttributes(attribute.String("lease.id", leaseID.String())))
	defer span.End()

	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if leaseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "lease ID is required")
	}

	now := s.now().UTC()
	var result models.ResendResult

	err := s.txRunner.RunInTx(ctx, leaseID, func(tx store.Store) error {
		lease, err := tx.FindLease(ctx, leaseID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "lease not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lease")
		}
		if !lease.OwnedBy(caller.UserID) {
			return dErrors.New(dErrors.CodeUnauthorized, "only the landlord can send signing reminders")
		}
		if !lease.Status.Signable() {
			return dErrors.New(dErrors.CodeNotAvailable, fmt.Sprintf("lease is %s and cannot accept signatures", lease.Status))
		}

		// Every unsigned party gets a reminder, the landlord included; a
		// landlord who has not signed yet sees it on their own dashboard.
		var unsigned []domain.UserID
		if lease.LandlordSignedAt == nil {
			unsigned = append(unsigned, lease.Property.LandlordUserID)
		}
		for _, tenant := range lease.Tenants {
			if !tenant.HasSigned() {
				unsigned = append(unsigned, tenant.UserID)
			}
		}

		for _, userID := range unsigned {
			if err := s.notify(ctx, tx, lease, userID, notification.TypeSigningReminder,
				"Signature reminder",
				fmt.Sprintf("Your signature is still needed for unit %s at %s.", lease.Unit.UnitNumber, lease.Property.Name),
				now,
			); err != nil {
				return err
			}
			result.Reminded++
		}

		if result.Reminded == 0 {
			return nil
		}
		entry := activity.NewEntry(caller.UserID, activity.ActionSigningReminder, activity.EntityLease, leaseID.String(),
			fmt.Sprintf("Sent %d signing reminder(s)", result.Reminded), activity.Meta{}, now)
		if err := tx.AppendActivity(ctx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activity")
		}
		return nil
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "lease not found")
	}
	if err != nil {
		return nil, err
	}

	if result.Reminded == 0 {
		result.Message = "All parties have already signed."
	} else {
		result.Message = fmt.Sprintf("Reminder sent to %d signer(s).", result.Reminded)
	}

	s.logger.InfoContext(ctx, "signing reminders sent",
		"lease_id", leaseID,
		"reminded", result.Reminded,
	)
	return &result, nil
}

// notify writes the in-app notification row and mirrors it to the outbox in
// the same transaction.
func (s *Service) notify(ctx context.Context, tx store.Store, lease *models.Lease, userID domain.UserID, typ notification.Type, title, message string, at time.Time) error {
	n, err := notification.New(userID, typ, title, message,
		"/leases/"+lease.ID.String()+"/signing",
		map[string]string{"lease_id": lease.ID.String()},
		at,
	)
	if err != nil {
		return err
	}
	if err := tx.CreateNotification(ctx, n); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create notification")
	}

	payload, err := notificationPayload(n)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode notification event")
	}
	if err := tx.AppendOutbox(ctx, newOutboxEntry(lease.ID, typ, payload, at)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append outbox entry")
	}
	return nil
}
