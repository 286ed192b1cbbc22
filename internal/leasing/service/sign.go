package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/models"
	"leasegate/internal/leasing/store"
	"leasegate/internal/notification"
	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
	"leasegate/pkg/sentinel"
)

const (
	msgSignatureRecorded = "Signature recorded. Waiting for remaining signatures."
	msgLeaseActivated    = "All parties have signed. The lease is now active."
)

// Sign records the caller's signature on a lease. The signature, its activity
// entry, the counterparty notifications, and (for the final signature) the
// activation all commit in one transaction; concurrent attempts on the same
// lease are serialized, so exactly one caller records the final signature and
// performs the activation.
func (s *Service) Sign(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID, req models.SignRequest) (*models.SignResult, error) {
	ctx, span := s.tracer.Start(ctx, "leasing.Sign",
		trace.WithAttributes(attribute.String("lease.id", leaseID.String())))
	defer span.End()

	start := s.now()
	result, err := s.sign(ctx, caller, leaseID, req)
	s.metrics.ObserveSignLatency(s.now().Sub(start))
	if err != nil {
		s.recordSignFailure(err)
		return nil, err
	}
	return result, nil
}

func (s *Service) sign(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID, req models.SignRequest) (*models.SignResult, error) {
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if leaseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "lease ID is required")
	}
	// Terms acceptance is checked before touching the lease at all; declining
	// the terms is not a reason to reveal whether the lease exists.
	if !req.AgreedToTerms {
		return nil, dErrors.New(dErrors.CodeTermsNotAccepted, "you must accept the lease terms before signing")
	}
	if strings.TrimSpace(req.Signature) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "signature is required")
	}

	now := s.now().UTC()
	var (
		result    models.SignResult
		partyKind models.PartyKind
	)

	err := s.txRunner.RunInTx(ctx, leaseID, func(tx store.Store) error {
		lease, err := tx.FindLease(ctx, leaseID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "lease not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lease")
		}

		party, ok := models.ResolveSigningParty(lease, caller)
		if !ok {
			return dErrors.New(dErrors.CodeUnauthorized, "you are not a signing party on this lease")
		}
		if !lease.Status.Signable() {
			return dErrors.New(dErrors.CodeNotAvailable, fmt.Sprintf("lease is %s and cannot accept signatures", lease.Status))
		}
		if party.HasSigned(lease) {
			return dErrors.New(dErrors.CodeAlreadySigned, "you have already signed this lease")
		}
		partyKind = party.Kind

		if err := s.recordSignature(ctx, tx, lease, party, req.Signature, now); err != nil {
			return err
		}

		meta := activity.Meta{IPAddress: req.IPAddress, UserAgent: req.UserAgent}
		entry := activity.NewEntry(caller.UserID, activity.ActionLeaseSigned, activity.EntityLease, leaseID.String(),
			fmt.Sprintf("Signed as %s", party.Kind), meta, now)
		if err := tx.AppendActivity(ctx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activity")
		}

		if err := s.notifyCounterparties(ctx, tx, lease, caller, party, now); err != nil {
			return err
		}

		// Re-read to decide completion with this signature applied.
		signed, err := tx.FindLease(ctx, leaseID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reload lease")
		}

		if !signed.FullySigned() {
			result = models.SignResult{Lease: signed, Completed: false, Message: msgSignatureRecorded}
			return nil
		}

		if err := s.activate(ctx, tx, signed, caller, meta, now); err != nil {
			return err
		}

		activated, err := tx.FindLease(ctx, leaseID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reload lease")
		}
		result = models.SignResult{Lease: activated, Completed: true, Message: msgLeaseActivated}
		return nil
	})
	// The postgres runner reports a missing lease from its row lock, before
	// the callback ever runs.
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "lease not found")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "signing timed out")
	}
	if err != nil {
		return nil, err
	}

	// Count only committed signatures; a transaction that failed at commit
	// never happened.
	s.metrics.RecordSignature(string(partyKind))
	if result.Completed {
		s.metrics.RecordActivation()
	}

	s.logger.InfoContext(ctx, "lease signature recorded",
		"lease_id", leaseID,
		"user_id", caller.UserID,
		"completed", result.Completed,
	)
	return &result, nil
}

func (s *Service) recordSignature(ctx context.Context, tx store.Store, lease *models.Lease, party models.SigningParty, signature string, at time.Time) error {
	var err error
	if party.Kind == models.PartyLandlord {
		err = tx.MarkLandlordSigned(ctx, lease.ID, signature, at)
	} else {
		err = tx.MarkTenantSigned(ctx, lease.ID, party.Tenant.ID, signature, at)
	}
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeAlreadySigned, "you have already signed this lease")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeNotAvailable, "lease cannot accept signatures")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "lease not found")
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record signature")
	}
	return nil
}

// notifyCounterparties tells every other party about the new signature. The
// landlord signing is the tenants' cue to sign, so tenants who have not
// signed yet are asked for their signature rather than merely informed.
func (s *Service) notifyCounterparties(ctx context.Context, tx store.Store, lease *models.Lease, caller domain.Caller, party models.SigningParty, at time.Time) error {
	signerName := s.signerName(lease, caller)
	signedTitle := "Lease signed"
	signedMessage := fmt.Sprintf("%s signed the lease for unit %s at %s.", signerName, lease.Unit.UnitNumber, lease.Property.Name)

	if party.Kind != models.PartyLandlord {
		for _, userID := range s.counterparties(lease, caller.UserID) {
			if err := s.notify(ctx, tx, lease, userID, notification.TypeLeaseSigned, signedTitle, signedMessage, at); err != nil {
				return err
			}
		}
		return nil
	}

	requiredMessage := fmt.Sprintf("%s signed the lease for unit %s at %s. Your signature is now required.",
		signerName, lease.Unit.UnitNumber, lease.Property.Name)
	for _, tenant := range lease.Tenants {
		typ, title, message := notification.TypeSignatureRequired, "Signature required", requiredMessage
		if tenant.HasSigned() {
			typ, title, message = notification.TypeLeaseSigned, signedTitle, signedMessage
		}
		if err := s.notify(ctx, tx, lease, tenant.UserID, typ, title, message, at); err != nil {
			return err
		}
	}
	return nil
}

// activate moves the lease to active, marks the unit occupied, notifies all
// parties, and records a distinct activation entry attributed to the caller
// whose signature completed the set.
func (s *Service) activate(ctx context.Context, tx store.Store, lease *models.Lease, caller domain.Caller, meta activity.Meta, at time.Time) error {
	if err := tx.ActivateLease(ctx, lease.ID, at); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.New(dErrors.CodeNotAvailable, "lease cannot be activated")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to activate lease")
	}
	if err := tx.SetUnitStatus(ctx, lease.Unit.ID, models.UnitOccupied); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark unit occupied")
	}

	title := "Lease active"
	message := fmt.Sprintf("The lease for unit %s at %s is now active.", lease.Unit.UnitNumber, lease.Property.Name)
	for _, userID := range s.allParties(lease) {
		if err := s.notify(ctx, tx, lease, userID, notification.TypeLeaseActivated, title, message, at); err != nil {
			return err
		}
	}

	entry := activity.NewEntry(caller.UserID, activity.ActionLeaseActivated, activity.EntityLease, lease.ID.String(),
		"All signatures collected; lease activated", meta, at)
	if err := tx.AppendActivity(ctx, entry); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activity")
	}
	return nil
}

func (s *Service) counterparties(lease *models.Lease, signer domain.UserID) []domain.UserID {
	var out []domain.UserID
	for _, userID := range s.allParties(lease) {
		if userID != signer {
			out = append(out, userID)
		}
	}
	return out
}

func (s *Service) allParties(lease *models.Lease) []domain.UserID {
	out := []domain.UserID{lease.Property.LandlordUserID}
	for _, tenant := range lease.Tenants {
		out = append(out, tenant.UserID)
	}
	return out
}

func (s *Service) signerName(lease *models.Lease, caller domain.Caller) string {
	if lease.OwnedBy(caller.UserID) {
		if lease.Property.LandlordName != "" {
			return lease.Property.LandlordName
		}
		return "The landlord"
	}
	if tenant := lease.TenantByUser(caller.UserID); tenant != nil && tenant.Name != "" {
		return tenant.Name
	}
	return "A tenant"
}

func (s *Service) recordSignFailure(err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		s.metrics.RecordSignFailure(string(domainErr.Code))
		return
	}
	s.metrics.RecordSignFailure(string(dErrors.CodeInternal))
}
