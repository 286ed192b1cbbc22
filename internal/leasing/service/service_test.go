package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/models"
	"leasegate/internal/leasing/store"
	"leasegate/internal/notification"
	"leasegate/internal/notification/outbox"
	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
	"leasegate/pkg/testutil"
)

type SigningServiceSuite struct {
	suite.Suite
	ctx           context.Context
	service       *Service
	leaseStore    *store.InMemoryStore
	activities    *activity.InMemoryStore
	notifications *notification.InMemoryStore
	outbox        *outbox.InMemoryStore
}

func TestSigningServiceSuite(t *testing.T) {
	suite.Run(t, new(SigningServiceSuite))
}

func (s *SigningServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.activities = activity.NewInMemoryStore()
	s.notifications = notification.NewInMemoryStore()
	s.outbox = outbox.NewInMemoryStore()
	s.leaseStore = store.NewInMemoryStore(s.activities, s.notifications, s.outbox)
	s.service = New(s.leaseStore, store.NewInMemoryTx(s.leaseStore))
}

func (s *SigningServiceSuite) seedLease(tenantCount int) *models.Lease {
	now := time.Now()
	lease := &models.Lease{
		ID:           domain.NewLeaseID(),
		Status:       models.StatusDraft,
		RentCents:    180000,
		DepositCents: 180000,
		StartDate:    now,
		EndDate:      now.AddDate(1, 0, 0),
		Unit: models.Unit{
			ID:         domain.NewUnitID(),
			UnitNumber: "12A",
			Status:     models.UnitVacant,
		},
		Property: models.Property{
			ID:             domain.NewPropertyID(),
			Name:           "Harbor View",
			Address:        "12 Quay Rd",
			LandlordUserID: domain.NewUserID(),
			LandlordName:   "Harbor View Ltd",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	lease.Unit.PropertyID = lease.Property.ID
	names := []string{"Ana Ruiz", "Ben Okafor", "Cleo Marsh"}
	for i := 0; i < tenantCount; i++ {
		lease.Tenants = append(lease.Tenants, &models.LeaseTenant{
			ID:        domain.NewLeaseTenantID(),
			UserID:    domain.NewUserID(),
			Name:      names[i%len(names)],
			IsPrimary: i == 0,
		})
	}
	s.leaseStore.AddLease(lease)
	return lease
}

func landlordCaller(lease *models.Lease) domain.Caller {
	return domain.Caller{UserID: lease.Property.LandlordUserID, Role: domain.RoleLandlord}
}

func tenantCaller(lease *models.Lease, idx int) domain.Caller {
	return domain.Caller{UserID: lease.Tenants[idx].UserID, Role: domain.RoleTenant}
}

func signReq() models.SignRequest {
	return models.SignRequest{
		Signature:     "data:image/png;base64,c2lnbmF0dXJl",
		AgreedToTerms: true,
		IPAddress:     "203.0.113.9",
		UserAgent:     "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
	}
}

func (s *SigningServiceSuite) notificationsFor(userID domain.UserID) []*notification.Notification {
	list, err := s.notifications.ListByUser(s.ctx, userID.String(), false)
	s.Require().NoError(err)
	return list
}

func (s *SigningServiceSuite) activityFor(lease *models.Lease) []*activity.Entry {
	entries, err := s.activities.ListByEntity(s.ctx, activity.EntityLease, lease.ID.String())
	s.Require().NoError(err)
	return entries
}

// Single tenant signs first: the status stays put until the landlord signs,
// and the landlord's signature then completes and activates the lease.
func (s *SigningServiceSuite) TestTenantSignsFirstThenLandlordActivates() {
	lease := s.seedLease(1)
	tenant := tenantCaller(lease, 0)
	landlord := landlordCaller(lease)

	result, err := s.service.Sign(s.ctx, tenant, lease.ID, signReq())
	s.Require().NoError(err)
	s.False(result.Completed)
	s.Equal(msgSignatureRecorded, result.Message)
	s.Equal(models.StatusDraft, result.Lease.Status, "tenant signature alone must not move the status")
	s.Require().NotNil(result.Lease.Tenants[0].SignedAt)

	// The landlord is told a signature arrived.
	landlordNotes := s.notificationsFor(landlord.UserID)
	s.Require().Len(landlordNotes, 1)
	s.Equal(notification.TypeLeaseSigned, landlordNotes[0].Type)

	result, err = s.service.Sign(s.ctx, landlord, lease.ID, signReq())
	s.Require().NoError(err)
	s.True(result.Completed)
	s.Equal(msgLeaseActivated, result.Message)
	s.Equal(models.StatusActive, result.Lease.Status)
	s.Require().NotNil(result.Lease.AllTenantsSignedAt)
	s.Equal(models.UnitOccupied, result.Lease.Unit.Status)

	// Both parties heard about the activation.
	for _, userID := range []domain.UserID{landlord.UserID, tenant.UserID} {
		var activated int
		for _, n := range s.notificationsFor(userID) {
			if n.Type == notification.TypeLeaseActivated {
				activated++
			}
		}
		s.Equal(1, activated, "each party gets exactly one activation notification")
	}
}

// Two tenants, landlord first: landlord signing moves draft to
// pending_signature and notifies both tenants; the lease activates only after
// the second tenant.
func (s *SigningServiceSuite) TestLandlordSignsFirstThenTenantsComplete() {
	lease := s.seedLease(2)
	landlord := landlordCaller(lease)

	result, err := s.service.Sign(s.ctx, landlord, lease.ID, signReq())
	s.Require().NoError(err)
	s.False(result.Completed)
	s.Equal(models.StatusPendingSignature, result.Lease.Status)
	s.Require().NotNil(result.Lease.LandlordSignedAt)

	for i := range lease.Tenants {
		notes := s.notificationsFor(lease.Tenants[i].UserID)
		s.Require().Len(notes, 1)
		s.Equal(notification.TypeSignatureRequired, notes[0].Type)
	}

	result, err = s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, signReq())
	s.Require().NoError(err)
	s.False(result.Completed)
	s.Equal(models.StatusPendingSignature, result.Lease.Status)

	result, err = s.service.Sign(s.ctx, tenantCaller(lease, 1), lease.ID, signReq())
	s.Require().NoError(err)
	s.True(result.Completed)
	s.Equal(models.StatusActive, result.Lease.Status)
	s.Equal(models.UnitOccupied, result.Lease.Unit.Status)
}

// A landlord signature asks the remaining tenants for theirs; a tenant who
// already signed is informed, not asked again.
func (s *SigningServiceSuite) TestLandlordSignatureAsksOnlyUnsignedTenants() {
	lease := s.seedLease(2)

	_, err := s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, signReq())
	s.Require().NoError(err)

	_, err = s.service.Sign(s.ctx, landlordCaller(lease), lease.ID, signReq())
	s.Require().NoError(err)

	byType := func(userID domain.UserID) map[notification.Type]int {
		counts := make(map[notification.Type]int)
		for _, n := range s.notificationsFor(userID) {
			counts[n.Type]++
		}
		return counts
	}

	signedTenant := byType(lease.Tenants[0].UserID)
	s.Equal(0, signedTenant[notification.TypeSignatureRequired], "a tenant who signed is not asked again")
	s.Equal(1, signedTenant[notification.TypeLeaseSigned])

	unsignedTenant := byType(lease.Tenants[1].UserID)
	s.Equal(1, unsignedTenant[notification.TypeSignatureRequired], "the outstanding tenant is asked to sign")
	s.Equal(1, unsignedTenant[notification.TypeLeaseSigned], "the first tenant's signature was announced")
}

func (s *SigningServiceSuite) TestSignActiveLeaseNotAvailable() {
	lease := s.seedLease(1)
	s.Require().NoError(s.leaseStore.MarkLandlordSigned(s.ctx, lease.ID, "sig", time.Now()))
	s.Require().NoError(s.leaseStore.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "sig", time.Now()))
	s.Require().NoError(s.leaseStore.ActivateLease(s.ctx, lease.ID, time.Now()))

	before, err := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)

	_, err = s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, signReq())
	s.True(dErrors.HasCode(err, dErrors.CodeNotAvailable))

	after, err := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	s.Equal(before, after, "a rejected sign attempt must not change state")
}

func (s *SigningServiceSuite) TestSignWithoutAcceptingTerms() {
	lease := s.seedLease(1)
	req := signReq()
	req.AgreedToTerms = false

	_, err := s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, req)
	s.True(dErrors.HasCode(err, dErrors.CodeTermsNotAccepted))

	found, findErr := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(findErr)
	s.Nil(found.Tenants[0].SignedAt)
	s.Empty(s.activityFor(lease))
}

func (s *SigningServiceSuite) TestSignTwiceAlreadySigned() {
	lease := s.seedLease(2)
	tenant := tenantCaller(lease, 0)

	_, err := s.service.Sign(s.ctx, tenant, lease.ID, signReq())
	s.Require().NoError(err)

	notesBefore := len(s.notificationsFor(lease.Property.LandlordUserID))
	activityBefore := len(s.activityFor(lease))

	_, err = s.service.Sign(s.ctx, tenant, lease.ID, signReq())
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadySigned))

	// The rejected attempt leaves no trace.
	s.Len(s.notificationsFor(lease.Property.LandlordUserID), notesBefore)
	s.Len(s.activityFor(lease), activityBefore)

	found, err := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	s.Equal(1, found.CompletedSignatures())
}

func (s *SigningServiceSuite) TestSignUnknownLease() {
	s.seedLease(1)
	_, err := s.service.Sign(s.ctx, domain.Caller{UserID: domain.NewUserID(), Role: domain.RoleTenant}, domain.NewLeaseID(), signReq())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *SigningServiceSuite) TestStrangerIsUnauthorizedEverywhere() {
	lease := s.seedLease(1)
	stranger := domain.Caller{UserID: domain.NewUserID(), Role: domain.RoleTenant}

	_, err := s.service.Sign(s.ctx, stranger, lease.ID, signReq())
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.GetLeaseForSigning(s.ctx, stranger, lease.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.ResendInvitation(s.ctx, stranger, lease.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *SigningServiceSuite) TestSignRequiresSignaturePayload() {
	lease := s.seedLease(1)
	req := signReq()
	req.Signature = "   "

	_, err := s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, req)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *SigningServiceSuite) TestSignRecordsAuditTrail() {
	lease := s.seedLease(1)

	_, err := s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, signReq())
	s.Require().NoError(err)

	entries := s.activityFor(lease)
	s.Require().Len(entries, 1)
	s.Equal(activity.ActionLeaseSigned, entries[0].Action)
	s.Equal("203.0.113.9", entries[0].IPAddress)
	s.Contains(entries[0].Device, "Chrome")

	_, err = s.service.Sign(s.ctx, landlordCaller(lease), lease.ID, signReq())
	s.Require().NoError(err)

	entries = s.activityFor(lease)
	s.Require().Len(entries, 3)

	var actions []string
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	s.ElementsMatch(actions, []string{activity.ActionLeaseSigned, activity.ActionLeaseSigned, activity.ActionLeaseActivated})

	// Activation is attributed to the signer who completed the set.
	for _, e := range entries {
		if e.Action == activity.ActionLeaseActivated {
			s.Equal(lease.Property.LandlordUserID, e.UserID)
		}
	}
}

func (s *SigningServiceSuite) TestSignMirrorsNotificationsToOutbox() {
	lease := s.seedLease(1)

	_, err := s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, signReq())
	s.Require().NoError(err)

	pending, err := s.outbox.CountPending(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, pending, "one outbox entry per notification row")

	_, err = s.service.Sign(s.ctx, landlordCaller(lease), lease.ID, signReq())
	s.Require().NoError(err)

	// Landlord sign adds one lease_signed note plus two activation notes.
	pending, err = s.outbox.CountPending(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(4, pending)
}

func (s *SigningServiceSuite) TestGetLeaseForSigningView() {
	lease := s.seedLease(2)
	tenant := tenantCaller(lease, 0)

	view, err := s.service.GetLeaseForSigning(s.ctx, tenant, lease.ID)
	s.Require().NoError(err)
	s.True(view.CanSign)
	s.False(view.HasSigned)
	s.Equal(0, view.Progress.Completed)
	s.Equal(3, view.Progress.Required)

	_, err = s.service.Sign(s.ctx, tenant, lease.ID, signReq())
	s.Require().NoError(err)

	view, err = s.service.GetLeaseForSigning(s.ctx, tenant, lease.ID)
	s.Require().NoError(err)
	s.False(view.CanSign)
	s.True(view.HasSigned)
	s.NotNil(view.SignedAt)
	s.Equal(1, view.Progress.Completed)
	s.Equal(33, view.Progress.Percent)
}

func (s *SigningServiceSuite) TestGetLeaseForSigningAdmin() {
	lease := s.seedLease(1)
	admin := domain.Caller{UserID: domain.NewUserID(), Role: domain.RoleAdmin}

	view, err := s.service.GetLeaseForSigning(s.ctx, admin, lease.ID)
	s.Require().NoError(err)
	s.False(view.CanSign)
	s.False(view.HasSigned)
}

func (s *SigningServiceSuite) TestGetLeaseForSigningTerminatedNotAvailable() {
	lease := s.seedLease(1)
	terminated, err := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	terminated.Status = models.StatusTerminated
	s.leaseStore.AddLease(terminated)

	_, err = s.service.GetLeaseForSigning(s.ctx, tenantCaller(lease, 0), lease.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotAvailable))
}

// A landlord with one fully signed lease and one still missing their own
// signature sees only the latter.
func (s *SigningServiceSuite) TestPendingSignaturesFiltersSignedLeases() {
	signed := s.seedLease(1)
	waiting := s.seedLease(1)
	// Both properties belong to the same landlord.
	w, err := s.leaseStore.FindLease(s.ctx, waiting.ID)
	s.Require().NoError(err)
	w.Property.LandlordUserID = signed.Property.LandlordUserID
	s.leaseStore.AddLease(w)
	landlord := landlordCaller(signed)

	_, err = s.service.Sign(s.ctx, landlord, signed.ID, signReq())
	s.Require().NoError(err)
	_, err = s.service.Sign(s.ctx, tenantCaller(signed, 0), signed.ID, signReq())
	s.Require().NoError(err)

	pending, err := s.service.PendingSignatures(s.ctx, landlord)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(waiting.ID, pending[0].Lease.ID)
	s.Equal(0, pending[0].Progress.Completed)
}

func (s *SigningServiceSuite) TestPendingSignaturesForTenant() {
	lease := s.seedLease(2)
	tenant := tenantCaller(lease, 0)

	pending, err := s.service.PendingSignatures(s.ctx, tenant)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)

	_, err = s.service.Sign(s.ctx, tenant, lease.ID, signReq())
	s.Require().NoError(err)

	pending, err = s.service.PendingSignatures(s.ctx, tenant)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *SigningServiceSuite) TestPendingSignaturesOtherRolesEmpty() {
	s.seedLease(1)
	vendor := domain.Caller{UserID: domain.NewUserID(), Role: domain.RoleVendor}

	pending, err := s.service.PendingSignatures(s.ctx, vendor)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *SigningServiceSuite) TestResendInvitationRemindsUnsignedParties() {
	lease := s.seedLease(2)
	landlord := landlordCaller(lease)

	_, err := s.service.Sign(s.ctx, landlord, lease.ID, signReq())
	s.Require().NoError(err)
	_, err = s.service.Sign(s.ctx, tenantCaller(lease, 0), lease.ID, signReq())
	s.Require().NoError(err)

	result, err := s.service.ResendInvitation(s.ctx, landlord, lease.ID)
	s.Require().NoError(err)
	s.Equal(1, result.Reminded, "only the unsigned tenant is reminded")

	notes := s.notificationsFor(lease.Tenants[1].UserID)
	var reminders int
	for _, n := range notes {
		if n.Type == notification.TypeSigningReminder {
			reminders++
		}
	}
	s.Equal(1, reminders)

	// Repeated calls keep producing reminders; there is no sent-once guard.
	result, err = s.service.ResendInvitation(s.ctx, landlord, lease.ID)
	s.Require().NoError(err)
	s.Equal(1, result.Reminded)
}

func (s *SigningServiceSuite) TestResendInvitationIncludesUnsignedLandlord() {
	lease := s.seedLease(1)
	landlord := landlordCaller(lease)

	result, err := s.service.ResendInvitation(s.ctx, landlord, lease.ID)
	s.Require().NoError(err)
	s.Equal(2, result.Reminded)
}

func (s *SigningServiceSuite) TestConcurrentDuplicateSignExactlyOnce() {
	lease := s.seedLease(1)
	tenant := tenantCaller(lease, 0)

	res := testutil.RunConcurrent(16, func(int) error {
		_, err := s.service.Sign(s.ctx, tenant, lease.ID, signReq())
		return err
	})

	assert.EqualValues(s.T(), 1, res.Successes)
	assert.EqualValues(s.T(), 15, res.AlreadySigned)
	assert.Zero(s.T(), res.Errors)

	found, err := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	s.Equal(1, found.CompletedSignatures())
	s.Len(s.activityFor(lease), 1)
}

// The last two missing signatures race: both are recorded and exactly one
// activation side-effect sequence runs.
func (s *SigningServiceSuite) TestConcurrentCompletionActivatesOnce() {
	lease := s.seedLease(1)
	landlord := landlordCaller(lease)
	tenant := tenantCaller(lease, 0)
	callers := []domain.Caller{landlord, tenant}

	res := testutil.RunConcurrent(2, func(idx int) error {
		_, err := s.service.Sign(s.ctx, callers[idx], lease.ID, signReq())
		return err
	})

	assert.EqualValues(s.T(), 2, res.Successes)
	assert.Zero(s.T(), res.AlreadySigned)
	assert.Zero(s.T(), res.Errors)

	found, err := s.leaseStore.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusActive, found.Status)
	s.NotNil(found.AllTenantsSignedAt)
	s.Equal(models.UnitOccupied, found.Unit.Status)

	var activations int
	for _, e := range s.activityFor(lease) {
		if e.Action == activity.ActionLeaseActivated {
			activations++
		}
	}
	s.Equal(1, activations)

	var activatedNotes int
	for _, userID := range []domain.UserID{landlord.UserID, tenant.UserID} {
		for _, n := range s.notificationsFor(userID) {
			if n.Type == notification.TypeLeaseActivated {
				activatedNotes++
			}
		}
	}
	s.Equal(2, activatedNotes)
}

func (s *SigningServiceSuite) TestZeroCallerUnauthorized() {
	lease := s.seedLease(1)

	_, err := s.service.Sign(s.ctx, domain.Caller{}, lease.ID, signReq())
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.GetLeaseForSigning(s.ctx, domain.Caller{}, lease.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.PendingSignatures(s.ctx, domain.Caller{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
