package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"leasegate/internal/activity"
	"leasegate/internal/leasing/models"
	"leasegate/internal/notification"
	"leasegate/internal/notification/outbox"
	"leasegate/pkg/domain"
	"leasegate/pkg/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	tx    *InMemoryTx
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore(
		activity.NewInMemoryStore(),
		notification.NewInMemoryStore(),
		outbox.NewInMemoryStore(),
	)
	s.tx = NewInMemoryTx(s.store)
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) seedLease(tenantCount int) *models.Lease {
	now := time.Now()
	lease := &models.Lease{
		ID:        domain.NewLeaseID(),
		Status:    models.StatusDraft,
		RentCents: 150000,
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
		Unit: models.Unit{
			ID:         domain.NewUnitID(),
			UnitNumber: "4B",
			Status:     models.UnitVacant,
		},
		Property: models.Property{
			ID:             domain.NewPropertyID(),
			Name:           "Maple Court",
			LandlordUserID: domain.NewUserID(),
			LandlordName:   "Maple Court LLC",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	lease.Unit.PropertyID = lease.Property.ID
	for i := 0; i < tenantCount; i++ {
		lease.Tenants = append(lease.Tenants, &models.LeaseTenant{
			ID:        domain.NewLeaseTenantID(),
			UserID:    domain.NewUserID(),
			Name:      "Tenant",
			IsPrimary: i == 0,
		})
	}
	s.store.AddLease(lease)
	return lease
}

func (s *InMemoryStoreSuite) TestFindLeaseNotFound() {
	_, err := s.store.FindLease(s.ctx, domain.NewLeaseID())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestFindLeaseReturnsClone() {
	lease := s.seedLease(1)

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)

	found.Status = models.StatusTerminated
	again, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StatusDraft, again.Status)
}

func (s *InMemoryStoreSuite) TestMarkLandlordSignedMovesDraftToPending() {
	lease := s.seedLease(1)
	at := time.Now()

	s.Require().NoError(s.store.MarkLandlordSigned(s.ctx, lease.ID, "Maple Court LLC", at))

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StatusPendingSignature, found.Status)
	s.Require().NotNil(found.LandlordSignedAt)
	assert.Equal(s.T(), "Maple Court LLC", found.LandlordSignature)
}

func (s *InMemoryStoreSuite) TestMarkLandlordSignedTwiceConflicts() {
	lease := s.seedLease(1)
	at := time.Now()

	s.Require().NoError(s.store.MarkLandlordSigned(s.ctx, lease.ID, "sig", at))
	err := s.store.MarkLandlordSigned(s.ctx, lease.ID, "sig", at)
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)
}

func (s *InMemoryStoreSuite) TestMarkTenantSignedKeepsStatus() {
	lease := s.seedLease(2)
	at := time.Now()

	s.Require().NoError(s.store.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "Jo Tenant", at))

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StatusDraft, found.Status, "tenant signature alone must not change lease status")
	signed := found.TenantByUser(lease.Tenants[0].UserID)
	s.Require().NotNil(signed.SignedAt)
	assert.Equal(s.T(), "Jo Tenant", signed.Signature)
	assert.Nil(s.T(), found.TenantByUser(lease.Tenants[1].UserID).SignedAt)
}

func (s *InMemoryStoreSuite) TestMarkTenantSignedTwiceConflicts() {
	lease := s.seedLease(1)
	at := time.Now()

	s.Require().NoError(s.store.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "sig", at))
	err := s.store.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "sig", at)
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)
}

func (s *InMemoryStoreSuite) TestMarkSignedRejectsNonSignableStatus() {
	lease := s.seedLease(1)
	s.Require().NoError(s.store.MarkLandlordSigned(s.ctx, lease.ID, "sig", time.Now()))
	s.Require().NoError(s.store.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "sig", time.Now()))
	s.Require().NoError(s.store.ActivateLease(s.ctx, lease.ID, time.Now()))

	err := s.store.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "sig", time.Now())
	assert.ErrorIs(s.T(), err, sentinel.ErrInvalidState)
}

func (s *InMemoryStoreSuite) TestMarkTenantSignedUnknownTenant() {
	lease := s.seedLease(1)
	err := s.store.MarkTenantSigned(s.ctx, lease.ID, domain.NewLeaseTenantID(), "sig", time.Now())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestActivateLease() {
	lease := s.seedLease(1)
	at := time.Now()

	s.Require().NoError(s.store.ActivateLease(s.ctx, lease.ID, at))

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StatusActive, found.Status)
	s.Require().NotNil(found.AllTenantsSignedAt)

	err = s.store.ActivateLease(s.ctx, lease.ID, at)
	assert.ErrorIs(s.T(), err, sentinel.ErrInvalidState)
}

func (s *InMemoryStoreSuite) TestSetUnitStatus() {
	lease := s.seedLease(1)

	s.Require().NoError(s.store.SetUnitStatus(s.ctx, lease.Unit.ID, models.UnitOccupied))

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.UnitOccupied, found.Unit.Status)

	err = s.store.SetUnitStatus(s.ctx, domain.NewUnitID(), models.UnitOccupied)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

// Each aggregate embeds its own copy of the unit; a renewal lease for the
// same unit must see the status change too.
func (s *InMemoryStoreSuite) TestSetUnitStatusUpdatesEveryLeaseSharingTheUnit() {
	first := s.seedLease(1)
	second := s.seedLease(1)
	second.Unit = first.Unit
	s.store.AddLease(second)

	s.Require().NoError(s.store.SetUnitStatus(s.ctx, first.Unit.ID, models.UnitOccupied))

	for _, id := range []domain.LeaseID{first.ID, second.ID} {
		found, err := s.store.FindLease(s.ctx, id)
		s.Require().NoError(err)
		assert.Equal(s.T(), models.UnitOccupied, found.Unit.Status)
	}
}

func (s *InMemoryStoreSuite) TestListAwaitingLandlord() {
	lease := s.seedLease(1)
	other := s.seedLease(1)

	pending, err := s.store.ListAwaitingLandlord(s.ctx, lease.Property.LandlordUserID)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	assert.Equal(s.T(), lease.ID, pending[0].ID)

	s.Require().NoError(s.store.MarkLandlordSigned(s.ctx, lease.ID, "sig", time.Now()))
	pending, err = s.store.ListAwaitingLandlord(s.ctx, lease.Property.LandlordUserID)
	s.Require().NoError(err)
	assert.Empty(s.T(), pending)

	pending, err = s.store.ListAwaitingLandlord(s.ctx, other.Property.LandlordUserID)
	s.Require().NoError(err)
	assert.Len(s.T(), pending, 1)
}

func (s *InMemoryStoreSuite) TestListAwaitingTenant() {
	lease := s.seedLease(2)
	userID := lease.Tenants[0].UserID

	pending, err := s.store.ListAwaitingTenant(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)

	s.Require().NoError(s.store.MarkTenantSigned(s.ctx, lease.ID, lease.Tenants[0].ID, "sig", time.Now()))
	pending, err = s.store.ListAwaitingTenant(s.ctx, userID)
	s.Require().NoError(err)
	assert.Empty(s.T(), pending)

	pending, err = s.store.ListAwaitingTenant(s.ctx, lease.Tenants[1].UserID)
	s.Require().NoError(err)
	assert.Len(s.T(), pending, 1)
}

func (s *InMemoryStoreSuite) TestRunInTxRollsBackLeaseOnError() {
	lease := s.seedLease(1)

	err := s.tx.RunInTx(s.ctx, lease.ID, func(tx Store) error {
		if err := tx.MarkLandlordSigned(s.ctx, lease.ID, "sig", time.Now()); err != nil {
			return err
		}
		return errors.New("boom")
	})
	s.Require().EqualError(err, "boom")

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StatusDraft, found.Status)
	assert.Nil(s.T(), found.LandlordSignedAt)
}

func (s *InMemoryStoreSuite) TestRunInTxCommits() {
	lease := s.seedLease(1)

	err := s.tx.RunInTx(s.ctx, lease.ID, func(tx Store) error {
		return tx.MarkLandlordSigned(s.ctx, lease.ID, "sig", time.Now())
	})
	s.Require().NoError(err)

	found, err := s.store.FindLease(s.ctx, lease.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.StatusPendingSignature, found.Status)
}

func (s *InMemoryStoreSuite) TestRunInTxHonorsCancelledContext() {
	lease := s.seedLease(1)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.tx.RunInTx(ctx, lease.ID, func(Store) error {
		s.T().Fatal("callback must not run with a cancelled context")
		return nil
	})
	require.ErrorIs(s.T(), err, context.Canceled)
}
