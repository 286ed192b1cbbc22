// Package seeder loads a demo data set into the in-memory store so the
// service is explorable without a database.
package seeder

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"leasegate/internal/leasing/models"
	"leasegate/internal/leasing/store"
	"leasegate/pkg/domain"
)

// Fixed IDs so demo tokens stay valid across restarts.
var (
	DemoLandlordID = domain.UserID(uuid.MustParse("11111111-1111-1111-1111-111111111111"))
	DemoTenantAID  = domain.UserID(uuid.MustParse("22222222-2222-2222-2222-222222222222"))
	DemoTenantBID  = domain.UserID(uuid.MustParse("33333333-3333-3333-3333-333333333333"))

	demoPropertyID = domain.PropertyID(uuid.MustParse("44444444-4444-4444-4444-444444444444"))

	// DemoLeaseSingle has one tenant; DemoLeaseCouple has two.
	DemoLeaseSingle = domain.LeaseID(uuid.MustParse("55555555-5555-5555-5555-555555555555"))
	DemoLeaseCouple = domain.LeaseID(uuid.MustParse("66666666-6666-6666-6666-666666666666"))
)

// Seed populates the store with one landlord, one property, two units, and
// two draft leases awaiting signatures.
func Seed(st *store.InMemoryStore, logger *slog.Logger) {
	now := time.Now()
	property := models.Property{
		ID:             demoPropertyID,
		Name:           "Alder Yard",
		Address:        "7 Alder Yard, Rivertown",
		LandlordUserID: DemoLandlordID,
		LandlordName:   "Alder Yard Properties",
	}

	single := &models.Lease{
		ID:           DemoLeaseSingle,
		Status:       models.StatusDraft,
		RentCents:    145000,
		DepositCents: 145000,
		StartDate:    now.AddDate(0, 1, 0),
		EndDate:      now.AddDate(1, 1, 0),
		Unit: models.Unit{
			ID:         domain.UnitID(uuid.MustParse("77777777-7777-7777-7777-777777777777")),
			PropertyID: property.ID,
			UnitNumber: "1A",
			Status:     models.UnitVacant,
		},
		Property: property,
		Tenants: []*models.LeaseTenant{{
			ID:        domain.LeaseTenantID(uuid.MustParse("88888888-8888-8888-8888-888888888888")),
			UserID:    DemoTenantAID,
			Name:      "Priya Nair",
			IsPrimary: true,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	couple := &models.Lease{
		ID:           DemoLeaseCouple,
		Status:       models.StatusDraft,
		RentCents:    210000,
		DepositCents: 210000,
		StartDate:    now.AddDate(0, 1, 0),
		EndDate:      now.AddDate(1, 1, 0),
		Unit: models.Unit{
			ID:         domain.UnitID(uuid.MustParse("99999999-9999-9999-9999-999999999999")),
			PropertyID: property.ID,
			UnitNumber: "2B",
			Status:     models.UnitVacant,
		},
		Property: property,
		Tenants: []*models.LeaseTenant{
			{
				ID:        domain.LeaseTenantID(uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")),
				UserID:    DemoTenantAID,
				Name:      "Priya Nair",
				IsPrimary: true,
			},
			{
				ID:     domain.LeaseTenantID(uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")),
				UserID: DemoTenantBID,
				Name:   "Sam Whitfield",
			},
		},
		CreatedAt: now.Add(time.Second),
		UpdatedAt: now.Add(time.Second),
	}

	st.AddLease(single)
	st.AddLease(couple)

	logger.Info("demo data seeded",
		"landlord_user_id", DemoLandlordID,
		"tenant_a_user_id", DemoTenantAID,
		"tenant_b_user_id", DemoTenantBID,
		"leases", []string{DemoLeaseSingle.String(), DemoLeaseCouple.String()},
	)
}
