package handler

import (
	"time"

	"leasegate/internal/leasing/models"
)

type leaseResponse struct {
	ID                 string           `json:"id"`
	Status             string           `json:"status"`
	RentCents          int64            `json:"rent_cents"`
	DepositCents       int64            `json:"deposit_cents"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	LandlordSignedAt   *time.Time       `json:"landlord_signed_at,omitempty"`
	AllTenantsSignedAt *time.Time       `json:"all_tenants_signed_at,omitempty"`
	Unit               unitResponse     `json:"unit"`
	Property           propertyResponse `json:"property"`
	Tenants            []tenantResponse `json:"tenants"`
}

type unitResponse struct {
	ID         string `json:"id"`
	UnitNumber string `json:"unit_number"`
	Status     string `json:"status"`
}

type propertyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	LandlordName string `json:"landlord_name"`
}

type tenantResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsPrimary bool       `json:"is_primary"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
}

type progressResponse struct {
	Completed int `json:"completed"`
	Required  int `json:"required"`
	Percent   int `json:"percent"`
}

type signingViewResponse struct {
	Lease     leaseResponse    `json:"lease"`
	Party     string           `json:"party,omitempty"`
	CanSign   bool             `json:"can_sign"`
	HasSigned bool             `json:"has_signed"`
	SignedAt  *time.Time       `json:"signed_at,omitempty"`
	Progress  progressResponse `json:"progress"`
}

type pendingLeaseResponse struct {
	Lease    leaseResponse    `json:"lease"`
	Progress progressResponse `json:"progress"`
}

func newLeaseResponse(lease *models.Lease) leaseResponse {
	tenants := make([]tenantResponse, 0, len(lease.Tenants))
	for _, t := range lease.Tenants {
		tenants = append(tenants, tenantResponse{
			ID:        t.ID.String(),
			Name:      t.Name,
			IsPrimary: t.IsPrimary,
			SignedAt:  t.SignedAt,
		})
	}
	return leaseResponse{
		ID:                 lease.ID.String(),
		Status:             string(lease.Status),
		RentCents:          lease.RentCents,
		DepositCents:       lease.DepositCents,
		StartDate:          lease.StartDate,
		EndDate:            lease.EndDate,
		LandlordSignedAt:   lease.LandlordSignedAt,
		AllTenantsSignedAt: lease.AllTenantsSignedAt,
		Unit: unitResponse{
			ID:         lease.Unit.ID.String(),
			UnitNumber: lease.Unit.UnitNumber,
			Status:     string(lease.Unit.Status),
		},
		Property: propertyResponse{
			ID:           lease.Property.ID.String(),
			Name:         lease.Property.Name,
			Address:      lease.Property.Address,
			LandlordName: lease.Property.LandlordName,
		},
		Tenants: tenants,
	}
}

func newProgressResponse(p models.Progress) progressResponse {
	return progressResponse{Completed: p.Completed, Required: p.Required, Percent: p.Percent}
}

func newSigningViewResponse(view *models.SigningView) signingViewResponse {
	return signingViewResponse{
		Lease:     newLeaseResponse(view.Lease),
		Party:     string(view.Party),
		CanSign:   view.CanSign,
		HasSigned: view.HasSigned,
		SignedAt:  view.SignedAt,
		Progress:  newProgressResponse(view.Progress),
	}
}
