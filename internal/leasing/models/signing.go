package models

import (
	"time"

	"leasegate/pkg/domain"
)

// PartyKind identifies which side of the lease a signer is on.
type PartyKind string

const (
	PartyLandlord PartyKind = "landlord"
	PartyTenant   PartyKind = "tenant"
)

// SigningParty is the resolved signer for a sign request. Tenant is set only
// when Kind is PartyTenant.
type SigningParty struct {
	Kind   PartyKind
	Tenant *LeaseTenant
}

// ResolveSigningParty matches the caller against the lease's parties. It
// returns false when the caller is neither the landlord nor a tenant on the
// lease.
func ResolveSigningParty(lease *Lease, caller domain.Caller) (SigningParty, bool) {
	if lease.OwnedBy(caller.UserID) {
		return SigningParty{Kind: PartyLandlord}, true
	}
	if tenant := lease.TenantByUser(caller.UserID); tenant != nil {
		return SigningParty{Kind: PartyTenant, Tenant: tenant}, true
	}
	return SigningParty{}, false
}

// HasSigned reports whether this party has already signed the lease.
func (p SigningParty) HasSigned(lease *Lease) bool {
	if p.Kind == PartyLandlord {
		return lease.LandlordSignedAt != nil
	}
	return p.Tenant.HasSigned()
}

// SignedAt returns when this party signed, or nil.
func (p SigningParty) SignedAt(lease *Lease) *time.Time {
	if p.Kind == PartyLandlord {
		return lease.LandlordSignedAt
	}
	return p.Tenant.SignedAt
}

// SigningView is what a party sees when opening a lease for signature.
type SigningView struct {
	Lease     *Lease
	Party     PartyKind
	CanSign   bool
	HasSigned bool
	SignedAt  *time.Time
	Progress  Progress
}

// NewSigningView builds the signing view for a resolved party.
func NewSigningView(lease *Lease, party SigningParty) *SigningView {
	signed := party.HasSigned(lease)
	return &SigningView{
		Lease:     lease,
		Party:     party.Kind,
		CanSign:   lease.Status.Signable() && !signed,
		HasSigned: signed,
		SignedAt:  party.SignedAt(lease),
		Progress:  lease.SigningProgress(),
	}
}
