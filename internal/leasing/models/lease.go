// Package models defines the lease aggregate and its signing lifecycle.
package models

import (
	"math"
	"time"

	"leasegate/pkg/domain"
)

// LeaseStatus is the lifecycle state of a lease.
type LeaseStatus string

const (
	StatusDraft            LeaseStatus = "draft"
	StatusPendingSignature LeaseStatus = "pending_signature"
	StatusActive           LeaseStatus = "active"
	StatusExpired          LeaseStatus = "expired"
	StatusTerminated       LeaseStatus = "terminated"
)

// Signable reports whether signatures may still be recorded.
func (s LeaseStatus) Signable() bool {
	return s == StatusDraft || s == StatusPendingSignature
}

// ViewableForSigning reports whether the signing view may be served. Active
// leases stay viewable so parties can revisit what they signed.
func (s LeaseStatus) ViewableForSigning() bool {
	return s.Signable() || s == StatusActive
}

var leaseTransitions = map[LeaseStatus][]LeaseStatus{
	StatusDraft:            {StatusPendingSignature, StatusActive, StatusTerminated},
	StatusPendingSignature: {StatusActive, StatusTerminated},
	StatusActive:           {StatusExpired, StatusTerminated},
	StatusExpired:          {},
	StatusTerminated:       {},
}

// CanTransitionTo reports whether the lifecycle allows moving to the target
// status.
func (s LeaseStatus) CanTransitionTo(target LeaseStatus) bool {
	for _, allowed := range leaseTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// UnitStatus is the occupancy state of a rental unit.
type UnitStatus string

const (
	UnitVacant   UnitStatus = "vacant"
	UnitOccupied UnitStatus = "occupied"
)

// Property is the building a unit belongs to.
type Property struct {
	ID             domain.PropertyID
	Name           string
	Address        string
	LandlordUserID domain.UserID
	LandlordName   string
}

// Unit is a rentable unit within a property.
type Unit struct {
	ID         domain.UnitID
	PropertyID domain.PropertyID
	UnitNumber string
	Status     UnitStatus
}

// LeaseTenant is one tenant party on a lease. SignedAt is nil until the
// tenant signs.
type LeaseTenant struct {
	ID        domain.LeaseTenantID
	UserID    domain.UserID
	Name      string
	IsPrimary bool
	SignedAt  *time.Time
	Signature string
}

// HasSigned reports whether this tenant has recorded a signature.
func (t *LeaseTenant) HasSigned() bool {
	return t.SignedAt != nil
}

// Lease is the signing aggregate: the lease record plus its unit, property,
// and tenant parties. Stores load and persist it as one unit.
type Lease struct {
	ID                domain.LeaseID
	Status            LeaseStatus
	RentCents         int64
	DepositCents      int64
	StartDate         time.Time
	EndDate           time.Time
	LandlordSignedAt  *time.Time
	LandlordSignature string
	AllTenantsSignedAt *time.Time
	Unit              Unit
	Property          Property
	Tenants           []*LeaseTenant
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RequiredSignatures is the total number of parties that must sign: every
// tenant plus the landlord.
func (l *Lease) RequiredSignatures() int {
	return len(l.Tenants) + 1
}

// CompletedSignatures counts the parties that have signed so far.
func (l *Lease) CompletedSignatures() int {
	count := 0
	if l.LandlordSignedAt != nil {
		count++
	}
	for _, t := range l.Tenants {
		if t.HasSigned() {
			count++
		}
	}
	return count
}

// FullySigned reports whether every required party has signed.
func (l *Lease) FullySigned() bool {
	return l.CompletedSignatures() == l.RequiredSignatures()
}

// TenantByUser returns the tenant party for the given user, or nil if the
// user is not a tenant on this lease.
func (l *Lease) TenantByUser(userID domain.UserID) *LeaseTenant {
	for _, t := range l.Tenants {
		if t.UserID == userID {
			return t
		}
	}
	return nil
}

// OwnedBy reports whether the given user is the landlord of this lease.
func (l *Lease) OwnedBy(userID domain.UserID) bool {
	return l.Property.LandlordUserID == userID
}

// CanView reports whether the caller is a party to this lease.
func (l *Lease) CanView(caller domain.Caller) bool {
	if l.OwnedBy(caller.UserID) {
		return true
	}
	return l.TenantByUser(caller.UserID) != nil
}

// Progress summarizes signing completion for the signing view.
type Progress struct {
	Completed int
	Required  int
	Percent   int
}

// SigningProgress computes the completion ratio, rounded to whole percent.
func (l *Lease) SigningProgress() Progress {
	required := l.RequiredSignatures()
	completed := l.CompletedSignatures()
	percent := 0
	if required > 0 {
		percent = int(math.Round(float64(completed) / float64(required) * 100))
	}
	return Progress{Completed: completed, Required: required, Percent: percent}
}

// Clone returns a deep copy so callers can mutate it without affecting the
// stored aggregate.
func (l *Lease) Clone() *Lease {
	copied := *l
	if l.LandlordSignedAt != nil {
		at := *l.LandlordSignedAt
		copied.LandlordSignedAt = &at
	}
	if l.AllTenantsSignedAt != nil {
		at := *l.AllTenantsSignedAt
		copied.AllTenantsSignedAt = &at
	}
	copied.Tenants = make([]*LeaseTenant, len(l.Tenants))
	for i, t := range l.Tenants {
		tc := *t
		if t.SignedAt != nil {
			at := *t.SignedAt
			tc.SignedAt = &at
		}
		copied.Tenants[i] = &tc
	}
	return &copied
}
