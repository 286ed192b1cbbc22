// Package domain provides type-safe identifiers and the caller identity
// vocabulary shared by every layer. Distinct ID types keep the compiler from
// accepting a UnitID where a LeaseID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "leasegate/pkg/domain-errors"
)

type (
	UserID         uuid.UUID
	LeaseID        uuid.UUID
	LeaseTenantID  uuid.UUID
	UnitID         uuid.UUID
	PropertyID     uuid.UUID
	NotificationID uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, token claims).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseLeaseID(s string) (LeaseID, error) {
	id, err := parseUUID(s, "lease ID")
	return LeaseID(id), err
}

func ParseLeaseTenantID(s string) (LeaseTenantID, error) {
	id, err := parseUUID(s, "lease tenant ID")
	return LeaseTenantID(id), err
}

func ParseUnitID(s string) (UnitID, error) {
	id, err := parseUUID(s, "unit ID")
	return UnitID(id), err
}

func ParsePropertyID(s string) (PropertyID, error) {
	id, err := parseUUID(s, "property ID")
	return PropertyID(id), err
}

func ParseNotificationID(s string) (NotificationID, error) {
	id, err := parseUUID(s, "notification ID")
	return NotificationID(id), err
}

// New functions - for fresh records.

func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewLeaseID() LeaseID               { return LeaseID(uuid.New()) }
func NewLeaseTenantID() LeaseTenantID   { return LeaseTenantID(uuid.New()) }
func NewUnitID() UnitID                 { return UnitID(uuid.New()) }
func NewPropertyID() PropertyID         { return PropertyID(uuid.New()) }
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

// String methods - for logging and persistence keys.

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id LeaseID) String() string        { return uuid.UUID(id).String() }
func (id LeaseTenantID) String() string  { return uuid.UUID(id).String() }
func (id UnitID) String() string         { return uuid.UUID(id).String() }
func (id PropertyID) String() string     { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id LeaseID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id LeaseTenantID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id UnitID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id PropertyID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic. Nil UUIDs pass here; services call
// IsNil() where a present ID is a business requirement, so store lookups can
// still return a proper "not found".
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return parsed, nil
}
