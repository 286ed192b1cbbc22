package domain

// Role is the platform-level role carried in session token claims. The
// signing coordinator never trusts the role alone for lease access; ownership
// is always re-checked against the lease's own relations.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	switch r {
	case RoleLandlord, RoleTenant, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Caller is the authenticated identity behind a request. It is resolved once
// at the transport boundary and passed explicitly to every operation; domain
// code never reaches back into a session singleton.
type Caller struct {
	UserID UserID
	Role   Role
}

// IsZero reports whether the caller carries no identity.
func (c Caller) IsZero() bool {
	return c.UserID.IsNil()
}
