package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "leasegate/pkg/domain-errors"
)

func TestParseLeaseID(t *testing.T) {
	t.Run("valid uuid parses", func(t *testing.T) {
		raw := uuid.New()
		id, err := ParseLeaseID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, raw.String(), id.String())
		assert.False(t, id.IsNil())
	})

	t.Run("empty string rejected", func(t *testing.T) {
		_, err := ParseLeaseID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseLeaseID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("nil uuid parses but reports IsNil", func(t *testing.T) {
		id, err := ParseLeaseID(uuid.Nil.String())
		require.NoError(t, err)
		assert.True(t, id.IsNil())
	})
}

func TestTypedIDsAreDistinct(t *testing.T) {
	// Same underlying UUID, different types: equality across types must not
	// even compile, so we only assert the string round-trip here.
	raw := uuid.New()
	userID := UserID(raw)
	leaseID := LeaseID(raw)
	assert.Equal(t, userID.String(), leaseID.String())
}

func TestRole(t *testing.T) {
	for _, role := range []Role{RoleLandlord, RoleTenant, RoleVendor, RoleAdmin} {
		assert.True(t, role.IsValid(), "expected %s to be valid", role)
	}
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestCallerIsZero(t *testing.T) {
	assert.True(t, Caller{}.IsZero())
	assert.False(t, Caller{UserID: NewUserID(), Role: RoleTenant}.IsZero())
}
