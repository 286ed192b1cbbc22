package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasegate/pkg/domain"
)

func TestIssueAndValidateToken(t *testing.T) {
	svc, err := NewJWTService("test-signing-key", time.Hour)
	require.NoError(t, err)

	userID := domain.NewUserID()
	token, err := svc.IssueToken(userID, domain.RoleLandlord)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "landlord", claims.Role)
}

func TestValidateTokenWrongKey(t *testing.T) {
	issuer, err := NewJWTService("key-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewJWTService("key-two", time.Hour)
	require.NoError(t, err)

	token, err := issuer.IssueToken(domain.NewUserID(), domain.RoleTenant)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc, err := NewJWTService("test-signing-key", time.Minute)
	require.NoError(t, err)

	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.IssueToken(domain.NewUserID(), domain.RoleTenant)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc, err := NewJWTService("test-signing-key", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestNewJWTServiceRequiresKey(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)
}
