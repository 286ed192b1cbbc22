package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasegate/pkg/domain"
)

type stubValidator struct {
	claims *SessionClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*SessionClaims, error) {
	return s.claims, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New().String()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetCaller(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, caller.UserID.String())
		assert.Equal(t, domain.RoleTenant, caller.Role)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token passes caller to handler", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{claims: &SessionClaims{UserID: userID, Role: "tenant"}}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/leases/pending-signatures", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()

		mw(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		mw(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{err: assert.AnError}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()

		mw(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{claims: &SessionClaims{UserID: userID, Role: "superuser"}}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()

		mw(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("nil subject rejected", func(t *testing.T) {
		mw := RequireAuth(&stubValidator{claims: &SessionClaims{UserID: uuid.Nil.String(), Role: "tenant"}}, testLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()

		mw(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetCallerAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetCaller(req.Context())
	assert.False(t, ok)
}
