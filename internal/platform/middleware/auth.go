package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"leasegate/internal/transport/respond"
	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
)

// SessionClaims are the claims the token validator hands back. The session
// provider itself is an external collaborator; this layer only verifies its
// tokens and turns them into a typed Caller.
type SessionClaims struct {
	UserID string
	Role   string
}

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

type callerKey struct{}

// RequireAuth validates the bearer token and stores the resulting Caller in
// context. Requests without a valid session never reach the handlers.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired session"))
				return
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed token claims",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired session"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(ctx, caller)))
		})
	}
}

func callerFromClaims(claims *SessionClaims) (domain.Caller, error) {
	userID, err := domain.ParseUserID(claims.UserID)
	if err != nil {
		return domain.Caller{}, err
	}
	if userID.IsNil() {
		return domain.Caller{}, dErrors.New(dErrors.CodeUnauthorized, "token carries no subject")
	}
	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Caller{}, dErrors.New(dErrors.CodeUnauthorized, "token carries an unknown role")
	}
	return domain.Caller{UserID: userID, Role: role}, nil
}

// WithCaller stores the authenticated caller in the context. Exposed for
// handler tests that bypass the middleware.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller retrieves the authenticated caller from the context.
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	if !ok || caller.IsZero() {
		return domain.Caller{}, false
	}
	return caller, true
}
