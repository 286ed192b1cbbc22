// Package session issues and validates the signed session tokens that stand
// in for the platform's external session provider.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"leasegate/internal/platform/middleware"
	"leasegate/pkg/domain"
)

// JWTService signs and verifies HMAC session tokens.
type JWTService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTService creates a JWT session service.
func NewJWTService(key string, ttl time.Duration) (*JWTService, error) {
	if key == "" {
		return nil, errors.New("session signing key is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken mints a token for the given user.
func (s *JWTService) IssueToken(userID domain.UserID, role domain.Role) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "leasegate",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry and returns the claims.
// Implements middleware.TokenValidator.
func (s *JWTService) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithIssuer("leasegate"), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return &middleware.SessionClaims{
		UserID: claims.Subject,
		Role:   claims.Role,
	}, nil
}
