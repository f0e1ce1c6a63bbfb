package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// TokenClaims is the verified claim set extracted from a bearer token.
type TokenClaims struct {
	Subject   string    // username the token was issued to
	TokenID   string    // jti, used as the revocation key
	ExpiresAt time.Time // embedded expiry
}

// TokenService issues and verifies HS256-signed bearer tokens. It is
// stateless: verification is a pure function of the signed payload, the
// shared secret, and the clock, so no locking is needed under concurrency.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

const (
	defaultAccessTTL = 30 * time.Minute
	// Refresh tokens always carry a finite expiry, longer than the access
	// window but never unbounded.
	defaultRefreshTTL = 7 * 24 * time.Hour
)

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess mints a short-lived access token bound to the subject.
func (s *TokenService) IssueAccess(subject string) (string, error) {
	return s.issue(subject, s.accessTTL)
}

// IssueRefresh mints a refresh token with its own longer, finite TTL.
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, s.refreshTTL)
}

func (s *TokenService) issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token string. Failures are classified as
// domain.ErrTokenExpired, domain.ErrTokenInvalid (signature), or
// domain.ErrTokenMalformed so callers can log the cause, even though the
// HTTP boundary collapses all three to a single unauthenticated response.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !tkn.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}
	return &TokenClaims{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
