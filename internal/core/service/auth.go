package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

// TokenRevoker abstracts the revocation deny-list (Redis).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService implements password and bearer-token authentication plus logout.
type AuthService struct {
	accounts ports.AccountRepository
	tokens   *TokenService
	revoker  TokenRevoker
	log      zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, tokens *TokenService, revoker TokenRevoker, log zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, revoker: revoker, log: log}
}

// AuthenticateByPassword resolves the identifier (email or username) and
// verifies the password. Unknown identity and wrong password both surface as
// ErrInvalidCredentials; the deactivation check runs only after the password
// verifies, so inactive accounts are not discoverable with a bad password.
func (s *AuthService) AuthenticateByPassword(ctx context.Context, identifier, password string) (*domain.Account, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !CheckPassword(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !account.Active {
		return nil, domain.ErrAccountDeactivated
	}

	return account, nil
}

// AuthenticateByToken verifies the bearer token, consults the revocation
// deny-list, and resolves the subject claim to an account.
func (s *AuthService) AuthenticateByToken(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token verification failed")
		return nil, err
	}

	if s.revoker != nil && claims.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			// A deny-list outage must not lock every caller out; tokens
			// still expire naturally.
			s.log.Warn().Err(err).Msg("revocation check failed, accepting token")
		} else if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	account, err := s.accounts.FindByUsername(ctx, claims.Subject)
	if err != nil {
		// The subject may have been deleted after the token was issued.
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}

	if !account.Active {
		return nil, domain.ErrAccountDeactivated
	}

	return account, nil
}

// Login authenticates by password and mints a fresh access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	account, err := s.AuthenticateByPassword(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.IssueAccess(account.Username)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(account.Username)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	s.log.Info().Str("username", account.Username).Str("role", string(account.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		Account:      account,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
// Tokens issued earlier to the same account remain valid until they expire.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}
	if s.revoker == nil || claims.TokenID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info().Str("username", claims.Subject).Msg("token revoked")
	return nil
}

// Deactivate soft-deletes the account by clearing its active flag. Already
// issued tokens stop authenticating immediately because token resolution
// rechecks the flag on every request.
func (s *AuthService) Deactivate(ctx context.Context, accountID string) error {
	if err := s.accounts.Deactivate(ctx, accountID); err != nil {
		return err
	}
	s.log.Info().Str("account_id", accountID).Msg("account deactivated")
	return nil
}

// RequireRole enforces exact role equality. A promoter cannot reach
// artist-only resources; no role implies another.
func RequireRole(account *domain.Account, required domain.Role) (*domain.Account, error) {
	if account == nil || account.Role != required {
		return nil, domain.ErrForbidden
	}
	return account, nil
}
