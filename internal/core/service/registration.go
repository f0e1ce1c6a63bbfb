package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

// RegistrationService validates input, enforces the uniqueness and password
// policy invariants, creates the account (plus the artist profile when
// applicable) atomically, and mints the initial token pair.
type RegistrationService struct {
	accounts ports.AccountRepository
	tokens   *TokenService
	log      zerolog.Logger
}

func NewRegistrationService(accounts ports.AccountRepository, tokens *TokenService, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{accounts: accounts, tokens: tokens, log: log}
}

// Register runs the registration workflow. Check order is fixed: password
// policy, then email uniqueness, then username uniqueness, so error reporting
// is deterministic when several conditions fail at once. The pre-checks give
// friendly errors but the storage layer's unique indexes are the actual
// concurrency guarantee: two racing registrations on the same email cannot
// both succeed.
func (s *RegistrationService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegistrationResult, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.accounts.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        email,
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var profile *domain.ArtistProfile
	if in.Role == domain.RoleArtist {
		profile = &domain.ArtistProfile{
			Bio:         in.Bio,
			Genres:      in.Genres,
			Instruments: in.Instruments,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		account, profile, err = s.accounts.CreateArtist(ctx, account, profile)
	} else {
		account, err = s.accounts.Create(ctx, account)
	}
	if err != nil {
		// Duplicate-key violations from racing inserts come back as the
		// same duplicate errors the pre-checks produce.
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	access, err := s.tokens.IssueAccess(account.Username)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(account.Username)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	s.log.Info().Str("username", account.Username).Str("role", string(account.Role)).Msg("account registered")

	return &ports.RegistrationResult{
		Account:       account,
		ArtistProfile: profile,
		AccessToken:   access,
		RefreshToken:  refresh,
	}, nil
}
