package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
	maxPictureBytes    = 5 * 1024 * 1024
)

var ErrInvalidPicture = errors.New("profile picture must be an image of at most 5 MiB")

// ArtistServiceImpl owns artist profile reads, partial updates, picture
// storage, and public discovery. Ownership is implicit: every mutator
// operates on the authenticated account's own profile.
type ArtistServiceImpl struct {
	profiles ports.ArtistProfileRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewArtistService(profiles ports.ArtistProfileRepository, accounts ports.AccountRepository, log zerolog.Logger) *ArtistServiceImpl {
	return &ArtistServiceImpl{profiles: profiles, accounts: accounts, log: log}
}

// GetProfile returns the authenticated artist's own profile.
func (s *ArtistServiceImpl) GetProfile(ctx context.Context, account *domain.Account) (*domain.ArtistProfile, error) {
	if _, err := RequireRole(account, domain.RoleArtist); err != nil {
		return nil, err
	}
	return s.profiles.FindByAccountID(ctx, account.ID)
}

// UpdateProfile applies a partial update to the authenticated artist's own
// profile. Fields absent from the patch keep their stored values.
func (s *ArtistServiceImpl) UpdateProfile(ctx context.Context, account *domain.Account, patch domain.ProfilePatch) (*domain.ArtistProfile, error) {
	if _, err := RequireRole(account, domain.RoleArtist); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.profiles.FindByAccountID(ctx, account.ID)
	}

	profile, err := s.profiles.Update(ctx, account.ID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("artist profile updated")
	return profile, nil
}

// SetPicture stores the profile picture after validating content type and size.
func (s *ArtistServiceImpl) SetPicture(ctx context.Context, account *domain.Account, pic domain.ProfilePicture) error {
	if _, err := RequireRole(account, domain.RoleArtist); err != nil {
		return err
	}
	if !strings.HasPrefix(pic.ContentType, "image/") || len(pic.Data) == 0 || len(pic.Data) > maxPictureBytes {
		return ErrInvalidPicture
	}
	return s.profiles.SetPicture(ctx, account.ID, pic)
}

// GetPictureByUsername serves the stored picture of the named artist.
func (s *ArtistServiceImpl) GetPictureByUsername(ctx context.Context, username string) (*domain.ProfilePicture, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account.Role != domain.RoleArtist || !account.Active {
		return nil, domain.ErrProfileNotFound
	}
	return s.profiles.GetPicture(ctx, account.ID)
}

// Search performs public artist discovery. Limits are normalised and capped
// before hitting the store.
func (s *ArtistServiceImpl) Search(ctx context.Context, filter ports.SearchArtistsFilter) (*ports.SearchArtistsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}

	rows, total, err := s.profiles.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}

	return &ports.SearchArtistsResult{
		Artists: rows,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}
