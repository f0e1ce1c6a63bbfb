package ports

import (
	"context"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// SearchArtistsResult is a page of artist search matches.
type SearchArtistsResult struct {
	Artists []ArtistSearchRow
	Total   int64
	Page    int
	Limit   int
}

// ArtistService owns profile reads, partial updates, picture storage, and discovery.
type ArtistService interface {
	// GetProfile returns the profile owned by the given account.
	GetProfile(ctx context.Context, account *domain.Account) (*domain.ArtistProfile, error)

	// UpdateProfile applies a partial update to the account's own profile.
	UpdateProfile(ctx context.Context, account *domain.Account, patch domain.ProfilePatch) (*domain.ArtistProfile, error)

	// SetPicture stores the profile picture payload for the account's own profile.
	SetPicture(ctx context.Context, account *domain.Account, pic domain.ProfilePicture) error

	// GetPictureByUsername serves the stored picture of the named artist.
	GetPictureByUsername(ctx context.Context, username string) (*domain.ProfilePicture, error)

	// Search performs public artist discovery with pagination.
	Search(ctx context.Context, filter SearchArtistsFilter) (*SearchArtistsResult, error)
}
