package ports

import (
	"context"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// SearchArtistsFilter carries all query parameters for artist discovery.
type SearchArtistsFilter struct {
	Genre      string // optional: match on genre tags
	Location   string // optional: partial match on location
	Instrument string // optional: match on instrument tags
	Page       int    // 1-based
	Limit      int    // max rows per page (capped at 100 by service)
}

// ArtistSearchRow pairs a profile with the owning account's public identity.
type ArtistSearchRow struct {
	Profile     domain.ArtistProfile
	Username    string
	DisplayName string
}

// ArtistProfileRepository defines persistence operations for artist profiles.
type ArtistProfileRepository interface {
	FindByAccountID(ctx context.Context, accountID string) (*domain.ArtistProfile, error)

	// Update applies a partial update: only non-nil patch fields are written.
	// Returns the profile as stored after the update.
	Update(ctx context.Context, accountID string, patch domain.ProfilePatch) (*domain.ArtistProfile, error)

	SetPicture(ctx context.Context, accountID string, pic domain.ProfilePicture) error
	GetPicture(ctx context.Context, accountID string) (*domain.ProfilePicture, error)

	// Search returns a page of profiles for active artist accounts matching
	// filter, plus the total match count.
	Search(ctx context.Context, filter SearchArtistsFilter) ([]ArtistSearchRow, int64, error)
}
