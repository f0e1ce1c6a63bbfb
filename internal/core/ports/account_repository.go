package ports

import (
	"context"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// AccountRepository defines persistence operations for identity records.
// Uniqueness of email and username is enforced by the storage layer (unique
// indexes), not by the callers: a read-then-write check alone would race.
type AccountRepository interface {
	// Create inserts a new account. Returns domain.ErrDuplicateEmail or
	// domain.ErrDuplicateUsername when a unique constraint is violated.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// CreateArtist inserts an account and its companion artist profile as a
	// single atomic unit. Neither record persists if either write fails.
	CreateArtist(ctx context.Context, account *domain.Account, profile *domain.ArtistProfile) (*domain.Account, *domain.ArtistProfile, error)

	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)

	// FindByIdentifier matches on either email or username, transparently
	// supporting "login with email or username".
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)

	// Deactivate clears the account's active flag (soft delete).
	Deactivate(ctx context.Context, id string) error
}
