package ports

import (
	"context"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// CollaborationRepository defines persistence operations for collaboration requests.
type CollaborationRepository interface {
	// Create inserts a new pending request. Returns
	// domain.ErrDuplicatePendingCollaboration when the (requester, target)
	// pair already has a pending request, enforced by a storage-layer
	// constraint so concurrent creates cannot both succeed.
	Create(ctx context.Context, c *domain.Collaboration) (*domain.Collaboration, error)

	FindByID(ctx context.Context, id string) (*domain.Collaboration, error)

	// Resolve transitions a request from pending to the given terminal status.
	// The update is conditional on the stored status still being pending;
	// domain.ErrInvalidCollaborationTransition is returned otherwise.
	Resolve(ctx context.Context, id string, to domain.CollaborationStatus) (*domain.Collaboration, error)

	// ListForAccount returns all requests where the account is requester or target.
	ListForAccount(ctx context.Context, accountID string) ([]*domain.Collaboration, error)
}
