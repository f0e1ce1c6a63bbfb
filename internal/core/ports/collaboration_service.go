package ports

import (
	"context"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// CreateCollaborationInput carries the data for a new collaboration request.
type CreateCollaborationInput struct {
	TargetArtistID string
	Message        string
	ProjectType    string
}

// CollaborationService owns the collaboration request lifecycle.
type CollaborationService interface {
	// Create sends a request from the authenticated artist to another artist.
	// The target must resolve to an active artist account, must not be the
	// requester, and must not already have a pending request from the same
	// requester.
	Create(ctx context.Context, requester *domain.Account, in CreateCollaborationInput) (*domain.Collaboration, error)

	// Accept transitions a pending request to accepted. Only the target
	// account may accept.
	Accept(ctx context.Context, actor *domain.Account, id string) (*domain.Collaboration, error)

	// Decline transitions a pending request to declined. Only the target
	// account may decline.
	Decline(ctx context.Context, actor *domain.Account, id string) (*domain.Collaboration, error)

	// ListForAccount returns the requests the account participates in, in
	// either direction.
	ListForAccount(ctx context.Context, account *domain.Account) ([]*domain.Collaboration, error)
}
