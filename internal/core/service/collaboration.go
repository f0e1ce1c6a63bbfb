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

var ErrSelfCollaboration = errors.New("cannot send a collaboration request to yourself")

// CollaborationServiceImpl owns the collaboration request lifecycle between
// artist accounts.
type CollaborationServiceImpl struct {
	collaborations ports.CollaborationRepository
	accounts       ports.AccountRepository
	log            zerolog.Logger
}

func NewCollaborationService(collaborations ports.CollaborationRepository, accounts ports.AccountRepository, log zerolog.Logger) *CollaborationServiceImpl {
	return &CollaborationServiceImpl{collaborations: collaborations, accounts: accounts, log: log}
}

// Create sends a collaboration request. The target must be an active artist
// distinct from the requester, and the (requester, target) pair may have only
// one pending request outstanding at a time. The storage-layer constraint,
// not the pre-check, is what makes the pair invariant race-safe.
func (s *CollaborationServiceImpl) Create(ctx context.Context, requester *domain.Account, in ports.CreateCollaborationInput) (*domain.Collaboration, error) {
	if _, err := RequireRole(requester, domain.RoleArtist); err != nil {
		return nil, err
	}
	if in.TargetArtistID == requester.ID {
		return nil, ErrSelfCollaboration
	}

	target, err := s.accounts.FindByID(ctx, in.TargetArtistID)
	if err != nil {
		return nil, err
	}
	if target.Role != domain.RoleArtist || !target.Active {
		return nil, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()
	c := &domain.Collaboration{
		RequesterID:    requester.ID,
		TargetArtistID: target.ID,
		Message:        in.Message,
		ProjectType:    in.ProjectType,
		Status:         domain.CollaborationPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.collaborations.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("requester_id", requester.ID).
		Str("target_artist_id", target.ID).
		Msg("collaboration request created")
	return created, nil
}

// Accept resolves a pending request to accepted.
func (s *CollaborationServiceImpl) Accept(ctx context.Context, actor *domain.Account, id string) (*domain.Collaboration, error) {
	return s.resolve(ctx, actor, id, domain.CollaborationAccepted)
}

// Decline resolves a pending request to declined.
func (s *CollaborationServiceImpl) Decline(ctx context.Context, actor *domain.Account, id string) (*domain.Collaboration, error) {
	return s.resolve(ctx, actor, id, domain.CollaborationDeclined)
}

// resolve performs a terminal transition. Only the target account may act,
// and only while the request is still pending.
func (s *CollaborationServiceImpl) resolve(ctx context.Context, actor *domain.Account, id string, to domain.CollaborationStatus) (*domain.Collaboration, error) {
	if _, err := RequireRole(actor, domain.RoleArtist); err != nil {
		return nil, err
	}

	c, err := s.collaborations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.TargetArtistID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if !c.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidCollaborationTransition, c.Status, to)
	}

	resolved, err := s.collaborations.Resolve(ctx, id, to)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("collaboration_id", id).Str("status", string(to)).Msg("collaboration resolved")
	return resolved, nil
}

// ListForAccount returns the requests the account participates in, in either direction.
func (s *CollaborationServiceImpl) ListForAccount(ctx context.Context, account *domain.Account) ([]*domain.Collaboration, error) {
	if _, err := RequireRole(account, domain.RoleArtist); err != nil {
		return nil, err
	}
	return s.collaborations.ListForAccount(ctx, account.ID)
}
