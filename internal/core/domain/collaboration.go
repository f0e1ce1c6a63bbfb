package domain

import (
	"errors"
	"time"
)

// CollaborationStatus represents the lifecycle state of a collaboration request.
type CollaborationStatus string

const (
	CollaborationPending  CollaborationStatus = "pending"
	CollaborationAccepted CollaborationStatus = "accepted"
	CollaborationDeclined CollaborationStatus = "declined"
)

// validCollaborationTransitions defines the allowed state machine transitions.
// Accepted and declined are both terminal.
var validCollaborationTransitions = map[CollaborationStatus][]CollaborationStatus{
	CollaborationPending: {CollaborationAccepted, CollaborationDeclined},
}

var ErrCollaborationNotFound = errors.New("collaboration not found")
var ErrDuplicatePendingCollaboration = errors.New("a pending collaboration request already exists for this pair")
var ErrInvalidCollaborationTransition = errors.New("invalid collaboration status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s CollaborationStatus) CanTransitionTo(next CollaborationStatus) bool {
	for _, allowed := range validCollaborationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Collaboration is a directed request between two artist accounts. Only the
// target account may resolve it, and only while it is pending.
type Collaboration struct {
	ID             string              `json:"id"`
	RequesterID    string              `json:"requester_id"`
	TargetArtistID string              `json:"target_artist_id"`
	Message        string              `json:"message"`
	ProjectType    string              `json:"project_type,omitempty"`
	Status         CollaborationStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
