package repositories

import (
	"context"

	"github.com/GraceInCode/odin-book/internal/models"
)

// FollowRepository defines the interface for follow-edge data access.
//
// Every mutation is a single conditional statement so that concurrent
// request/resolve/revoke calls on the same edge serialize at the storage
// layer instead of racing through an application-level check.
type FollowRepository interface {
	// Create inserts a PENDING edge. Returns apperrors.ErrConflict when an
	// edge for the (follower, followed) pair already exists in any status.
	Create(ctx context.Context, followerID, followedID string) error
	// UpdateStatusIfPending transitions the edge to status only if it is
	// currently PENDING. Returns apperrors.ErrNotFound otherwise.
	UpdateStatusIfPending(ctx context.Context, followerID, followedID string, status models.FollowStatus) error
	// Delete removes the edge regardless of status. Returns
	// apperrors.ErrNotFound when no edge exists for the pair.
	Delete(ctx context.Context, followerID, followedID string) error
	// ListPending returns pending requests addressed to followedID,
	// newest first, with the Follower association loaded.
	ListPending(ctx context.Context, followedID string) ([]models.Follow, error)
	// ListAcceptedFollowingIDs returns the IDs of users that followerID
	// follows with status ACCEPTED.
	ListAcceptedFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	// ListAcceptedFollowers returns accepted edges pointing at followedID,
	// newest first, with the Follower association loaded.
	ListAcceptedFollowers(ctx context.Context, followedID string) ([]models.Follow, error)
	// ListByFollower returns every edge originating from followerID.
	ListByFollower(ctx context.Context, followerID string) ([]models.Follow, error)
}
