package services

import (
	"context"
	"fmt"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/cache"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// PendingRequest is one entry of a user's incoming request list.
type PendingRequest struct {
	FollowerID string `json:"follower_id"`
	Username   string `json:"username"`
}

// FollowService enforces the follow-edge lifecycle:
// no edge -> PENDING -> {ACCEPTED, REJECTED}, with deletion (unfollow)
// as the only way out of a resolved state.
type FollowService struct {
	followRepo     repositories.FollowRepository
	userRepo       repositories.UserRepository
	followingCache *cache.FollowingCache
	publisher      EventPublisher
}

// NewFollowService creates a new FollowService. followingCache and
// publisher may be nil.
func NewFollowService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, followingCache *cache.FollowingCache, publisher EventPublisher) *FollowService {
	return &FollowService{
		followRepo:     followRepo,
		userRepo:       userRepo,
		followingCache: followingCache,
		publisher:      publisher,
	}
}

// Request creates a PENDING edge from follower to followed. Self-follows
// are rejected up front; a duplicate pair in any status is an ErrConflict
// raised by the storage unique constraint.
func (s *FollowService) Request(ctx context.Context, followerID, followedID string) error {
	if followerID == "" || followedID == "" {
		return fmt.Errorf("follower and followed ids are required: %w", apperrors.ErrValidation)
	}
	if followerID == followedID {
		return fmt.Errorf("cannot follow yourself: %w", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, followerID, followedID); err != nil {
		return err
	}

	publishEvent(s.publisher, EventFollowRequested, map[string]interface{}{
		"follower_id": followerID,
		"followed_id": followedID,
	})
	return nil
}

// Resolve transitions a PENDING edge addressed to followedID into
// ACCEPTED or REJECTED. The repository performs the transition as one
// conditional update, so a missing or already-resolved edge is an
// ErrNotFound with no mutation.
func (s *FollowService) Resolve(ctx context.Context, followedID, followerID string, decision models.FollowStatus) error {
	if decision != models.FollowStatusAccepted && decision != models.FollowStatusRejected {
		return fmt.Errorf("decision must be ACCEPTED or REJECTED: %w", apperrors.ErrValidation)
	}

	if err := s.followRepo.UpdateStatusIfPending(ctx, followerID, followedID, decision); err != nil {
		return err
	}

	// The follower's accepted set changed shape; drop their cached copy.
	s.followingCache.Invalidate(ctx, followerID)

	if decision == models.FollowStatusAccepted {
		publishEvent(s.publisher, EventFollowAccepted, map[string]interface{}{
			"follower_id": followerID,
			"followed_id": followedID,
		})
	}
	return nil
}

// Revoke deletes the follower's edge toward followedID in any status.
func (s *FollowService) Revoke(ctx context.Context, followerID, followedID string) error {
	if err := s.followRepo.Delete(ctx, followerID, followedID); err != nil {
		return err
	}
	s.followingCache.Invalidate(ctx, followerID)
	return nil
}

// ListPending returns the pending requests addressed to followedID,
// newest first.
func (s *FollowService) ListPending(ctx context.Context, followedID string) ([]PendingRequest, error) {
	follows, err := s.followRepo.ListPending(ctx, followedID)
	if err != nil {
		return nil, err
	}
	reqs := make([]PendingRequest, 0, len(follows))
	for _, f := range follows {
		r := PendingRequest{FollowerID: f.FollowerID}
		if f.Follower != nil {
			r.Username = f.Follower.Username
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// ListAcceptedFollowers returns the users whose follow request toward
// userID has been accepted, newest first.
func (s *FollowService) ListAcceptedFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	follows, err := s.followRepo.ListAcceptedFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers := make([]models.UserSummary, 0, len(follows))
	for _, f := range follows {
		if f.Follower != nil {
			followers = append(followers, f.Follower.Summary())
		}
	}
	return followers, nil
}
