package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/models"
)

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{db: db}
}

// Create inserts a PENDING edge for the pair. The idx_follow_pair unique
// index rejects duplicates, which closes the check-then-insert race.
func (r *GORMFollowRepository) Create(ctx context.Context, followerID, followedID string) error {
	f := &models.Follow{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FollowedID: followedID,
		Status:     models.FollowStatusPending,
	}
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("follow edge %s -> %s: %w", followerID, followedID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create follow edge: %w", err)
	}
	return nil
}

// UpdateStatusIfPending performs the PENDING -> status transition as one
// conditional UPDATE. Zero rows affected means no pending edge existed.
func (r *GORMFollowRepository) UpdateStatusIfPending(ctx context.Context, followerID, followedID string, status models.FollowStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ? AND status = ?", followerID, followedID, models.FollowStatusPending).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update follow edge: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pending follow edge %s -> %s: %w", followerID, followedID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes the edge for the pair in any status.
func (r *GORMFollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete follow edge: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow edge %s -> %s: %w", followerID, followedID, apperrors.ErrNotFound)
	}
	return nil
}

// ListPending returns pending requests addressed to followedID.
func (r *GORMFollowRepository) ListPending(ctx context.Context, followedID string) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("followed_id = ? AND status = ?", followedID, models.FollowStatusPending).
		Order("created_at DESC, id DESC").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return follows, nil
}

// ListAcceptedFollowingIDs returns the accepted set of followerID.
func (r *GORMFollowRepository) ListAcceptedFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ? AND status = ?", followerID, models.FollowStatusAccepted).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted following: %w", err)
	}
	return ids, nil
}

// ListAcceptedFollowers returns accepted edges pointing at followedID.
func (r *GORMFollowRepository) ListAcceptedFollowers(ctx context.Context, followedID string) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("followed_id = ? AND status = ?", followedID, models.FollowStatusAccepted).
		Order("created_at DESC, id DESC").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted followers: %w", err)
	}
	return follows, nil
}

// ListByFollower returns every edge originating from followerID.
func (r *GORMFollowRepository) ListByFollower(ctx context.Context, followerID string) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list follows for %s: %w", followerID, err)
	}
	return follows, nil
}
