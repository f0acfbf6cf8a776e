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

// LikeRepository defines the interface for like data access.
type LikeRepository interface {
	// Create inserts a like. Returns apperrors.ErrConflict when the
	// (user, post) pair is already liked.
	Create(ctx context.Context, userID, postID string) error
	// Delete removes the like for the pair. Returns apperrors.ErrNotFound
	// when no like exists.
	Delete(ctx context.Context, userID, postID string) error
	// CountForPost returns the number of likes on a post.
	CountForPost(ctx context.Context, postID string) (int64, error)
}

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{db: db}
}

// Create inserts a like. The idx_like_pair unique index makes a repeat
// like fail here rather than in an application-level existence check.
func (r *GORMLikeRepository) Create(ctx context.Context, userID, postID string) error {
	l := &models.Like{ID: uuid.New().String(), UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("like by %s on post %s: %w", userID, postID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// Delete removes the like for the (user, post) pair.
func (r *GORMLikeRepository) Delete(ctx context.Context, userID, postID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like by %s on post %s: %w", userID, postID, apperrors.ErrNotFound)
	}
	return nil
}

// CountForPost returns the number of likes on a post.
func (r *GORMLikeRepository) CountForPost(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&cnt).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes for post %s: %w", postID, err)
	}
	return cnt, nil
}
