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

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{db: db}
}

// newestComments orders preloaded comments newest first.
func newestComments(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// Create creates a new post.
func (r *GORMPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a single annotated post by its ID.
func (r *GORMPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Comments", newestComments).
		Preload("Comments.User").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// ListByAuthors retrieves the annotated posts of the given authors,
// newest first. Equal timestamps break on id descending so the order
// is deterministic.
func (r *GORMPostRepository) ListByAuthors(ctx context.Context, userIDs []string) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if len(userIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Comments", newestComments).
		Preload("Comments.User").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Exists reports whether a post with the given ID is present.
func (r *GORMPostRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("failed to check post %s: %w", id, err)
	}
	return cnt > 0, nil
}
