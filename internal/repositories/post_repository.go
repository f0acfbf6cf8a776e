package repositories

import (
	"context"

	"github.com/GraceInCode/odin-book/internal/models"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID loads a post with its author, likes, and comments (newest
	// first, with comment authors). Returns apperrors.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// ListByAuthors returns posts whose author is in userIDs, ordered
	// created_at DESC with id DESC as the tie-break, fully annotated.
	ListByAuthors(ctx context.Context, userIDs []string) ([]models.Post, error)
	// Exists reports whether a post with the given ID is present.
	Exists(ctx context.Context, id string) (bool, error)
}
