package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// CommentService handles business logic for comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create attaches a comment by userID to postID. The content must be
// non-empty after trimming and the post must exist.
func (s *CommentService) Create(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("content is required: %w", apperrors.ErrValidation)
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("post with ID %s: %w", postID, apperrors.ErrNotFound)
	}

	comment := &models.Comment{UserID: userID, PostID: postID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment by ID. Ownership of the comment is not
// checked; any authenticated non-guest user may delete any comment.
// This mirrors the observed behavior of the source application and may
// be an authorization gap rather than a deliberate choice.
func (s *CommentService) Delete(ctx context.Context, commentID string) error {
	return s.commentRepo.Delete(ctx, commentID)
}
