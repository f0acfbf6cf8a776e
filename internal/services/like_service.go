package services

import (
	"context"
	"fmt"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// LikeService handles business logic for likes.
type LikeService struct {
	likeRepo repositories.LikeRepository
	postRepo repositories.PostRepository
}

// NewLikeService creates a new LikeService.
func NewLikeService(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// Like records that userID liked postID. The post must exist; liking it
// twice is an ErrConflict raised by the storage unique constraint, and
// the like count is unchanged.
func (s *LikeService) Like(ctx context.Context, userID, postID string) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("post with ID %s: %w", postID, apperrors.ErrNotFound)
	}
	return s.likeRepo.Create(ctx, userID, postID)
}

// Unlike removes userID's like on postID. The pair key means a user can
// only ever remove their own like.
func (s *LikeService) Unlike(ctx context.Context, userID, postID string) error {
	return s.likeRepo.Delete(ctx, userID, postID)
}
