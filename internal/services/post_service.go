package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/cache"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// PostService handles post creation and feed composition.
type PostService struct {
	postRepo       repositories.PostRepository
	followRepo     repositories.FollowRepository
	followingCache *cache.FollowingCache
	publisher      EventPublisher
}

// NewPostService creates a new PostService. followingCache and publisher
// may be nil.
func NewPostService(postRepo repositories.PostRepository, followRepo repositories.FollowRepository, followingCache *cache.FollowingCache, publisher EventPublisher) *PostService {
	return &PostService{
		postRepo:       postRepo,
		followRepo:     followRepo,
		followingCache: followingCache,
		publisher:      publisher,
	}
}

// Create stores a new post for userID. Content must be non-empty after
// trimming; imageURL is optional and points at an external object store.
func (s *PostService) Create(ctx context.Context, userID, content, imageURL string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("content is required: %w", apperrors.ErrValidation)
	}

	post := &models.Post{
		UserID:   userID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	publishEvent(s.publisher, EventPostCreated, map[string]interface{}{
		"post_id": post.ID,
		"user_id": userID,
	})
	return post, nil
}

// GetByID returns a single post annotated with author, likes, and
// comments (newest first).
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetFeed composes the posts visible to userID: posts authored by the
// users in their accepted set plus their own, ordered newest first with
// id descending as a deterministic tie-break.
func (s *PostService) GetFeed(ctx context.Context, userID string) ([]models.Post, error) {
	ids, err := s.visibleAuthors(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthors(ctx, ids)
}

// visibleAuthors returns the accepted-following set of userID plus the
// user themselves, consulting the cache when configured.
func (s *PostService) visibleAuthors(ctx context.Context, userID string) ([]string, error) {
	ids, ok := s.followingCache.Get(ctx, userID)
	if !ok {
		var err error
		ids, err = s.followRepo.ListAcceptedFollowingIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.followingCache.Set(ctx, userID, ids)
	}
	return append(ids, userID), nil
}
