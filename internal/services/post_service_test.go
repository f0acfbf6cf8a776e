package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/services"
)

// MockPostRepository is a mock implementation of repositories.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthors(ctx context.Context, userIDs []string) ([]models.Post, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("content is trimmed and required", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		svc := services.NewPostService(postRepo, new(MockFollowRepository), nil, nil)

		_, err := svc.Create(ctx, "user-a", "   \t ", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		postRepo.AssertNotCalled(t, "Create")

		postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Content == "hello" && p.UserID == "user-a"
		})).Return(nil).Once()

		post, err := svc.Create(ctx, "user-a", "  hello  ", "")
		assert.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		postRepo.AssertExpectations(t)
	})

	t.Run("a post.created event is published", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pub := new(MockEventPublisher)
		svc := services.NewPostService(postRepo, new(MockFollowRepository), nil, pub)

		postRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		pub.On("Publish", "", services.EventPostCreated, mock.Anything).Return(nil).Once()

		_, err := svc.Create(ctx, "user-a", "hello", "https://img.example.com/p.png")
		assert.NoError(t, err)
		pub.AssertExpectations(t)
	})
}

func TestPostService_GetFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("visible set is the accepted following plus self", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		followRepo := new(MockFollowRepository)
		svc := services.NewPostService(postRepo, followRepo, nil, nil)

		followRepo.On("ListAcceptedFollowingIDs", ctx, "user-a").
			Return([]string{"user-b", "user-c"}, nil).Once()
		postRepo.On("ListByAuthors", ctx, []string{"user-b", "user-c", "user-a"}).
			Return([]models.Post{{ID: "p1", UserID: "user-b"}}, nil).Once()

		posts, err := svc.GetFeed(ctx, "user-a")
		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		followRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("own posts remain visible with zero accepted follows", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		followRepo := new(MockFollowRepository)
		svc := services.NewPostService(postRepo, followRepo, nil, nil)

		followRepo.On("ListAcceptedFollowingIDs", ctx, "user-a").
			Return([]string{}, nil).Once()
		postRepo.On("ListByAuthors", ctx, []string{"user-a"}).
			Return([]models.Post{{ID: "p-own", UserID: "user-a"}}, nil).Once()

		posts, err := svc.GetFeed(ctx, "user-a")
		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, "user-a", posts[0].UserID)
	})
}
