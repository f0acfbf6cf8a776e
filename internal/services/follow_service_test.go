package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/services"
)

// MockFollowRepository is a mock implementation of repositories.FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followedID string) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) UpdateStatusIfPending(ctx context.Context, followerID, followedID string, status models.FollowStatus) error {
	args := m.Called(ctx, followerID, followedID, status)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) ListPending(ctx context.Context, followedID string) ([]models.Follow, error) {
	args := m.Called(ctx, followedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) ListAcceptedFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFollowRepository) ListAcceptedFollowers(ctx context.Context, followedID string) ([]models.Follow, error) {
	args := m.Called(ctx, followedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) ListByFollower(ctx context.Context, followerID string) ([]models.Follow, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func newFollowService(followRepo *MockFollowRepository, userRepo *MockUserRepository, pub *MockEventPublisher) *services.FollowService {
	if pub == nil {
		return services.NewFollowService(followRepo, userRepo, nil, nil)
	}
	return services.NewFollowService(followRepo, userRepo, nil, pub)
}

func TestFollowService_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("self follow is rejected without touching the ledger", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		svc := newFollowService(followRepo, userRepo, nil)

		err := svc.Request(ctx, "user-a", "user-a")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		followRepo.AssertNotCalled(t, "Create")
	})

	t.Run("missing ids are rejected", func(t *testing.T) {
		svc := newFollowService(new(MockFollowRepository), new(MockUserRepository), nil)
		assert.ErrorIs(t, svc.Request(ctx, "", "user-b"), apperrors.ErrValidation)
		assert.ErrorIs(t, svc.Request(ctx, "user-a", ""), apperrors.ErrValidation)
	})

	t.Run("unknown followed user is a not-found", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		svc := newFollowService(followRepo, userRepo, nil)

		userRepo.On("GetByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()
		err := svc.Request(ctx, "user-a", "ghost")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		followRepo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate pair surfaces the storage conflict", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		svc := newFollowService(followRepo, userRepo, nil)

		userRepo.On("GetByID", ctx, "user-b").Return(&models.User{ID: "user-b"}, nil).Twice()
		followRepo.On("Create", ctx, "user-a", "user-b").Return(nil).Once()
		followRepo.On("Create", ctx, "user-a", "user-b").
			Return(fmt.Errorf("edge exists: %w", apperrors.ErrConflict)).Once()

		assert.NoError(t, svc.Request(ctx, "user-a", "user-b"))
		assert.ErrorIs(t, svc.Request(ctx, "user-a", "user-b"), apperrors.ErrConflict)
		followRepo.AssertExpectations(t)
	})

	t.Run("edges are directional: the reverse request is independent", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		svc := newFollowService(followRepo, userRepo, nil)

		userRepo.On("GetByID", ctx, "user-a").Return(&models.User{ID: "user-a"}, nil).Once()
		followRepo.On("Create", ctx, "user-b", "user-a").Return(nil).Once()

		assert.NoError(t, svc.Request(ctx, "user-b", "user-a"))
		followRepo.AssertExpectations(t)
	})

	t.Run("a follow.requested event is published", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		pub := new(MockEventPublisher)
		svc := newFollowService(followRepo, userRepo, pub)

		userRepo.On("GetByID", ctx, "user-b").Return(&models.User{ID: "user-b"}, nil).Once()
		followRepo.On("Create", ctx, "user-a", "user-b").Return(nil).Once()
		pub.On("Publish", "", services.EventFollowRequested, mock.Anything).Return(nil).Once()

		assert.NoError(t, svc.Request(ctx, "user-a", "user-b"))
		pub.AssertExpectations(t)
	})
}

func TestFollowService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid decision is rejected before any mutation", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		svc := newFollowService(followRepo, new(MockUserRepository), nil)

		err := svc.Resolve(ctx, "user-b", "user-a", models.FollowStatusPending)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		followRepo.AssertNotCalled(t, "UpdateStatusIfPending")
	})

	t.Run("accept transitions the pending edge", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		pub := new(MockEventPublisher)
		svc := newFollowService(followRepo, new(MockUserRepository), pub)

		followRepo.On("UpdateStatusIfPending", ctx, "user-a", "user-b", models.FollowStatusAccepted).
			Return(nil).Once()
		pub.On("Publish", "", services.EventFollowAccepted, mock.Anything).Return(nil).Once()

		// user-b resolves the request that user-a sent.
		assert.NoError(t, svc.Resolve(ctx, "user-b", "user-a", models.FollowStatusAccepted))
		followRepo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("reject does not publish an accepted event", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		pub := new(MockEventPublisher)
		svc := newFollowService(followRepo, new(MockUserRepository), pub)

		followRepo.On("UpdateStatusIfPending", ctx, "user-a", "user-b", models.FollowStatusRejected).
			Return(nil).Once()

		assert.NoError(t, svc.Resolve(ctx, "user-b", "user-a", models.FollowStatusRejected))
		pub.AssertNotCalled(t, "Publish")
	})

	t.Run("missing or already-resolved edge is a not-found", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		svc := newFollowService(followRepo, new(MockUserRepository), nil)

		followRepo.On("UpdateStatusIfPending", ctx, "user-a", "user-b", models.FollowStatusAccepted).
			Return(fmt.Errorf("no pending edge: %w", apperrors.ErrNotFound)).Once()

		err := svc.Resolve(ctx, "user-b", "user-a", models.FollowStatusAccepted)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFollowService_Revoke(t *testing.T) {
	ctx := context.Background()

	followRepo := new(MockFollowRepository)
	svc := newFollowService(followRepo, new(MockUserRepository), nil)

	followRepo.On("Delete", ctx, "user-a", "user-b").Return(nil).Once()
	assert.NoError(t, svc.Revoke(ctx, "user-a", "user-b"))

	followRepo.On("Delete", ctx, "user-a", "user-b").
		Return(fmt.Errorf("no edge: %w", apperrors.ErrNotFound)).Once()
	assert.ErrorIs(t, svc.Revoke(ctx, "user-a", "user-b"), apperrors.ErrNotFound)
	followRepo.AssertExpectations(t)
}

func TestFollowService_ListPending(t *testing.T) {
	ctx := context.Background()

	followRepo := new(MockFollowRepository)
	svc := newFollowService(followRepo, new(MockUserRepository), nil)

	followRepo.On("ListPending", ctx, "user-b").Return([]models.Follow{
		{
			FollowerID: "user-a",
			FollowedID: "user-b",
			Status:     models.FollowStatusPending,
			Follower:   &models.User{ID: "user-a", Username: "alice"},
		},
	}, nil).Once()

	requests, err := svc.ListPending(ctx, "user-b")
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, "user-a", requests[0].FollowerID)
	assert.Equal(t, "alice", requests[0].Username)
}
