package services

import (
	"context"

	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// Profile is a user together with their posts and accepted followers.
type Profile struct {
	User      *models.User         `json:"user"`
	Posts     []models.Post        `json:"posts"`
	Followers []models.UserSummary `json:"followers"`
}

// UserListing is the users index: all users plus, for the requesting
// user, the status of any outgoing follow edge keyed by followed ID.
type UserListing struct {
	Users     []models.User                  `json:"users"`
	FollowMap map[string]models.FollowStatus `json:"follow_map"`
}

// UserService handles profile reads and edits.
type UserService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	postRepo   repositories.PostRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, postRepo repositories.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo, postRepo: postRepo}
}

// GetProfile returns a user's profile: the user, their posts newest
// first (with likes and comments), and their accepted followers.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthors(ctx, []string{userID})
	if err != nil {
		return nil, err
	}

	edges, err := s.followRepo.ListAcceptedFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers := make([]models.UserSummary, 0, len(edges))
	for _, f := range edges {
		if f.Follower != nil {
			followers = append(followers, f.Follower.Summary())
		}
	}

	return &Profile{User: user, Posts: posts, Followers: followers}, nil
}

// ListUsers returns every user and, for requesterID, a map from followed
// user ID to the status of the requester's edge toward them. The map
// drives the follow/pending/unfollow controls on the users page.
func (s *UserService) ListUsers(ctx context.Context, requesterID string) (*UserListing, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	followMap := make(map[string]models.FollowStatus)
	if requesterID != "" {
		edges, err := s.followRepo.ListByFollower(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		for _, f := range edges {
			followMap[f.FollowedID] = f.Status
		}
	}

	return &UserListing{Users: users, FollowMap: followMap}, nil
}

// UpdateProfile updates the caller's bio and, when non-empty, their
// profile picture URL. The target is always the authenticated user, so
// cross-user edits cannot be expressed.
func (s *UserService) UpdateProfile(ctx context.Context, userID, bio, profilePicture string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Bio = bio
	if profilePicture != "" {
		user.ProfilePicture = profilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
