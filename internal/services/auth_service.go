package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/GraceInCode/odin-book/internal/apperrors"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/repositories"
)

// GuestUsername is the shared read-only account. The NotGuest middleware
// blocks it from mutating endpoints.
const GuestUsername = "guest"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// gravatarURL derives the default identicon avatar from an email address.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}

// Register registers a new user, hashes their password, assigns a default
// avatar, and saves them. A taken username or email yields ErrConflict.
func (s *AuthService) Register(ctx context.Context, user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(ctx, user.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken: %w", user.Username, apperrors.ErrConflict)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, apperrors.ErrConflict)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if user.ProfilePicture == "" {
		user.ProfilePicture = gravatarURL(user.Email)
	}

	// The unique indexes still catch a racing duplicate registration.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user and returns a JWT token if successful.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	return s.issueToken(user)
}

// GuestLogin lazily creates the shared guest account and issues a token
// for it without a password exchange.
func (s *AuthService) GuestLogin(ctx context.Context) (string, error) {
	guest, err := s.userRepo.GetByUsername(ctx, GuestUsername)
	if errors.Is(err, apperrors.ErrNotFound) {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte("guestpw"), bcrypt.DefaultCost)
		if hashErr != nil {
			return "", fmt.Errorf("failed to hash guest password: %w", hashErr)
		}
		guest = &models.User{
			Username:       GuestUsername,
			Email:          "guest@example.com",
			Password:       string(hashed),
			Bio:            "Guest account - read-only",
			ProfilePicture: gravatarURL("guest@example.com"),
		}
		if createErr := s.userRepo.Create(ctx, guest); createErr != nil {
			// A concurrent guest login may have created it first.
			if errors.Is(createErr, apperrors.ErrConflict) {
				guest, err = s.userRepo.GetByUsername(ctx, GuestUsername)
				if err != nil {
					return "", fmt.Errorf("failed to load guest account: %w", err)
				}
			} else {
				return "", fmt.Errorf("failed to create guest account: %w", createErr)
			}
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to load guest account: %w", err)
	}

	return s.issueToken(guest)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
}
