package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GraceInCode/odin-book/internal/middleware"
	"github.com/GraceInCode/odin-book/internal/services"
)

// UserHandler handles HTTP requests for user listings and profiles.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Put("/me", middleware.NotGuest(), h.HandleUpdateProfile)
	userRoutes.Get("/:id", h.HandleGetProfile)
}

// HandleListUsers lists all users plus the requester's outgoing follow
// statuses.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	listing, err := h.userService.ListUsers(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, err, "Could not list users")
	}

	return c.JSON(listing)
}

// HandleGetProfile returns a user's profile with their posts and
// accepted followers.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("Error getting profile %s: %v", c.Params("id"), err)
		return respondError(c, err, "User not found.")
	}

	return c.JSON(profile)
}

// UpdateProfileRequest is the payload for editing the caller's profile.
type UpdateProfileRequest struct {
	Bio            string `json:"bio" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profile_picture" validate:"omitempty,url"`
}

// HandleUpdateProfile edits the authenticated user's bio and avatar.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.userService.UpdateProfile(c.Context(), middleware.UserID(c), req.Bio, req.ProfilePicture)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return respondError(c, err, "Update failed.")
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated!",
		"user":    user,
	})
}
