package handlers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GraceInCode/odin-book/internal/middleware"
	"github.com/GraceInCode/odin-book/internal/models"
	"github.com/GraceInCode/odin-book/internal/services"
)

// FollowHandler handles HTTP requests for follow relationships.
type FollowHandler struct {
	followService *services.FollowService
	validate      *validator.Validate
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the follow routes with the Fiber app.
// The mutating routes additionally require a non-guest user.
func (h *FollowHandler) RegisterRoutes(router fiber.Router) {
	followRoutes := router.Group("/follows")
	followRoutes.Post("/", middleware.NotGuest(), h.HandleRequest)
	followRoutes.Put("/:followerId", h.HandleResolve)
	followRoutes.Delete("/:followedId", h.HandleRevoke)
	followRoutes.Get("/requests", h.HandleListPending)
}

// FollowRequestBody is the payload for creating a follow request.
type FollowRequestBody struct {
	FollowedID string `json:"followed_id" validate:"required,uuid"`
}

// HandleRequest creates a PENDING follow edge from the authenticated
// user toward the requested user.
func (h *FollowHandler) HandleRequest(c *fiber.Ctx) error {
	var req FollowRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.followService.Request(c.Context(), middleware.UserID(c), req.FollowedID); err != nil {
		log.Printf("Error creating follow request: %v", err)
		return respondError(c, err, "Follow request already sent or accepted.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Follow request sent!",
	})
}

// ResolveRequestBody is the payload for accepting or rejecting a
// pending request.
type ResolveRequestBody struct {
	Status models.FollowStatus `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
}

// HandleResolve accepts or rejects a pending request addressed to the
// authenticated user. The follower being resolved comes from the path.
func (h *FollowHandler) HandleResolve(c *fiber.Ctx) error {
	followerID := c.Params("followerId")

	var req ResolveRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.followService.Resolve(c.Context(), middleware.UserID(c), followerID, req.Status); err != nil {
		log.Printf("Error resolving follow request: %v", err)
		return respondError(c, err, "No pending request found.")
	}

	return c.JSON(fiber.Map{
		"message": "Follow request " + strings.ToLower(string(req.Status)) + "!",
	})
}

// HandleRevoke deletes the authenticated user's follow edge toward the
// user in the path (unfollow, or withdrawal of a pending request).
func (h *FollowHandler) HandleRevoke(c *fiber.Ctx) error {
	followedID := c.Params("followedId")

	if err := h.followService.Revoke(c.Context(), middleware.UserID(c), followedID); err != nil {
		log.Printf("Error revoking follow: %v", err)
		return respondError(c, err, "No follow to remove.")
	}

	return c.JSON(fiber.Map{
		"message": "Unfollowed successfully.",
	})
}

// HandleListPending lists the pending follow requests addressed to the
// authenticated user.
func (h *FollowHandler) HandleListPending(c *fiber.Ctx) error {
	requests, err := h.followService.ListPending(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing pending requests: %v", err)
		return respondError(c, err, "Could not list pending requests")
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}
