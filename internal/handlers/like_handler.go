package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GraceInCode/odin-book/internal/middleware"
	"github.com/GraceInCode/odin-book/internal/services"
)

// LikeHandler handles HTTP requests for likes.
type LikeHandler struct {
	likeService *services.LikeService
	validate    *validator.Validate
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the like routes with the Fiber app.
func (h *LikeHandler) RegisterRoutes(router fiber.Router) {
	likeRoutes := router.Group("/likes")
	likeRoutes.Post("/", middleware.NotGuest(), h.HandleCreateLike)
	likeRoutes.Delete("/:postId", h.HandleDeleteLike)
}

// CreateLikeRequest is the payload for liking a post.
type CreateLikeRequest struct {
	PostID string `json:"post_id" validate:"required,uuid"`
}

// HandleCreateLike records a like by the authenticated user.
func (h *LikeHandler) HandleCreateLike(c *fiber.Ctx) error {
	var req CreateLikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.likeService.Like(c.Context(), middleware.UserID(c), req.PostID); err != nil {
		log.Printf("Error creating like: %v", err)
		return respondError(c, err, "Already liked.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Liked!",
	})
}

// HandleDeleteLike removes the authenticated user's like on a post.
func (h *LikeHandler) HandleDeleteLike(c *fiber.Ctx) error {
	if err := h.likeService.Unlike(c.Context(), middleware.UserID(c), c.Params("postId")); err != nil {
		log.Printf("Error deleting like: %v", err)
		return respondError(c, err, "Invalid post.")
	}

	return c.JSON(fiber.Map{
		"message": "Unliked.",
	})
}
