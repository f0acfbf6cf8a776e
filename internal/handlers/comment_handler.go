package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GraceInCode/odin-book/internal/middleware"
	"github.com/GraceInCode/odin-book/internal/services"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	commentService *services.CommentService
	validate       *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the comment routes with the Fiber app.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	commentRoutes := router.Group("/comments")
	commentRoutes.Post("/", middleware.NotGuest(), h.HandleCreateComment)
	commentRoutes.Delete("/:id", h.HandleDeleteComment)
}

// CreateCommentRequest is the payload for creating a comment.
type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required,uuid"`
	Content string `json:"content" validate:"required"`
}

// HandleCreateComment attaches a comment to a post.
func (h *CommentHandler) HandleCreateComment(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	comment, err := h.commentService.Create(c.Context(), middleware.UserID(c), req.PostID, req.Content)
	if err != nil {
		log.Printf("Error creating comment: %v", err)
		return respondError(c, err, "Invalid comment.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Commented!",
		"comment": comment,
	})
}

// HandleDeleteComment removes a comment by ID.
func (h *CommentHandler) HandleDeleteComment(c *fiber.Ctx) error {
	if err := h.commentService.Delete(c.Context(), c.Params("id")); err != nil {
		log.Printf("Error deleting comment %s: %v", c.Params("id"), err)
		return respondError(c, err, "Invalid comment.")
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted.",
	})
}
