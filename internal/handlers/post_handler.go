package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GraceInCode/odin-book/internal/middleware"
	"github.com/GraceInCode/odin-book/internal/services"
)

// PostHandler handles HTTP requests for posts and the feed.
type PostHandler struct {
	postService *services.PostService
	validate    *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the post routes with the Fiber app.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleGetFeed)
	postRoutes.Post("/", middleware.NotGuest(), h.HandleCreatePost)
	postRoutes.Get("/:id", h.HandleGetPost)
}

// CreatePostRequest is the payload for creating a post. The image, if
// any, has already been uploaded to the object store; only its URL is
// carried here.
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// HandleCreatePost creates a post owned by the authenticated user.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	post, err := h.postService.Create(c.Context(), middleware.UserID(c), req.Content, req.ImageURL)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		return respondError(c, err, "Content required.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created!",
		"post":    post,
	})
}

// HandleGetFeed returns the posts visible to the authenticated user,
// newest first.
func (h *PostHandler) HandleGetFeed(c *fiber.Ctx) error {
	posts, err := h.postService.GetFeed(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Printf("Error composing feed: %v", err)
		return respondError(c, err, "Could not load feed")
	}

	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

// HandleGetPost returns a single post with author, likes, and comments.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.postService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("Error getting post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Post not found.")
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}
