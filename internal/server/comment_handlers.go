package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

type addCommentRequest struct {
	Content string `json:"content"`
}

// AddComment handles POST /api/posts/:id/comments. Comments are append-only;
// the response is the post with its full comment thread.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AddComment(c.UserContext(), caller(c), c.Params("id"), req.Content)
	if err != nil {
		return fail(c, err)
	}

	return created(c, post)
}
