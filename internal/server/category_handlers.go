package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories. The list is served through the
// cache when Redis is available.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.UserContext())
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to list categories", "error", err)
		return fail(c, models.NewInternalError(err))
	}

	return ok(c, categories)
}
