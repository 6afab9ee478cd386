package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts. Returns a page of published posts,
// optionally filtered by category, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, limit := parsePageLimit(c)
	category := c.Query("category")

	result, err := s.postService.ListPosts(c.UserContext(), page, limit, category)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to list posts", "error", err)
		return fail(c, err)
	}

	return paginated(c, result.Posts, result.Pagination)
}

// SearchPosts handles GET /api/posts/search?q=term. Matches published posts
// by title, content, or tags, case-insensitively.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	posts, err := s.postService.SearchPosts(c.UserContext(), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, posts)
}

// GetPost handles GET /api/posts/:id. The path parameter is classified once:
// a 24-char hex string is an ID, anything else is a slug. Each successful
// fetch increments the post's view counter.
func (s *Server) GetPost(c *fiber.Ctx) error {
	key := models.ParseLookupKey(c.Params("id"))

	post, err := s.postService.GetPost(c.UserContext(), key)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, post)
}

// CreatePost handles POST /api/posts. The authenticated caller becomes the
// author.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var input service.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), caller(c), input)
	if err != nil {
		return fail(c, err)
	}

	return created(c, post)
}

// UpdatePost handles PUT /api/posts/:id. Only the post's author or an admin
// may update; absent fields are left unchanged.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var input service.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), caller(c), c.Params("id"), input)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, post)
}

// DeletePost handles DELETE /api/posts/:id. Only the post's author or an
// admin may delete. Comments are removed with the post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.DeletePost(c.UserContext(), caller(c), c.Params("id")); err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{})
}
