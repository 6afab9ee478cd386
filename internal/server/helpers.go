package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// caller builds the service-layer identity from the authenticated request.
// AuthRequired guarantees the locals are set on protected routes.
func caller(c *fiber.Ctx) service.Caller {
	id, _ := c.Locals("userID").(string)
	role, _ := c.Locals("userRole").(string)
	return service.Caller{ID: id, Role: role}
}

// parsePageLimit reads pagination query params with the API defaults.
func parsePageLimit(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// statusForError maps service error codes to HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the error envelope with the status derived from the error code.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// ok writes a 200 success envelope.
func ok(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(models.Response{
		Success: true,
		Data:    data,
	})
}

// created writes a 201 success envelope.
func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Data:    data,
	})
}

// paginated writes a 200 success envelope with a pagination block.
func paginated(c *fiber.Ctx, data any, p models.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(models.Response{
		Success:    true,
		Data:       data,
		Pagination: &p,
	})
}
