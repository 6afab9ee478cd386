package server

import (
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadImage handles POST /api/posts/upload. Accepts a multipart form with
// an "image" field, stores the file under a fresh random name, and returns
// the public path to reference as a post's featured image.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, models.NewValidationError("Please upload a file"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fail(c, models.NewValidationError("Please upload an image file"))
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return fail(c, models.NewInternalError(err))
	}

	filename := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(s.config.UploadDir, filename)); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to save upload", "error", err)
		return fail(c, models.NewInternalError(err))
	}

	return ok(c, fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}
