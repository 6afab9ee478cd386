package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/models"
)

func TestUploadImage(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	user := seedUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	app := newTestApp(s, user.ID, user.Role)

	t.Run("Missing File", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		if err := writer.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/posts/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if env.Error != "Please upload a file" {
			t.Fatalf("unexpected error message: %q", env.Error)
		}
	})

	t.Run("Rejects Non-Image Extension", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("image", "payload.exe")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("not an image")); err != nil {
			t.Fatalf("write part: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/posts/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Stores Image And Returns Path", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("image", "cover.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte{0x89, 0x50, 0x4e, 0x47}); err != nil {
			t.Fatalf("write part: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/posts/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		var data struct {
			Filename string `json:"filename"`
			Path     string `json:"path"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if !strings.HasSuffix(data.Filename, ".png") {
			t.Fatalf("expected .png filename, got %q", data.Filename)
		}
		if data.Path != "/uploads/"+data.Filename {
			t.Fatalf("unexpected path: %q", data.Path)
		}
		if _, err := os.Stat(filepath.Join(s.config.UploadDir, data.Filename)); err != nil {
			t.Fatalf("uploaded file missing on disk: %v", err)
		}
	})
}
