// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danielhkuo/whisky-survey/auth"
	"github.com/danielhkuo/whisky-survey/cliparse"
	"github.com/danielhkuo/whisky-survey/middleware"
	"github.com/danielhkuo/whisky-survey/models"
)

const (
	// maxImageSize caps uploaded whisky images
	maxImageSize = 5 << 20
	// maxUploadSize leaves room for the other form fields
	maxUploadSize = maxImageSize + 1<<20
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

var errImageTooLarge = errors.New("image too large")

type AdminHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	sessions *auth.SessionStore
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, sessions *auth.SessionStore) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, sessions: sessions}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := auth.CheckPassword(req.Password, h.cfg.AdminPassword); err != nil {
		slog.Warn("admin login rejected", "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, expiresAt, err := h.sessions.Create(r.Context())
	if err != nil {
		slog.Error("failed to create admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("admin logged in", "expires_at", expiresAt)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
	})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := auth.BearerToken(r.Header.Get("Authorization"))
	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		slog.Error("failed to revoke admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Logged out",
	})
}

// RequireSession rejects requests without a valid admin session token
func (h *AdminHandler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		err = h.sessions.Validate(r.Context(), token)
		switch {
		case errors.Is(err, auth.ErrSessionNotFound):
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session")
			return
		case errors.Is(err, auth.ErrSessionExpired):
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Session expired")
			return
		case err != nil:
			slog.Error("failed to validate admin session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		next(w, r)
	}
}

// ListWhiskies handles GET /api/admin/whiskies
func (h *AdminHandler) ListWhiskies(w http.ResponseWriter, r *http.Request) {
	whiskies, err := loadWhiskies(r.Context(), h.db, true)
	if err != nil {
		slog.Error("failed to load whiskies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, whiskies)
}

// CreateWhisky handles POST /api/admin/whiskies (multipart: name, image)
func (h *AdminHandler) CreateWhisky(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	whisky := models.Whisky{
		ID:        auth.NewID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	case err != nil:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image upload")
		return
	default:
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExts[ext] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "image must be .jpg, .jpeg, .png, .webp or .gif")
			return
		}

		fileName := imageFileName(name, whisky.ID, ext)
		if err := saveImage(file, h.cfg.ImageDir, fileName); err != nil {
			if errors.Is(err, errImageTooLarge) {
				middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "image must be at most 5 MiB")
				return
			}
			slog.Error("failed to save image", "error", err, "file", fileName)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save image")
			return
		}
		whisky.ImagePath = &fileName
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO whisky (id, name, image_path, created_at)
		VALUES ($1, $2, $3, $4)
	`, whisky.ID, whisky.Name, whisky.ImagePath, whisky.CreatedAt)
	if err != nil {
		slog.Error("failed to insert whisky", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create whisky")
		return
	}

	slog.Info("whisky created", "whisky_id", whisky.ID, "name", whisky.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateWhiskyResponse{
		Success: true,
		Whisky:  whisky,
	})
}

// DeleteWhisky handles DELETE /api/admin/whiskies/{id}
func (h *AdminHandler) DeleteWhisky(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	// Responses and their tags cascade
	result, err := h.db.ExecContext(r.Context(), `DELETE FROM whisky WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete whisky", "error", err, "whisky_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Whisky not found")
		return
	}

	slog.Info("whisky deleted", "whisky_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Whisky deleted",
	})
}

// imageFileName builds "<sanitized-name><ext>", falling back to the ID
// when nothing of the name survives sanitizing
func imageFileName(name, id, ext string) string {
	base := sanitizeName(name)
	if base == "" {
		base = id
	}
	return base + ext
}

// sanitizeName lowercases name and keeps only [a-z0-9], joined by dashes
func sanitizeName(name string) string {
	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(c)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// saveImage writes src to dir/fileName via a temp file and rename
func saveImage(src multipart.File, dir, fileName string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(src, maxImageSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if n > maxImageSize {
		return errImageTooLarge
	}

	return os.Rename(tmp.Name(), filepath.Join(dir, fileName))
}
