package gallery

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shaadination/gallery-api/internal/response"
	"github.com/shaadination/gallery-api/internal/storage"
)

// Handler holds HTTP handlers for gallery endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new gallery Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type deleteRequest struct {
	Category string `json:"category"`
	Filename string `json:"filename"`
}

// List godoc
//
//	@Summary		List all images
//	@Description	Returns every valid gallery image across all categories, newest first.
//	@Tags			gallery
//	@Produce		json
//	@Success		200	{object}	ListResult
//	@Failure		500	{object}	map[string]string
//	@Router			/api/images [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(r.Context(), requestOrigin(r), "")
	if err != nil {
		slog.Error("list images", "error", err)
		response.InternalError(w, "Failed to list images")
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// ListByCategory godoc
//
//	@Summary		List images in a category
//	@Description	Returns the valid gallery images within a single category, newest first.
//	@Tags			gallery
//	@Produce		json
//	@Param			category	path		string	true	"Gallery category"
//	@Success		200			{object}	ListResult
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/api/images/{category} [get]
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !ValidCategory(category) {
		response.BadRequest(w, "Invalid category")
		return
	}

	result, err := h.svc.List(r.Context(), requestOrigin(r), category)
	if err != nil {
		slog.Error("list images", "category", category, "error", err)
		response.InternalError(w, "Failed to list images")
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Upload godoc
//
//	@Summary		Upload an image
//	@Description	Stores a new photo under the given category. The object name is generated server-side.
//	@Tags			gallery
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file		formData	file	true	"Image file"
//	@Param			category	formData	string	true	"Gallery category"
//	@Success		201	{object}	map[string]any
//	@Failure		400	{object}	map[string]string
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/api/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	category := r.FormValue("category")
	if !ValidCategory(category) {
		response.BadRequest(w, "Invalid category. Must be one of: "+strings.Join(Categories, ", "))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.BadRequest(w, "File must be an image")
		return
	}

	image, err := h.svc.Upload(r.Context(), requestOrigin(r), category, header.Filename, contentType, file, header.Size)
	if err != nil {
		slog.Error("upload image", "category", category, "error", err)
		response.InternalError(w, "Failed to upload image")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"image":   image,
	})
}

// Delete godoc
//
//	@Summary		Delete an image
//	@Description	Permanently removes the photo at gallery/<category>/<filename>.
//	@Tags			gallery
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		deleteRequest	true	"Image to remove"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/api/delete [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Category == "" || req.Filename == "" {
		response.BadRequest(w, "Category and filename are required")
		return
	}

	if err := h.svc.Delete(r.Context(), req.Category, req.Filename); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, "Image not found")
			return
		}
		slog.Error("delete image", "category", req.Category, "filename", req.Filename, "error", err)
		response.InternalError(w, "Failed to delete image")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image deleted",
	})
}

// Serve godoc
//
//	@Summary		Serve an image
//	@Description	Streams the raw object bytes. Responses are immutable by construction (object names are never reused), so intermediaries may cache them for a year.
//	@Tags			gallery
//	@Produce		image/jpeg
//	@Param			key	path	string	true	"Object store key"
//	@Success		200
//	@Failure		404
//	@Failure		500
//	@Router			/images/{key} [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	body, info, err := h.svc.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("serve image", "key", key, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = body.Close() }()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	if info.ETag != "" {
		w.Header().Set("ETag", info.ETag)
	}
	_, _ = io.Copy(w, body)
}

// requestOrigin rebuilds the request's own origin so image URLs point back
// at this service regardless of which hostname it is deployed behind.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
