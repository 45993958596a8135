package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaadination/gallery-api/internal/storage"
)

func newTestRouter(store storage.Storage) http.Handler {
	h := NewHandler(NewService(store))
	r := chi.NewRouter()
	r.Get("/images/*", h.Serve)
	r.Get("/api/images", h.List)
	r.Get("/api/images/{category}", h.ListByCategory)
	r.Post("/api/upload", h.Upload)
	r.Delete("/api/delete", h.Delete)
	return r
}

// multipartBody builds a multipart form with one file part carrying an
// explicit content type, plus any extra string fields.
func multipartBody(t *testing.T, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestListByCategoryValidation(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStorage())

	for _, category := range Categories {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/"+category, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "category %q", category)
	}

	for _, category := range []string{"wedding", "CEREMONY", "mehendi2", "..", "gallery"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/"+category, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "category %q", category)
		assert.Equal(t, "Invalid category", errorBody(t, rec))
	}
}

func TestListEmptyCategoryReturnsEmptyArray(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStorage())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/sangeet", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"images":[],"categories":[]}`, rec.Body.String())
}

func TestUploadValidation(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStorage())

	t.Run("missing file", func(t *testing.T) {
		body, contentType := multipartBody(t, "", "", nil, map[string]string{"category": "ceremony"})
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file provided", errorBody(t, rec))
	})

	t.Run("invalid category lists the valid set", func(t *testing.T) {
		body, contentType := multipartBody(t, "a.png", "image/png", []byte("png"), map[string]string{"category": "honeymoon"})
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid category. Must be one of: "+strings.Join(Categories, ", "), errorBody(t, rec))
	})

	t.Run("non-image content type", func(t *testing.T) {
		body, contentType := multipartBody(t, "notes.txt", "text/plain", []byte("hello"), map[string]string{"category": "ceremony"})
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "File must be an image", errorBody(t, rec))
	})
}

func TestDeleteValidation(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStorage())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not json", body: "category=x", want: "Invalid request body"},
		{name: "missing filename", body: `{"category":"ceremony"}`, want: "Category and filename are required"},
		{name: "missing category", body: `{"filename":"a.jpg"}`, want: "Category and filename are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("DELETE", "/api/delete", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorBody(t, rec))
		})
	}
}

func TestDeleteMissingImageReturns404(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStorage())

	req := httptest.NewRequest("DELETE", "/api/delete", strings.NewReader(`{"category":"ceremony","filename":"ghost.jpg"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Image not found", errorBody(t, rec))
}

func TestServeImage(t *testing.T) {
	store := storage.NewMemoryStorage()
	data := []byte("fake png bytes")
	require.NoError(t, store.Upload(context.Background(), "gallery/ceremony/pic.png", bytes.NewReader(data), int64(len(data)), "image/png"))
	router := newTestRouter(store)

	t.Run("existing object streams with caching headers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/images/gallery/ceremony/pic.png", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, data, rec.Body.Bytes())
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=31536000", rec.Header().Get("Cache-Control"))
		assert.NotEmpty(t, rec.Header().Get("ETag"))
	})

	t.Run("missing object is plain text 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/images/gallery/ceremony/missing.png", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not Found\n", rec.Body.String())
	})
}

func TestServeImageDefaultsContentType(t *testing.T) {
	store := storage.NewMemoryStorage()
	data := []byte("mystery bytes")
	require.NoError(t, store.Upload(context.Background(), "gallery/ceremony/legacy", bytes.NewReader(data), int64(len(data)), ""))
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/images/gallery/ceremony/legacy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
}
