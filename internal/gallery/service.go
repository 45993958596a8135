package gallery

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaadination/gallery-api/internal/storage"
)

// keyPrefix namespaces every gallery object in the bucket.
const keyPrefix = "gallery/"

// ListResult is the payload of the listing endpoints.
type ListResult struct {
	Images     []Image  `json:"images"`
	Categories []string `json:"categories"`
}

// Service contains the gallery's business logic over an object store.
type Service struct {
	store storage.Storage
}

// NewService creates a new gallery Service.
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// List returns the images under gallery/ (or gallery/<category>/ when
// category is non-empty) together with the categories they span. Objects
// with fewer than three key segments, an empty filename, or zero size are
// partial or aborted uploads and are excluded. Images come back sorted by
// upload time descending (key ascending as tie-break) and categories sorted
// ascending, so listings are deterministic regardless of store order.
func (s *Service) List(ctx context.Context, baseURL, category string) (ListResult, error) {
	prefix := keyPrefix
	if category != "" {
		prefix = keyPrefix + category + "/"
	}

	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return ListResult{}, fmt.Errorf("list objects: %w", err)
	}

	images := make([]Image, 0, len(objects))
	seen := make(map[string]bool)
	for _, obj := range objects {
		parts := strings.Split(obj.Key, "/")
		if len(parts) < 3 {
			continue
		}
		cat := parts[1]
		filename := strings.Join(parts[2:], "/")
		if filename == "" || obj.Size == 0 {
			continue
		}
		seen[cat] = true

		images = append(images, Image{
			Key:      obj.Key,
			URL:      publicURL(baseURL, obj.Key),
			Category: cat,
			Filename: filename,
			Size:     obj.Size,
			Uploaded: obj.LastModified,
		})
	}

	sort.Slice(images, func(i, j int) bool {
		if !images[i].Uploaded.Equal(images[j].Uploaded) {
			return images[i].Uploaded.After(images[j].Uploaded)
		}
		return images[i].Key < images[j].Key
	})

	categories := make([]string, 0, len(seen))
	for cat := range seen {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	return ListResult{Images: images, Categories: categories}, nil
}

// Upload stores one image under a freshly generated key and returns it.
// The caller validates the category and content type; the filename is never
// taken from the client, which rules out collisions and path injection.
func (s *Service) Upload(ctx context.Context, baseURL, category, clientFilename, contentType string, r io.Reader, size int64) (Image, error) {
	filename := newFilename(clientFilename)
	key := keyPrefix + category + "/" + filename

	if err := s.store.Upload(ctx, key, r, size, contentType); err != nil {
		return Image{}, fmt.Errorf("upload image: %w", err)
	}

	return Image{
		Key:      key,
		URL:      publicURL(baseURL, key),
		Category: category,
		Filename: filename,
		Size:     size,
		Uploaded: time.Now().UTC(),
	}, nil
}

// Delete removes the image at gallery/<category>/<filename>. It returns
// storage.ErrNotFound when no such object exists, so a second delete of the
// same image fails.
func (s *Service) Delete(ctx context.Context, category, filename string) error {
	key := keyPrefix + category + "/" + filename

	if _, err := s.store.Stat(ctx, key); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// Open fetches the raw object at key for serving.
func (s *Service) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.store.Get(ctx, key)
}

func publicURL(baseURL, key string) string {
	return baseURL + "/images/" + key
}

// newFilename derives a collision-resistant object name from the upload
// time, a random suffix, and the client file's extension (jpg when absent).
// Uniqueness is probabilistic, not existence-checked.
func newFilename(clientFilename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(clientFilename), "."))
	if ext == "" {
		ext = "jpg"
	}
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), suffix, ext)
}
