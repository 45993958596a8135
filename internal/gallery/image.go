// Package gallery implements the photo gallery: the image model, the fixed
// category registry, and the operations that read and write the object store.
package gallery

import "time"

// Categories is the fixed set of valid gallery sections. It doubles as the
// storage-key namespace under gallery/ and as the client-facing filter, and
// is never mutated at runtime.
var Categories = []string{"ceremony", "reception", "mehendi", "sangeet", "pre-wedding"}

// ValidCategory reports whether name is a member of the category registry.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Image represents one stored photo. Key is the object store identifier
// (gallery/<category>/<filename>); URL is computed per request from the
// request's own origin and is not persisted.
type Image struct {
	Key      string    `json:"key"`
	URL      string    `json:"url"`
	Category string    `json:"category"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Uploaded time.Time `json:"uploaded"`
}
