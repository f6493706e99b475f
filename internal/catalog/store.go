// ABOUTME: Catalog store loads the course catalog from disk, read-only after load
// ABOUTME: Preserves record order so catalog ordinals line up with index ordinals
package catalog

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harper/course-advisor/internal/models"
)

// Store holds the loaded course catalog. The ordinal position of each course
// is the same ordinal used in the vector index; the store never filters or
// reorders records, so that alignment holds from embedding time to query time.
type Store struct {
	path    string
	courses []models.Course
}

// Load reads a catalog file and returns a read-only Store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var courses []models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	return &Store{path: path, courses: courses}, nil
}

// Path returns the file the catalog was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of courses in the catalog.
func (s *Store) Len() int {
	return len(s.courses)
}

// At returns the course at the given ordinal position.
func (s *Store) At(ordinal int) (models.Course, bool) {
	if ordinal < 0 || ordinal >= len(s.courses) {
		return models.Course{}, false
	}
	return s.courses[ordinal], true
}

// Courses returns a copy of the catalog in load order.
func (s *Store) Courses() []models.Course {
	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// FindByCode returns the first course whose code matches. Codes are not
// guaranteed unique across scraper runs, so first match wins.
func (s *Store) FindByCode(code string) (models.Course, bool) {
	for _, c := range s.courses {
		if c.Code == code {
			return c, true
		}
	}
	return models.Course{}, false
}

// Fingerprint returns a content hash over the catalog's embedding texts.
func (s *Store) Fingerprint() string {
	return Fingerprint(s.courses)
}

// Fingerprint hashes the embedding text of each course in order. Two course
// sequences fingerprint equal exactly when they would embed identically.
func Fingerprint(courses []models.Course) string {
	h := sha256.New()
	for _, c := range courses {
		h.Write([]byte(c.EmbeddingText()))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
