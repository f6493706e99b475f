// ABOUTME: Index synchronizer keeps the vector index consistent with the live catalog
// ABOUTME: Any divergence forces a full re-embed and an atomic index+manifest swap
package indexsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/harper/course-advisor/internal/catalog"
	"github.com/harper/course-advisor/internal/models"
	"github.com/harper/course-advisor/internal/vectorindex"
)

// Status reports what EnsureFresh did.
type Status string

const (
	// StatusFresh means the persisted index matched the catalog and was loaded as-is.
	StatusFresh Status = "fresh"
	// StatusRebuilt means every record was re-embedded and the index was rewritten.
	StatusRebuilt Status = "rebuilt"
)

// Embedder produces a fixed-dimension vector for a text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Options configures a Synchronizer.
type Options struct {
	IndexPath    string
	ManifestPath string
	// Dimension is the embedding model's output dimensionality; a persisted
	// index with any other dimension is treated as corrupt and rebuilt.
	Dimension int
	// ContentHash enables fingerprint comparison on top of the count check,
	// so content edits that preserve record count also trigger a rebuild.
	ContentHash bool
}

// Result describes the outcome of an EnsureFresh call.
type Result struct {
	Status  Status
	Courses int
}

// Synchronizer compares the live catalog against the index manifest and
// rebuilds the vector index when they diverge. Rebuilds are coarse on
// purpose: any divergence re-embeds every record, never a delta.
type Synchronizer struct {
	catalog  *catalog.Store
	embedder Embedder
	opts     Options
}

// New creates a Synchronizer for the given catalog.
func New(store *catalog.Store, embedder Embedder, opts Options) *Synchronizer {
	return &Synchronizer{catalog: store, embedder: embedder, opts: opts}
}

// EnsureFresh loads the persisted index when manifest and catalog agree, and
// rebuilds it otherwise. Post-condition either way: the returned index and
// the manifest on disk both have exactly one entry per live catalog record.
func (s *Synchronizer) EnsureFresh(ctx context.Context) (*vectorindex.FlatIndex, Result, error) {
	if s.isStale() {
		return s.rebuild(ctx)
	}

	ix, err := vectorindex.Load(s.opts.IndexPath, s.opts.Dimension)
	if err != nil {
		// Missing or corrupt index is staleness, not an error to surface.
		return s.rebuild(ctx)
	}
	if ix.Size() != s.catalog.Len() {
		return s.rebuild(ctx)
	}

	return ix, Result{Status: StatusFresh, Courses: s.catalog.Len()}, nil
}

// Rebuild forces a full re-embed regardless of manifest state.
func (s *Synchronizer) Rebuild(ctx context.Context) (*vectorindex.FlatIndex, Result, error) {
	return s.rebuild(ctx)
}

// isStale reports whether the manifest disagrees with the live catalog.
func (s *Synchronizer) isStale() bool {
	manifest, err := loadManifest(s.opts.ManifestPath)
	if err != nil {
		return true
	}
	if len(manifest) != s.catalog.Len() {
		return true
	}
	if s.opts.ContentHash && catalog.Fingerprint(manifest) != s.catalog.Fingerprint() {
		return true
	}
	return false
}

// rebuild re-embeds the whole catalog and atomically replaces the index and
// manifest. The index is written before the manifest: a crash in between
// leaves a mismatched manifest, which forces another rebuild on next start.
func (s *Synchronizer) rebuild(ctx context.Context) (*vectorindex.FlatIndex, Result, error) {
	courses := s.catalog.Courses()
	if len(courses) == 0 {
		return nil, Result{}, errors.New("cannot build index for empty catalog")
	}

	vectors := make([][]float64, len(courses))
	for i, course := range courses {
		vector, err := s.embedder.GenerateEmbedding(ctx, course.EmbeddingText())
		if err != nil {
			return nil, Result{}, fmt.Errorf("embedding course %d (%s): %w", i, course.Code, err)
		}
		if s.opts.Dimension > 0 && len(vector) != s.opts.Dimension {
			return nil, Result{}, fmt.Errorf("embedding course %d (%s): got dimension %d, want %d",
				i, course.Code, len(vector), s.opts.Dimension)
		}
		vectors[i] = vector
	}

	ix, err := vectorindex.Build(vectors)
	if err != nil {
		return nil, Result{}, fmt.Errorf("building index: %w", err)
	}

	if err := ix.Save(s.opts.IndexPath); err != nil {
		return nil, Result{}, fmt.Errorf("saving index: %w", err)
	}
	if err := saveManifest(s.opts.ManifestPath, courses); err != nil {
		return nil, Result{}, fmt.Errorf("saving manifest: %w", err)
	}

	return ix, Result{Status: StatusRebuilt, Courses: len(courses)}, nil
}

// loadManifest reads the ordered course sequence that was last embedded.
func loadManifest(path string) ([]models.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var courses []models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return courses, nil
}

// saveManifest writes the embedded course sequence atomically.
func saveManifest(path string, courses []models.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return vectorindex.WriteFileAtomic(path, data)
}
