// ABOUTME: Tests for the index synchronizer's staleness policy and rebuilds
// ABOUTME: Uses a deterministic fake embedder, no network
package indexsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/course-advisor/internal/catalog"
	"github.com/harper/course-advisor/internal/vectorindex"
)

// fakeEmbedder produces a 3-dimensional vector derived from the text length,
// deterministic per input, and counts calls.
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float64, error) {
	f.calls++
	n := float64(len(text))
	return []float64{n, n / 2, 1}, nil
}

type failingEmbedder struct{}

func (failingEmbedder) GenerateEmbedding(context.Context, string) ([]float64, error) {
	return nil, errors.New("embedding service down")
}

func setup(t *testing.T, catalogJSON string) (*catalog.Store, Options) {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "courses.json")
	if err := os.WriteFile(catalogPath, []byte(catalogJSON), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	store, err := catalog.Load(catalogPath)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return store, Options{
		IndexPath:    filepath.Join(dir, "course_index.idx"),
		ManifestPath: filepath.Join(dir, "course_index.json"),
		Dimension:    3,
	}
}

const twoCourses = `[
	{"code":"CSCI 1410","title":"Intro to AI","description":"Search and learning."},
	{"code":"CSCI 1270","title":"Databases","description":"Relational systems."}
]`

func TestEnsureFresh_FirstRunRebuilds(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	s := New(store, embedder, opts)

	ix, result, err := s.EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}

	if result.Status != StatusRebuilt {
		t.Errorf("Status = %s, want rebuilt", result.Status)
	}
	if result.Courses != 2 {
		t.Errorf("Courses = %d, want 2", result.Courses)
	}
	if ix.Size() != store.Len() {
		t.Errorf("index size = %d, want catalog size %d", ix.Size(), store.Len())
	}
	if embedder.calls != 2 {
		t.Errorf("embedder calls = %d, want 2 (every record)", embedder.calls)
	}

	// Manifest written with one entry per catalog record
	manifest, err := loadManifest(opts.ManifestPath)
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	if len(manifest) != store.Len() {
		t.Errorf("manifest length = %d, want %d", len(manifest), store.Len())
	}
}

func TestEnsureFresh_SecondRunIsFresh(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	s := New(store, embedder, opts)

	if _, _, err := s.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("first EnsureFresh() error = %v", err)
	}
	embedder.calls = 0

	ix, result, err := s.EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("second EnsureFresh() error = %v", err)
	}

	if result.Status != StatusFresh {
		t.Errorf("Status = %s, want fresh", result.Status)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder calls = %d, want 0 for a fresh index", embedder.calls)
	}
	if ix.Size() != store.Len() {
		t.Errorf("index size = %d, want %d", ix.Size(), store.Len())
	}
}

func TestEnsureFresh_CountMismatchRebuilds(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	if _, _, err := New(store, embedder, opts).EnsureFresh(context.Background()); err != nil {
		t.Fatalf("initial EnsureFresh() error = %v", err)
	}

	// Catalog grows to three records; manifest still has two
	grownPath := filepath.Join(filepath.Dir(opts.IndexPath), "grown.json")
	grown := `[
		{"code":"CSCI 1410","title":"Intro to AI"},
		{"code":"CSCI 1270","title":"Databases"},
		{"code":"CSCI 1230","title":"Graphics"}
	]`
	if err := os.WriteFile(grownPath, []byte(grown), 0o644); err != nil {
		t.Fatalf("writing grown catalog: %v", err)
	}
	grownStore, err := catalog.Load(grownPath)
	if err != nil {
		t.Fatalf("loading grown catalog: %v", err)
	}

	embedder.calls = 0
	ix, result, err := New(grownStore, embedder, opts).EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}

	if result.Status != StatusRebuilt {
		t.Errorf("Status = %s, want rebuilt after count mismatch", result.Status)
	}
	if embedder.calls != 3 {
		t.Errorf("embedder calls = %d, want 3 (full re-embed, not delta)", embedder.calls)
	}
	if ix.Size() != 3 {
		t.Errorf("index size = %d, want 3", ix.Size())
	}

	manifest, err := loadManifest(opts.ManifestPath)
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	if len(manifest) != grownStore.Len() {
		t.Errorf("manifest length = %d, want %d", len(manifest), grownStore.Len())
	}
}

func TestEnsureFresh_CorruptIndexRebuilds(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	if _, _, err := New(store, embedder, opts).EnsureFresh(context.Background()); err != nil {
		t.Fatalf("initial EnsureFresh() error = %v", err)
	}

	if err := os.WriteFile(opts.IndexPath, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("corrupting index: %v", err)
	}

	_, result, err := New(store, embedder, opts).EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	if result.Status != StatusRebuilt {
		t.Errorf("Status = %s, want rebuilt after index corruption", result.Status)
	}
}

func TestEnsureFresh_DimensionChangeRebuilds(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	if _, _, err := New(store, embedder, opts).EnsureFresh(context.Background()); err != nil {
		t.Fatalf("initial EnsureFresh() error = %v", err)
	}

	// Same files, but the embedding model now declares dimension 5. The fake
	// still emits 3-dimensional vectors, so the rebuild itself must fail too.
	opts5 := opts
	opts5.Dimension = 5
	_, _, err := New(store, embedder, opts5).EnsureFresh(context.Background())
	if err == nil {
		t.Fatal("expected rebuild failure when embedder output disagrees with declared dimension")
	}
}

func TestEnsureFresh_ContentHashDetectsEdit(t *testing.T) {
	store, opts := setup(t, twoCourses)
	opts.ContentHash = true
	embedder := &fakeEmbedder{}
	if _, _, err := New(store, embedder, opts).EnsureFresh(context.Background()); err != nil {
		t.Fatalf("initial EnsureFresh() error = %v", err)
	}

	// Same record count, edited description
	editedPath := filepath.Join(filepath.Dir(opts.IndexPath), "edited.json")
	edited := `[
		{"code":"CSCI 1410","title":"Intro to AI","description":"Completely new syllabus."},
		{"code":"CSCI 1270","title":"Databases","description":"Relational systems."}
	]`
	if err := os.WriteFile(editedPath, []byte(edited), 0o644); err != nil {
		t.Fatalf("writing edited catalog: %v", err)
	}
	editedStore, err := catalog.Load(editedPath)
	if err != nil {
		t.Fatalf("loading edited catalog: %v", err)
	}

	_, result, err := New(editedStore, embedder, opts).EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	if result.Status != StatusRebuilt {
		t.Errorf("Status = %s, want rebuilt when content hash differs", result.Status)
	}

	// Without content hashing the same edit goes undetected
	opts.ContentHash = false
	_, result, err = New(editedStore, embedder, opts).EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	if result.Status != StatusFresh {
		t.Errorf("Status = %s, want fresh under count-only policy", result.Status)
	}
}

func TestEnsureFresh_EmbedderFailureSurfaces(t *testing.T) {
	store, opts := setup(t, twoCourses)
	s := New(store, failingEmbedder{}, opts)

	_, _, err := s.EnsureFresh(context.Background())
	if err == nil {
		t.Fatal("expected error when embedding fails during rebuild")
	}

	// Nothing half-written
	if _, statErr := os.Stat(opts.IndexPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("index file should not exist after a failed rebuild")
	}
	if _, statErr := os.Stat(opts.ManifestPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("manifest file should not exist after a failed rebuild")
	}
}

func TestRebuild_Forces(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	s := New(store, embedder, opts)

	if _, _, err := s.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	embedder.calls = 0

	ix, result, err := s.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if result.Status != StatusRebuilt {
		t.Errorf("Status = %s, want rebuilt", result.Status)
	}
	if embedder.calls != store.Len() {
		t.Errorf("embedder calls = %d, want %d", embedder.calls, store.Len())
	}
	if ix == nil {
		t.Fatal("Rebuild() returned nil index")
	}
}

func TestLoadedIndexAnswersQueries(t *testing.T) {
	store, opts := setup(t, twoCourses)
	embedder := &fakeEmbedder{}
	s := New(store, embedder, opts)

	built, _, err := s.EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}

	loaded, err := vectorindex.Load(opts.IndexPath, opts.Dimension)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	query := []float64{40, 20, 1}
	want, err := built.Search(query, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	got, err := loaded.Search(query, 2)
	if err != nil {
		t.Fatalf("Search() on loaded index error = %v", err)
	}
	for i := range want {
		if got[i].Ordinal != want[i].Ordinal {
			t.Errorf("result %d: ordinal %d, want %d", i, got[i].Ordinal, want[i].Ordinal)
		}
	}
}
