// ABOUTME: Tests for catalog loading, positional access, and fingerprinting
// ABOUTME: Verifies order preservation and field-name normalization at the boundary
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/course-advisor/internal/models"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `[
		{"code":"CSCI 1410","title":"Intro to AI","description":"Search and learning.","instructor":"Jones"},
		{"course code":"CSCI 1270","title":"Databases","description":"Relational systems.","semester":"Fall"},
		{"code":"CSCI 1230","title":"Graphics"}
	]`)

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}

	// Ordinal order must match file order
	first, ok := store.At(0)
	if !ok || first.Code != "CSCI 1410" {
		t.Errorf("At(0) = %+v, want CSCI 1410", first)
	}

	// Legacy field names normalized
	second, ok := store.At(1)
	if !ok {
		t.Fatal("At(1) not found")
	}
	if second.Code != "CSCI 1270" {
		t.Errorf("At(1).Code = %q, want CSCI 1270 (from 'course code')", second.Code)
	}
	if second.Meets != "Fall" {
		t.Errorf("At(1).Meets = %q, want Fall (from 'semester')", second.Meets)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeCatalog(t, `{"not": "an array"`)
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestStore_At_OutOfRange(t *testing.T) {
	path := writeCatalog(t, `[{"code":"A","title":"A"}]`)
	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, ordinal := range []int{-1, 1, 100} {
		if _, ok := store.At(ordinal); ok {
			t.Errorf("At(%d) = ok, want not found", ordinal)
		}
	}
}

func TestStore_FindByCode(t *testing.T) {
	path := writeCatalog(t, `[
		{"code":"CSCI 1410","title":"Intro to AI"},
		{"code":"CSCI 1270","title":"Databases"}
	]`)
	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	course, ok := store.FindByCode("CSCI 1270")
	if !ok || course.Title != "Databases" {
		t.Errorf("FindByCode() = %+v, %v", course, ok)
	}

	if _, ok := store.FindByCode("MATH 0100"); ok {
		t.Error("FindByCode() found a course that does not exist")
	}
}

func TestStore_CoursesIsCopy(t *testing.T) {
	path := writeCatalog(t, `[{"code":"A","title":"A"},{"code":"B","title":"B"}]`)
	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	courses := store.Courses()
	courses[0].Code = "MUTATED"

	original, _ := store.At(0)
	if original.Code != "A" {
		t.Error("mutating Courses() result should not affect the store")
	}
}

func TestFingerprint(t *testing.T) {
	a := []models.Course{{Code: "X", Title: "One"}, {Code: "Y", Title: "Two"}}
	b := []models.Course{{Code: "X", Title: "One"}, {Code: "Y", Title: "Two"}}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("identical course sequences should fingerprint equal")
	}

	// Same count, edited content
	c := []models.Course{{Code: "X", Title: "One"}, {Code: "Y", Title: "Two (updated)"}}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("content edit should change the fingerprint")
	}

	// Reordered
	d := []models.Course{{Code: "Y", Title: "Two"}, {Code: "X", Title: "One"}}
	if Fingerprint(a) == Fingerprint(d) {
		t.Error("reordering should change the fingerprint")
	}
}
