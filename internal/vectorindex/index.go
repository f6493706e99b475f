// ABOUTME: Flat L2 nearest-neighbor index over fixed-dimension embedding vectors
// ABOUTME: Built from scratch on every rebuild, persisted as JSON with declared dimension
package vectorindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// ErrCorrupt indicates a persisted index that cannot be used: unreadable,
// malformed, or built with a different vector dimensionality than the current
// embedding model produces. Callers treat this as "stale, rebuild".
var ErrCorrupt = errors.New("vector index corrupt")

// Neighbor is one kNN query result: the catalog ordinal of the matched vector
// and its Euclidean distance from the query.
type Neighbor struct {
	Ordinal  int     `json:"ordinal"`
	Distance float64 `json:"distance"`
}

// FlatIndex is a brute-force exact nearest-neighbor index. Vector i belongs to
// the catalog record at ordinal i; the index never reorders its vectors.
type FlatIndex struct {
	dimension int
	vectors   [][]float64
}

// Build constructs a fresh index from an ordered vector sequence. All vectors
// must share one dimension. Incremental insert is not supported; rebuilds
// always start from scratch.
func Build(vectors [][]float64) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return nil, errors.New("cannot build index from zero vectors")
	}
	dimension := len(vectors[0])
	if dimension == 0 {
		return nil, errors.New("cannot build index from empty vectors")
	}
	for i, v := range vectors {
		if len(v) != dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dimension)
		}
	}

	copied := make([][]float64, len(vectors))
	for i, v := range vectors {
		copied[i] = append([]float64(nil), v...)
	}
	return &FlatIndex{dimension: dimension, vectors: copied}, nil
}

// Size returns the number of indexed vectors.
func (ix *FlatIndex) Size() int {
	return len(ix.vectors)
}

// Dimension returns the vector dimensionality the index was built with.
func (ix *FlatIndex) Dimension() int {
	return ix.dimension
}

// Search returns the k nearest neighbors by Euclidean distance, ascending,
// ties broken by lower ordinal. Returns min(k, size) results.
func (ix *FlatIndex) Search(query []float64, k int) ([]Neighbor, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("query has dimension %d, want %d", len(query), ix.dimension)
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	neighbors := make([]Neighbor, len(ix.vectors))
	for i, v := range ix.vectors {
		neighbors[i] = Neighbor{Ordinal: i, Distance: euclidean(query, v)}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Ordinal < neighbors[j].Ordinal
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k], nil
}

// indexFile is the on-disk representation. Dimension is stored explicitly so
// Load can detect a model change without touching the vectors.
type indexFile struct {
	Dimension int         `json:"dimension"`
	Vectors   [][]float64 `json:"vectors"`
}

// Save persists the index atomically: write to a temp file in the same
// directory, then rename over the destination.
func (ix *FlatIndex) Save(path string) error {
	data, err := json.Marshal(indexFile{Dimension: ix.dimension, Vectors: ix.vectors})
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return WriteFileAtomic(path, data)
}

// Load reads a persisted index. wantDimension is the dimensionality of the
// current embedding model; a stored index with any other dimension fails with
// ErrCorrupt. Pass 0 to skip the dimension check.
func Load(path string, wantDimension int) (*FlatIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if file.Dimension <= 0 || len(file.Vectors) == 0 {
		return nil, fmt.Errorf("%w: empty or missing dimension", ErrCorrupt)
	}
	if wantDimension > 0 && file.Dimension != wantDimension {
		return nil, fmt.Errorf("%w: index dimension %d, embedding model produces %d",
			ErrCorrupt, file.Dimension, wantDimension)
	}
	for i, v := range file.Vectors {
		if len(v) != file.Dimension {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, declared %d",
				ErrCorrupt, i, len(v), file.Dimension)
		}
	}

	return &FlatIndex{dimension: file.Dimension, vectors: file.Vectors}, nil
}

// WriteFileAtomic writes data to path via a temp file and rename, so a crash
// mid-write never leaves a half-written file at path.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// euclidean computes the L2 distance between two equal-length vectors.
func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
