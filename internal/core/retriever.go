// ABOUTME: Retriever embeds a question and maps kNN ordinals back to catalog records
// ABOUTME: Positional lookup depends on catalog order matching index build order
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harper/course-advisor/internal/catalog"
	"github.com/harper/course-advisor/internal/models"
	"github.com/harper/course-advisor/internal/vectorindex"
)

// ErrRetrievalUnavailable means the vector index has not been built or
// loaded; retrieval cannot run until the synchronizer has produced an index.
var ErrRetrievalUnavailable = errors.New("vector index not available")

// Embedder produces a fixed-dimension vector for a text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Retriever answers "which catalog records are semantically closest to this
// question". The catalog reference is read-only; the index handle can be
// swapped by a rebuild while queries are in flight, so it sits behind mu.
type Retriever struct {
	catalog  *catalog.Store
	embedder Embedder

	mu    sync.RWMutex
	index *vectorindex.FlatIndex
	// maxDistance, when positive, drops neighbors farther than the cutoff.
	// Zero keeps every neighbor, matching the original no-threshold policy.
	maxDistance float64
}

// NewRetriever creates a Retriever without an index attached. Retrieve fails
// with ErrRetrievalUnavailable until AttachIndex is called.
func NewRetriever(store *catalog.Store, embedder Embedder) *Retriever {
	return &Retriever{catalog: store, embedder: embedder}
}

// AttachIndex installs the index produced by the synchronizer.
func (r *Retriever) AttachIndex(ix *vectorindex.FlatIndex) {
	r.mu.Lock()
	r.index = ix
	r.mu.Unlock()
}

// SetMaxDistance installs an optional distance cutoff. Zero disables it.
func (r *Retriever) SetMaxDistance(d float64) {
	r.mu.Lock()
	r.maxDistance = d
	r.mu.Unlock()
}

// Retrieve embeds the question and returns the min(k, catalog size) nearest
// courses in ascending-distance order. No relevance threshold applies unless
// a max distance was configured.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]models.ScoredCourse, error) {
	// Snapshot the handle and cutoff so a concurrent rebuild swap cannot
	// change them mid-query; the embedding call must not hold the lock.
	r.mu.RLock()
	index := r.index
	maxDistance := r.maxDistance
	r.mu.RUnlock()

	if index == nil {
		return nil, ErrRetrievalUnavailable
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	vector, err := r.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	neighbors, err := index.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	results := make([]models.ScoredCourse, 0, len(neighbors))
	for _, n := range neighbors {
		if maxDistance > 0 && n.Distance > maxDistance {
			continue
		}
		course, ok := r.catalog.At(n.Ordinal)
		if !ok {
			return nil, fmt.Errorf("index ordinal %d outside catalog of %d courses", n.Ordinal, r.catalog.Len())
		}
		results = append(results, models.ScoredCourse{Course: course, Ordinal: n.Ordinal, Distance: n.Distance})
	}
	return results, nil
}
