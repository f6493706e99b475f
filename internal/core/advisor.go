// ABOUTME: Advisor orchestrates retrieval, prompt assembly, generation, and memory
// ABOUTME: One instance per session; ask calls are serialized per instance
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/harper/course-advisor/internal/catalog"
	"github.com/harper/course-advisor/internal/indexsync"
	"github.com/harper/course-advisor/internal/models"
)

// ErrNotReady means Ask was called before Initialize succeeded.
var ErrNotReady = errors.New("advisor not initialized")

// Generator produces a text completion for a role-tagged message sequence.
type Generator interface {
	Generate(ctx context.Context, messages []models.Message) (string, error)
}

// Advisor lifecycle states.
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateAnswering
	StateFailed
)

// String returns the state name for logging and tests.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateAnswering:
		return "answering"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Advice is the result of one answered question: the generated answer plus
// the catalog records it was grounded in, in similarity order.
type Advice struct {
	Answer  string          `json:"answer"`
	Courses []models.Course `json:"courses,omitempty"`
}

// Options configures an Advisor. Zero values fall back to the defaults the
// prompt shape was tuned for: 3 retrieved courses, 2 summarized turns, 4 raw
// history turns.
type Options struct {
	CatalogPath  string
	IndexPath    string
	ManifestPath string
	Dimension    int
	ContentHash  bool
	TopK         int
	SummaryTurns int
	HistoryTurns int
	MaxDistance  float64
	Embedder     Embedder
	Generator    Generator
}

// Advisor owns the conversation memory, retriever, and generation capability
// for one session. It is the single writer of its memory; Ask is serialized
// so turns are appended in completion order.
type Advisor struct {
	mu    sync.Mutex
	state atomic.Int32

	opts      Options
	catalog   *catalog.Store
	retriever *Retriever
	memory    *Memory
	sync      *indexsync.Synchronizer
}

// NewAdvisor creates an uninitialized Advisor. Call Initialize before Ask.
func NewAdvisor(opts Options) (*Advisor, error) {
	if opts.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.SummaryTurns <= 0 {
		opts.SummaryTurns = 2
	}
	if opts.HistoryTurns <= 0 {
		opts.HistoryTurns = 4
	}

	return &Advisor{opts: opts, memory: NewMemory()}, nil
}

// Initialize loads the catalog, reconciles the vector index with it, and
// attaches the index to the retriever. Any failure here is fatal to the
// session: the advisor transitions to Failed and the caller decides whether
// to abort or surface the error. No retry is attempted.
func (a *Advisor) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if State(a.state.Load()) == StateReady {
		return nil
	}

	store, err := catalog.Load(a.opts.CatalogPath)
	if err != nil {
		a.state.Store(int32(StateFailed))
		return fmt.Errorf("initialization failed: %w", err)
	}

	a.catalog = store
	a.sync = indexsync.New(store, a.opts.Embedder, indexsync.Options{
		IndexPath:    a.opts.IndexPath,
		ManifestPath: a.opts.ManifestPath,
		Dimension:    a.opts.Dimension,
		ContentHash:  a.opts.ContentHash,
	})

	ix, _, err := a.sync.EnsureFresh(ctx)
	if err != nil {
		a.state.Store(int32(StateFailed))
		return fmt.Errorf("initialization failed: %w", err)
	}

	a.retriever = NewRetriever(store, a.opts.Embedder)
	a.retriever.AttachIndex(ix)
	a.retriever.SetMaxDistance(a.opts.MaxDistance)

	a.state.Store(int32(StateReady))
	return nil
}

// State returns the advisor's current lifecycle state.
func (a *Advisor) State() State {
	return State(a.state.Load())
}

// Memory exposes the session's conversation memory for read access.
func (a *Advisor) Memory() *Memory {
	return a.memory
}

// Catalog returns the loaded catalog store, or nil before initialization.
func (a *Advisor) Catalog() *catalog.Store {
	return a.catalog
}

// Ask answers one question grounded in retrieved catalog records.
//
// Empty or whitespace-only questions are a silent no-op: zero Advice, no
// memory append, no generation call. Retrieval or generation failures are
// recovered into an apologetic answer with an empty course list and are not
// appended to memory, so a bad turn never poisons follow-up context. The
// error return is reserved for calling Ask before Initialize.
func (a *Advisor) Ask(ctx context.Context, question string) (Advice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if State(a.state.Load()) != StateReady {
		return Advice{}, ErrNotReady
	}
	if strings.TrimSpace(question) == "" {
		return Advice{}, nil
	}

	a.state.Store(int32(StateAnswering))
	defer a.state.Store(int32(StateReady))

	scored, err := a.retriever.Retrieve(ctx, question, a.opts.TopK)
	if err != nil {
		return apology(err), nil
	}

	courses := make([]models.Course, len(scored))
	for i, s := range scored {
		courses[i] = s.Course
	}

	messages := buildMessages(question, courses,
		a.memory.ContextSummary(a.opts.SummaryTurns),
		a.memory.HistoryForPrompt(a.opts.HistoryTurns))

	answer, err := a.opts.Generator.Generate(ctx, messages)
	if err != nil {
		return apology(err), nil
	}

	turn, err := models.NewTurn(question, answer, courses)
	if err != nil {
		return apology(err), nil
	}
	a.memory.Append(*turn)

	return Advice{Answer: answer, Courses: courses}, nil
}

// Search runs retrieval only, without touching memory or the generator.
// Used by the search surfaces (CLI, MCP) for inspecting raw similarity hits.
func (a *Advisor) Search(ctx context.Context, query string, k int) ([]models.ScoredCourse, error) {
	if State(a.state.Load()) == StateUninitialized || State(a.state.Load()) == StateFailed {
		return nil, ErrNotReady
	}
	return a.retriever.Retrieve(ctx, query, k)
}

// Rebuild forces a full re-embed and index swap, then reattaches the fresh
// index. Blocking, proportional to catalog size.
func (a *Advisor) Rebuild(ctx context.Context) (indexsync.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sync == nil {
		return indexsync.Result{}, ErrNotReady
	}
	ix, result, err := a.sync.Rebuild(ctx)
	if err != nil {
		return indexsync.Result{}, err
	}
	a.retriever.AttachIndex(ix)
	return result, nil
}

// apology converts a per-request failure into a user-visible answer. The
// session stays usable; the failed exchange is never recorded.
func apology(err error) Advice {
	return Advice{
		Answer: fmt.Sprintf("Sorry, I ran into a problem answering that: %v. Please try asking again.", err),
	}
}
