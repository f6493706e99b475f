// ABOUTME: Test doubles shared by core package tests
// ABOUTME: Deterministic keyword-count embedder and a scriptable generator
package core

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/harper/course-advisor/internal/models"
)

// fakeEmbedder maps text onto a 3-dimensional unit vector by counting topic
// keywords, so semantic closeness is fully deterministic in tests.
type fakeEmbedder struct {
	calls int
}

const fakeDimension = 3

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float64, error) {
	f.calls++
	tokens := tokenize(text)
	v := []float64{
		countAny(tokens, "ai", "artificial", "intelligence"),
		countAny(tokens, "database", "databases", "relational"),
		countAny(tokens, "graphics", "rendering"),
	}
	return normalize(v), nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func countAny(tokens []string, keywords ...string) float64 {
	var n float64
	for _, tok := range tokens {
		for _, kw := range keywords {
			if tok == kw {
				n++
				break
			}
		}
	}
	return n
}

func normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// fakeGenerator returns a canned answer, or a scripted error, and records
// the message sequences it was asked to complete.
type fakeGenerator struct {
	answer   string
	err      error
	calls    int
	lastMsgs []models.Message
}

func (f *fakeGenerator) Generate(_ context.Context, messages []models.Message) (string, error) {
	f.calls++
	f.lastMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	if f.answer == "" {
		return "Here is my recommendation.", nil
	}
	return f.answer, nil
}
