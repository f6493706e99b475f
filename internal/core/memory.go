// ABOUTME: Bounded conversation memory of question/answer turns for one session
// ABOUTME: Supplies a lossy context summary and raw role-tagged history for prompts
package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/harper/course-advisor/internal/models"
)

// answerPreviewLen is how much of each past answer the context summary keeps.
// The summary only biases retrieval and generation, it is never replayed
// verbatim, so truncation is acceptable.
const answerPreviewLen = 100

// Memory is an append-only, ordered log of conversation turns. It lives for
// one advisor session and is never persisted. The advisor's serialized ask
// path is the only writer; the mutex covers readers on other goroutines
// (TUI, MCP handlers).
type Memory struct {
	mu    sync.RWMutex
	turns []models.Turn
}

// NewMemory creates an empty conversation memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a completed turn. Never fails.
func (m *Memory) Append(turn models.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
}

// Len returns the number of recorded turns.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}

// Recent returns the last n turns, most-recent-last. Returns fewer when the
// history is shorter. Repeated calls without an append return equal slices.
func (m *Memory) Recent(n int) []models.Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]models.Turn, len(m.turns)-start)
	copy(out, m.turns[start:])
	return out
}

// ContextSummary renders the last n turns as a condensed context block: each
// question verbatim plus the first 100 characters of its answer. Empty string
// when there is no history.
func (m *Memory) ContextSummary(n int) string {
	recent := m.Recent(n)
	if len(recent) == 0 {
		return ""
	}

	parts := make([]string, len(recent))
	for i, turn := range recent {
		parts[i] = fmt.Sprintf("Q: %s A: %s", turn.Question, previewAnswer(turn.Answer))
	}
	return "Previous conversation context: " + strings.Join(parts, " ")
}

// HistoryForPrompt returns up to n raw turns as alternating user/assistant
// messages, oldest first, for direct inclusion in a generation request.
func (m *Memory) HistoryForPrompt(n int) []models.Message {
	recent := m.Recent(n)
	messages := make([]models.Message, 0, len(recent)*2)
	for _, turn := range recent {
		messages = append(messages,
			models.Message{Role: models.RoleUser, Content: turn.Question},
			models.Message{Role: models.RoleAssistant, Content: turn.Answer},
		)
	}
	return messages
}

// previewAnswer truncates an answer to answerPreviewLen runes with an
// ellipsis marker.
func previewAnswer(answer string) string {
	runes := []rune(answer)
	if len(runes) <= answerPreviewLen {
		return answer + "..."
	}
	return string(runes[:answerPreviewLen]) + "..."
}
