// ABOUTME: Turn represents a single question/answer exchange with the advisor
// ABOUTME: Immutable once appended to conversation memory
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Turn represents a single conversation turn, including the courses that were
// retrieved to ground the answer.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Courses   []Course  `json:"courses,omitempty"`
}

// NewTurn creates a new Turn with validation
func NewTurn(question, answer string, courses []Course) (*Turn, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.New("question cannot be empty")
	}
	return &Turn{
		TurnID:    generateTurnID(),
		Timestamp: time.Now().UTC(),
		Question:  question,
		Answer:    answer,
		Courses:   courses,
	}, nil
}

// generateTurnID generates a unique turn identifier
func generateTurnID() string {
	return fmt.Sprintf("turn_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
