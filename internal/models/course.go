// ABOUTME: Course is the canonical catalog record for one course offering
// ABOUTME: Normalizes field-name drift from different scraper runs at JSON load time
package models

import (
	"encoding/json"
	"fmt"
)

// Course represents one catalog entry with the canonical field set.
// Optional fields are empty strings when the source data omits them.
type Course struct {
	Code          string `json:"code"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Instructor    string `json:"instructor,omitempty"`
	Prerequisites string `json:"prerequisites,omitempty"`
	Meets         string `json:"meets,omitempty"`
	URL           string `json:"url,omitempty"`
}

// UnmarshalJSON normalizes field-name drift across scraper runs.
// Older catalog files use "course code" and "semester" instead of
// "code" and "meets"; both spellings map to the canonical fields.
func (c *Course) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding course: %w", err)
	}

	c.Code = firstString(raw, "code", "course code")
	c.Title = firstString(raw, "title")
	c.Description = firstString(raw, "description")
	c.Instructor = firstString(raw, "instructor")
	c.Prerequisites = firstString(raw, "prerequisites")
	c.Meets = firstString(raw, "meets", "semester")
	c.URL = firstString(raw, "url")
	return nil
}

// EmbeddingText renders the concatenated text that gets embedded for this
// course. The exact composition is load-bearing: the index and manifest are
// built from it, so changing it invalidates every persisted index.
func (c Course) EmbeddingText() string {
	return fmt.Sprintf("%s - %s: %s Instructor: %s", c.Code, c.Title, c.Description, c.Instructor)
}

// ScoredCourse is a retrieval result: a course plus its catalog ordinal and
// Euclidean distance from the query embedding.
type ScoredCourse struct {
	Course   Course  `json:"course"`
	Ordinal  int     `json:"ordinal"`
	Distance float64 `json:"distance"`
}

// firstString returns the first key present in raw that decodes to a string.
func firstString(raw map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			return s
		}
	}
	return ""
}
