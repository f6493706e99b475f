// ABOUTME: Prompt assembly for grounded advice generation
// ABOUTME: Merges system instructions, conversation history, and retrieved courses
package core

import (
	"encoding/json"
	"fmt"

	"github.com/harper/course-advisor/internal/models"
)

// systemPrompt anchors every generation request.
const systemPrompt = "You are a helpful university academic advisor. " +
	"Provide specific, actionable course recommendations based on the student's questions."

// buildMessages assembles the full role-tagged request: system instructions,
// up to n raw history turns, and a final user turn embedding the question,
// the condensed context, and the retrieved courses as structured text.
func buildMessages(question string, courses []models.Course, contextSummary string, history []models.Message) []models.Message {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, models.Message{
		Role:    models.RoleUser,
		Content: buildUserPrompt(question, courses, contextSummary),
	})
	return messages
}

// buildUserPrompt serializes the retrieved courses into the final user turn.
func buildUserPrompt(question string, courses []models.Course, contextSummary string) string {
	courseData, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		// Courses are plain structs; marshalling cannot realistically fail,
		// but a prompt without course data beats no prompt at all.
		courseData = []byte("[]")
	}

	prompt := "You're an academic advisor. Use the course data below to recommend helpful courses. " +
		"Be smart, kind, and specific.\n\n"
	if contextSummary != "" {
		prompt += contextSummary + "\n\n"
	}
	prompt += fmt.Sprintf("COURSES:\n%s\n\nQUESTION:\n%s\n", courseData, question)
	return prompt
}
