// ABOUTME: Message is a role-tagged chat message for text generation
// ABOUTME: Decouples prompt assembly from any specific LLM client
package models

// Chat message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry in a generation request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
