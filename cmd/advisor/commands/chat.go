// ABOUTME: CLI command for an interactive chat session with the advisor
// ABOUTME: Runs the Bubble Tea chat interface over one advisor instance
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/course-advisor/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive advisor chat",
		Long: `Start an interactive chat session with the course advisor.

Conversation memory persists across turns within the session and is
discarded on exit. Ctrl+C quits.`,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	advisor, err := newAdvisor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(advisor), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}
