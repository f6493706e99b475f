// ABOUTME: Bubble Tea chat interface for the course advisor
// ABOUTME: Transcript viewport plus input line, with a recommended-courses pane
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/course-advisor/internal/core"
	"github.com/harper/course-advisor/internal/models"
)

// AdvisorPort is the TUI-facing subset of the advisor.
type AdvisorPort interface {
	Ask(ctx context.Context, question string) (core.Advice, error)
}

// adviceMsg carries a completed Ask call back into the update loop.
type adviceMsg struct {
	question string
	advice   core.Advice
	err      error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	advisor  AdvisorPort
	input    textinput.Model
	viewport viewport.Model

	transcript []string
	courses    []models.Course
	status     string
	thinking   bool
	ready      bool
}

// New creates a new chat model.
func New(advisor AdvisorPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about courses, prerequisites, or planning"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		advisor:  advisor,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready. Type a question and press Enter.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and advice events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frame := transcriptStyle.GetFrameSize()
		height := msg.Height - frame - 6
		if height < 3 {
			height = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = height
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.thinking {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.transcript = append(m.transcript, userStyle.Render("You: ")+question)
			m.refreshViewport()
			m.thinking = true
			m.status = "Thinking..."
			return m, m.askCmd(question)
		}

	case adviceMsg:
		m.thinking = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		if msg.advice.Answer == "" {
			m.status = "Ready."
			return m, nil
		}
		m.transcript = append(m.transcript, advisorStyle.Render("Advisor: ")+msg.advice.Answer, "")
		m.courses = msg.advice.Courses
		m.status = fmt.Sprintf("Answered with %d recommended course(s).", len(msg.advice.Courses))
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout: transcript, course pane, input, status.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Course Advisor")
	transcript := transcriptStyle.Render(m.viewport.View())
	courses := coursePaneStyle.Render(m.renderCourses())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + courses + "\n" + input + "\n" + status
}

// askCmd runs the advisor call off the update loop.
func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		advice, err := m.advisor.Ask(context.Background(), question)
		return adviceMsg{question: question, advice: advice, err: err}
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderCourses() string {
	if len(m.courses) == 0 {
		return "No recommendations yet."
	}
	var sb strings.Builder
	for i, c := range m.courses {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(courseTitleStyle.Render(fmt.Sprintf("%d. %s %s", i+1, c.Code, c.Title)))
		if c.Instructor != "" {
			sb.WriteString("\n   Instructor: " + c.Instructor)
		}
		if c.Meets != "" {
			sb.WriteString("\n   Meets: " + c.Meets)
		}
	}
	return sb.String()
}

var (
	transcriptStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	coursePaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	advisorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	courseTitleStyle = lipgloss.NewStyle().Bold(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
