package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// ChatPort is the TUI-facing subset of the engine.
type ChatPort interface {
	Answer(query string) domain.Answer
	Summary() string
	DocumentCount() int
	SourceNames() []string
}

type exchange struct {
	question string
	answer   domain.Answer
}

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	service  ChatPort
	input    textinput.Model
	viewport viewport.Model
	history  []exchange
	status   string
	ready    bool
}

// New creates a new chat model instance.
func New(service ChatPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about concerts, rehearsals, events..."
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := fmt.Sprintf("%d document(s) loaded. Type a question and press Enter.", service.DocumentCount())
	return Model{service: service, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderHistory())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				ans := m.service.Answer(q)
				m.history = append(m.history, exchange{question: q, answer: ans})
				m.status = fmt.Sprintf("Answered with confidence %.2f", ans.Confidence)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderHistory())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Bridgeland Orchestra Chatbot")
	summary := summaryStyle.Render(truncateLine(m.service.Summary(), m.viewport.Width))
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No questions yet. The loaded newsletters cover sources: " +
			strings.Join(m.service.SourceNames(), ", ")
	}
	var b strings.Builder
	for i, ex := range m.history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(questionStyle.Render("You: " + ex.question))
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(ex.answer.Text))
		b.WriteString("\n")
		b.WriteString(confidenceLine(ex.answer))
		b.WriteString("\n")
	}
	return b.String()
}

func confidenceLine(a domain.Answer) string {
	line := fmt.Sprintf("confidence %.2f", a.Confidence)
	if len(a.Sources) > 0 {
		line += "  sources: " + strings.Join(a.Sources, ", ")
	}
	if a.Confidence >= 0.5 {
		return confidenceHighStyle.Render(line)
	}
	return confidenceLowStyle.Render(line)
}

func truncateLine(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width > 3 && len(s) > width {
		return s[:width-3] + "..."
	}
	return s
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true)
	summaryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chatBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	questionStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	confidenceHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	confidenceLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
