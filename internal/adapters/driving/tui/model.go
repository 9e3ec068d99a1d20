// Package tui provides an interactive question loop: type a clinical
// question, read the sectioned answer, scroll, repeat.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	citationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	answerBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries a finished query back into the update loop.
type answerMsg struct {
	question string
	result   *driving.AnswerResult
	err      error
}

// Model is the Bubble Tea model for the ask loop.
type Model struct {
	answer   driving.AnswerService
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
	waiting  bool
}

// New creates a new TUI model over the answer service.
func New(answer driving.AnswerService) Model {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Type a clinical question and press Enter"
	ti.Focus()
	vp := viewport.New(0, 0)
	return Model{
		answer:   answer,
		input:    ti,
		viewport: vp,
		status:   "Ready.",
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerBox.GetFrameSize()
		_, qh := questionBox.GetFrameSize()
		vh := msg.Height - ah - qh - 3 // header, status, spacer
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = vh
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.waiting = true
			m.status = "Searching local guidelines..."
			return m, m.ask(question)
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answer for %q", msg.question)
		m.viewport.SetContent(RenderBundle(msg.result.Bundle))
		m.viewport.GotoTop()
		m.input.SetValue("")
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("clindex: local guideline answers")
	answer := answerBox.Render(m.viewport.View())
	question := questionBox.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + answer + "\n" + question + "\n" + status
}

// ask queries the answer service off the update loop.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.answer.Answer(context.Background(), question, driving.AnswerOptions{})
		return answerMsg{question: question, result: result, err: err}
	}
}

// RenderBundle renders an answer bundle section by section.
func RenderBundle(bundle *domain.AnswerBundle) string {
	if bundle.NoLocalMatch {
		return "No local guideline content matched this question."
	}

	var b strings.Builder
	for _, cat := range domain.Categories() {
		sentences := bundle.Section(cat)
		if len(sentences) == 0 {
			continue
		}
		b.WriteString(sectionStyle.Render(cat.Heading()))
		b.WriteString("\n")
		for _, s := range sentences {
			b.WriteString("  • " + s.Text + "\n")
		}
		b.WriteString("\n")
	}

	if len(bundle.Citations) > 0 {
		b.WriteString(sectionStyle.Render("Sources"))
		b.WriteString("\n")
		for _, c := range bundle.Citations {
			b.WriteString(citationStyle.Render("  " + formatCitation(c)))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatCitation renders one citation line.
func formatCitation(c domain.Citation) string {
	parts := []string{c.Title}
	if c.Organisation != "" {
		parts = append(parts, c.Organisation)
	}
	if c.Published != nil {
		parts = append(parts, c.Published.Format("2006-01-02"))
	}
	if c.URI != "" {
		parts = append(parts, c.URI)
	}
	return strings.Join(parts, ", ")
}

// Run starts the interactive loop and blocks until the user quits.
func Run(answer driving.AnswerService) error {
	program := tea.NewProgram(New(answer), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
