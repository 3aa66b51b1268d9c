package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/propstore/errors"
	"github.com/wippyai/propstore/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// headerHeight and footerHeight are the rows around the output pane.
const (
	headerHeight = 2
	footerHeight = 3
)

type interactiveModel struct {
	table   *store.Table
	shell   *shell
	buf     *bytes.Buffer
	input   textinput.Model
	output  viewport.Model
	lines   []string
	history []string
	histIdx int
	ready   bool
}

func newInteractiveModel(table *store.Table) *interactiveModel {
	buf := &bytes.Buffer{}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "set NAME TYPE VALUE, watch *, help"
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		table: table,
		shell: newShell(table, buf),
		buf:   buf,
		input: ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.output = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.output.Width = msg.Width
			m.output.Height = height
		}
		m.input.Width = msg.Width - 4
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.history = append(m.history, line)
			m.histIdx = len(m.history)
			if m.exec(line) {
				return m, tea.Quit
			}
			return m, nil

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exec runs line through the shell and appends its output to the pane. It
// reports whether the shell asked to quit.
func (m *interactiveModel) exec(line string) bool {
	m.lines = append(m.lines, commandStyle.Render("> "+line))

	err := m.shell.Exec(line)
	if errors.Is(err, errQuit) {
		return true
	}

	out := strings.TrimRight(m.buf.String(), "\n")
	m.buf.Reset()
	if out != "" {
		for _, l := range strings.Split(out, "\n") {
			if strings.HasPrefix(l, "[w") {
				m.lines = append(m.lines, eventStyle.Render(l))
			} else {
				m.lines = append(m.lines, resultStyle.Render(l))
			}
		}
	}
	if err != nil {
		m.lines = append(m.lines, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}

	m.refresh()
	return false
}

func (m *interactiveModel) refresh() {
	if !m.ready {
		return
	}
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Property Shell"))
	b.WriteString(fmt.Sprintf(" %d properties, %d listeners", m.table.Len(), m.table.Listeners()))
	b.WriteString("\n\n")
	b.WriteString(m.output.View())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • ↑/↓ history • pgup/pgdown scroll • esc quit"))

	return b.String()
}

func runInteractive(table *store.Table) error {
	p := tea.NewProgram(newInteractiveModel(table), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
