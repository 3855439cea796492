package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxEntries bounds the scrollback kept in the TUI.
const maxEntries = 200

// entry is one executed line and its result.
type entry struct {
	input  string
	output string
	failed bool
}

// Model is the Bubble Tea model for the interactive shell.
type Model struct {
	exec     Executor
	input    textinput.Model
	banner   string
	entries  []entry
	width    int
	height   int
	quitting bool
	err      error
}

// NewModel creates a Model that sends each entered line to exec.
func NewModel(exec Executor, prompt, banner string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "help"
	ti.Focus()

	return Model{exec: exec, input: ti, banner: banner}
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			if err := m.exec.Close(); err != nil {
				m.err = err
			} else {
				m.push(entry{output: "Goodbye!"})
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res, err := m.exec.Execute(line)
	m.push(entry{input: line, output: res.Output, failed: res.Failed})
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) push(e entry) {
	m.entries = append(m.entries, e)
	if over := len(m.entries) - maxEntries; over > 0 {
		m.entries = m.entries[over:]
	}
}

// View renders the banner, the scrollback, and the input line.
func (m Model) View() string {
	var b strings.Builder

	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n")
	}

	for _, e := range m.visibleEntries() {
		if e.input != "" {
			b.WriteString(echoStyle.Render(m.input.Prompt + e.input))
			b.WriteString("\n")
		}
		if e.output == "" {
			continue
		}
		style := outputStyle
		if e.failed {
			style = failedStyle
		}
		b.WriteString(style.Render(e.output))
		b.WriteString("\n")
	}

	if m.quitting {
		if m.err != nil {
			b.WriteString(failedStyle.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

// visibleEntries trims the scrollback to what fits in the terminal height.
func (m Model) visibleEntries() []entry {
	if m.height <= 0 {
		return m.entries
	}
	budget := m.height - 1 - strings.Count(m.banner, "\n") - 1
	i := len(m.entries)
	for i > 0 {
		e := m.entries[i-1]
		n := strings.Count(e.output, "\n") + 1
		if e.input != "" {
			n++
		}
		if budget-n < 0 {
			break
		}
		budget -= n
		i--
	}
	return m.entries[i:]
}
