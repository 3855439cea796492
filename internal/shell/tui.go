package shell

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// TUIShell runs the command loop as a Bubble Tea program.
// Falls back to PlainShell if the program fails to start.
type TUIShell struct {
	opts Options
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (s *TUIShell) Run(ctx context.Context) error {
	model := NewModel(s.opts.Executor, s.opts.Prompt, s.opts.Banner)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(s.opts.Reader),
		tea.WithOutput(s.opts.Writer),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m, ok := final.(Model)
		if ok && len(m.entries) > 0 {
			return fmt.Errorf("shell: %w", err)
		}
		plain := &PlainShell{opts: s.opts}
		return plain.Run(ctx)
	}

	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
