// Package shell runs the interactive command loop, either as a line-based
// prompt or as a Bubble Tea terminal UI when attached to a terminal.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/phonebook/internal/command"
)

// Executor runs one input line. Close saves the book when input ends without
// an exit command.
type Executor interface {
	Execute(line string) (command.Result, error)
	Close() error
}

// Verify at compile time that command.Session satisfies Executor.
var _ Executor = (*command.Session)(nil)

// Shell reads commands until the user quits.
type Shell interface {
	Run(ctx context.Context) error
}

// Options configures shell creation.
type Options struct {
	Executor   Executor
	Reader     io.Reader // Input source (default: os.Stdin).
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the line-based shell even if TTY.
	Prompt     string    // Prompt shown before each command.
	Banner     string    // Printed once at start; empty disables it.
}

// New returns a TUI shell when the writer is a TTY, or a plain line-based
// shell otherwise. ForcePlain overrides TTY detection.
func New(opts Options) Shell {
	if opts.Reader == nil {
		opts.Reader = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainShell{opts: opts}
	}
	return &TUIShell{opts: opts}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainShell prompts for and executes one line at a time.
type PlainShell struct {
	opts Options
}

// Run loops until an exit command, end of input, or context cancellation.
// End of input saves the book like an exit command.
func (s *PlainShell) Run(ctx context.Context) error {
	w := s.opts.Writer
	if s.opts.Banner != "" {
		_, _ = fmt.Fprintln(w, s.opts.Banner)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.opts.Reader)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		_, _ = fmt.Fprint(w, s.opts.Prompt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if err := <-readErr; err != nil {
					return fmt.Errorf("shell: reading input: %w", err)
				}
				_, _ = fmt.Fprintln(w)
				if err := s.opts.Executor.Close(); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(w, "Goodbye!")
				return nil
			}

			res, err := s.opts.Executor.Execute(line)
			if res.Output != "" {
				_, _ = fmt.Fprintln(w, res.Output)
			}
			if err != nil {
				return err
			}
			if res.Quit {
				return nil
			}
		}
	}
}
