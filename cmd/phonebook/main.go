package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/command"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/contact"
	"github.com/smileynet/phonebook/internal/shell"
	"github.com/smileynet/phonebook/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitSetup    = 1
	exitStorage  = 2
	exitRejected = 3
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"Project config file." default:".phonebook.yaml" type:"path"`
	File    string `help:"Address book file (overrides config)." short:"f"`
	Verbose bool   `help:"Log debug output." short:"v"`
}

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Start the interactive shell (default)."`
	Add     AddCmd           `cmd:"" help:"Add a phone to a contact, creating it if needed."`
	Change  ChangeCmd        `cmd:"" help:"Replace the first phone of a contact."`
	Find    FindCmd          `cmd:"" help:"Show the phones of a contact."`
	Del     DelCmd           `cmd:"" help:"Delete a contact."`
	All     AllCmd           `cmd:"" help:"List all contacts."`
}

// ShellCmd runs the interactive command loop.
type ShellCmd struct {
	NoTUI bool `help:"Force the line-based shell even if stdout is a TTY." default:"false"`
}

// AddCmd adds a phone to a contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Ten-digit phone number."`
}

// ChangeCmd replaces a contact's first phone.
type ChangeCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"New ten-digit phone number."`
}

// FindCmd shows a contact's phones.
type FindCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// DelCmd deletes a contact.
type DelCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// AllCmd lists every contact.
type AllCmd struct{}

// storageError marks failures reading or writing the address book file.
type storageError struct {
	err error
}

func (e *storageError) Error() string { return e.err.Error() }

func (e *storageError) Unwrap() error { return e.err }

// rejectedError marks a one-shot command the handlers refused.
type rejectedError struct {
	msg string
}

func (e *rejectedError) Error() string { return e.msg }

// env holds the dependencies a command runs with.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.FileStore
	book   *contact.AddressBook
}

// loadConfig loads layered config from user and project paths with env and flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	// Apply CLI flag overrides.
	if g.File != "" {
		cfg.Book.Path = g.File
	}
	if g.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads config, builds the logger, and loads the address book.
func (g *Globals) open() (*env, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	fs := store.NewFileStore(cfg.Book.Path, store.WithLogger(logger.Named("store")))
	book := contact.NewAddressBook()
	if err := fs.Load(book); err != nil {
		return nil, &storageError{err: err}
	}

	return &env{cfg: cfg, logger: logger, store: fs, book: book}, nil
}

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer e.logger.Sync() //nolint:errcheck // best-effort flush

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, e, os.Stdin, os.Stdout)
}

// run drives the shell over the given streams, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, e *env, r io.Reader, w io.Writer) error {
	sess := command.NewSession(e.book, e.store, command.WithLogger(e.logger.Named("command")))

	banner := ""
	if e.cfg.Shell.Banner {
		banner = command.Help
	}

	sh := shell.New(shell.Options{
		Executor:   sess,
		Reader:     r,
		Writer:     w,
		ForcePlain: s.NoTUI,
		Prompt:     e.cfg.Shell.Prompt,
		Banner:     banner,
	})

	if err := sh.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			if err := sess.Close(); err != nil {
				return &storageError{err: err}
			}
			return nil
		}
		return &storageError{err: fmt.Errorf("shell: %w", err)}
	}
	return nil
}

// bookFn runs one handler against a loaded book.
type bookFn func(*contact.AddressBook) (string, error)

func addFn(name, phone string) bookFn {
	return func(b *contact.AddressBook) (string, error) {
		return command.Add([]string{name, phone}, b)
	}
}

func changeFn(name, phone string) bookFn {
	return func(b *contact.AddressBook) (string, error) {
		return command.Change([]string{name, phone}, b)
	}
}

func findFn(name string) bookFn {
	return func(b *contact.AddressBook) (string, error) {
		return command.Find([]string{name}, b)
	}
}

func delFn(name string) bookFn {
	return func(b *contact.AddressBook) (string, error) {
		return command.Delete([]string{name}, b)
	}
}

func allFn() bookFn {
	return func(b *contact.AddressBook) (string, error) {
		return command.List(b), nil
	}
}

// Run executes the add command.
func (a *AddCmd) Run(g *Globals) error {
	return g.oneShot(os.Stdout, true, addFn(a.Name, a.Phone))
}

// Run executes the change command.
func (c *ChangeCmd) Run(g *Globals) error {
	return g.oneShot(os.Stdout, true, changeFn(c.Name, c.Phone))
}

// Run executes the find command.
func (f *FindCmd) Run(g *Globals) error {
	return g.oneShot(os.Stdout, false, findFn(f.Name))
}

// Run executes the del command.
func (d *DelCmd) Run(g *Globals) error {
	return g.oneShot(os.Stdout, true, delFn(d.Name))
}

// Run executes the all command.
func (a *AllCmd) Run(g *Globals) error {
	return g.oneShot(os.Stdout, false, allFn())
}

// oneShot loads the book, applies fn, prints its message, and saves the book
// when save is set and fn succeeded.
func (g *Globals) oneShot(w io.Writer, save bool, fn bookFn) error {
	e, err := g.open()
	if err != nil {
		return err
	}
	defer e.logger.Sync() //nolint:errcheck // best-effort flush

	msg, err := fn(e.book)
	if err != nil {
		return &rejectedError{msg: command.Message(err)}
	}
	_, _ = fmt.Fprintln(w, msg)

	if !save {
		return nil
	}
	if err := e.store.Save(e.book); err != nil {
		return &storageError{err: err}
	}
	return nil
}

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *rejectedError
	if errors.As(err, &re) {
		return exitRejected
	}
	var se *storageError
	if errors.As(err, &se) {
		return exitStorage
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("An address book for names and phone numbers."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
