package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/contact"
)

// Help lists the commands the session understands.
const Help = `==============================
Main commands:
hello - greeting message
add <name> <phone> - add new contact or contact number
change <name> <phone> - change contact number
find <name> - number search by name
del <name> - delete contact
all - show all contacts
help - show this list
close, exit - save and finish work
==============================`

// Saver persists the address book.
type Saver interface {
	Save(book *contact.AddressBook) error
}

// Result is the outcome of executing one input line.
type Result struct {
	Output string
	Quit   bool
	Failed bool // Output reports a rejected command.
}

// Parse splits a line on whitespace. The first field, lower-cased, is the
// command; the rest are its arguments. Blank input yields an empty command.
func Parse(line string) (cmd string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Session executes commands against one address book.
type Session struct {
	book   *contact.AddressBook
	saver  Saver
	logger *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for dispatch events.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a Session over book. saver is used by close/exit.
func NewSession(book *contact.AddressBook, saver Saver, opts ...SessionOption) *Session {
	s := &Session{book: book, saver: saver, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Book returns the session's address book.
func (s *Session) Book() *contact.AddressBook { return s.book }

// Execute runs one input line. Handler failures are reported in Result.Output.
// The returned error is non-nil only when saving on exit fails.
func (s *Session) Execute(line string) (Result, error) {
	cmd, args := Parse(line)
	s.logger.Debug("executing command", zap.String("command", cmd), zap.Int("args", len(args)))

	switch cmd {
	case "":
		return Result{}, nil
	case "close", "exit":
		if err := s.Close(); err != nil {
			return Result{Quit: true}, err
		}
		return Result{Output: "Goodbye!", Quit: true}, nil
	case "hello":
		return Result{Output: "How can I help you?"}, nil
	case "help":
		return Result{Output: Help}, nil
	case "add":
		return s.reply(Add(args, s.book)), nil
	case "change":
		return s.reply(Change(args, s.book)), nil
	case "find":
		return s.reply(Find(args, s.book)), nil
	case "del":
		return s.reply(Delete(args, s.book)), nil
	case "all":
		return Result{Output: List(s.book)}, nil
	default:
		return Result{Output: "Invalid command.", Failed: true}, nil
	}
}

// Close saves the address book.
func (s *Session) Close() error {
	if err := s.saver.Save(s.book); err != nil {
		return fmt.Errorf("command: saving on exit: %w", err)
	}
	return nil
}

func (s *Session) reply(msg string, err error) Result {
	if err != nil {
		s.logger.Debug("command rejected", zap.Error(err))
		return Result{Output: Message(err), Failed: true}
	}
	return Result{Output: msg}
}
