// Package command parses user input and executes address book commands.
//
// Handlers return a user-facing message on success and a typed error
// otherwise. Message converts any handler error into the text shown to the
// user, so no handler failure ends the session.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smileynet/phonebook/internal/contact"
)

// Sentinel errors returned by handlers.
var (
	// ErrFormat is returned when a command receives the wrong number of arguments.
	ErrFormat = errors.New("command: invalid command format")

	// ErrNotFound is returned when a command targets an unknown contact.
	ErrNotFound = errors.New("command: contact not found")
)

// formatError carries the usage hint shown for a wrong argument count.
type formatError struct {
	hint string
}

func (e *formatError) Error() string { return ErrFormat.Error() + ": " + e.hint }

func (e *formatError) Unwrap() error { return ErrFormat }

func requireArgs(args []string, n int, hint string) error {
	if len(args) != n {
		return &formatError{hint: hint}
	}
	return nil
}

// Message converts a handler error into the text shown to the user.
func Message(err error) string {
	var fe *formatError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return fe.hint
	case errors.Is(err, contact.ErrInvalidPhone):
		return "Invalid phone number format."
	case errors.Is(err, ErrNotFound):
		return "Contact not found."
	default:
		return err.Error()
	}
}

// Add adds a phone to the named contact, creating the contact if needed.
// args: name, phone.
func Add(args []string, book *contact.AddressBook) (string, error) {
	if err := requireArgs(args, 2, "Give me name and phone please."); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]

	if rec, ok := book.Find(name); ok {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		return "Phone added.", nil
	}

	rec := contact.NewRecord(name)
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	book.AddRecord(rec)
	return "Contact added.", nil
}

// Change replaces the first phone of the named contact.
// args: name, new phone.
func Change(args []string, book *contact.AddressBook) (string, error) {
	if err := requireArgs(args, 2, "Give me name and new phone please."); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]

	rec, ok := book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	phones := rec.Phones()
	if len(phones) == 0 {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
	} else if err := rec.EditPhone(phones[0].Value(), phone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone number for %s changed to %s.", name, phone), nil
}

// Find lists the phones of the named contact.
// args: name.
func Find(args []string, book *contact.AddressBook) (string, error) {
	if err := requireArgs(args, 1, "Give me a name to find."); err != nil {
		return "", err
	}
	name := args[0]

	rec, ok := book.Find(name)
	if !ok {
		return fmt.Sprintf("Contact '%s' not found.", name), nil
	}
	return fmt.Sprintf("Phone number(s) for %s: %s.", name, rec.JoinPhones(", ")), nil
}

// Delete removes the named contact.
// args: name.
func Delete(args []string, book *contact.AddressBook) (string, error) {
	if err := requireArgs(args, 1, "Give me a name to delete."); err != nil {
		return "", err
	}
	name := args[0]

	if !book.Delete(name) {
		return fmt.Sprintf("Contact %s not found.", name), nil
	}
	return fmt.Sprintf("Contact %s deleted.", name), nil
}

// List renders every contact, one per line.
func List(book *contact.AddressBook) string {
	if book.Len() == 0 {
		return "Contacts not found."
	}
	lines := make([]string, 0, book.Len())
	for _, r := range book.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
