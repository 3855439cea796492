package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smileynet/phonebook/internal/command"
	"github.com/smileynet/phonebook/internal/contact"
)

// fakeSaver counts Save calls and returns err.
type fakeSaver struct {
	calls int
	err   error
}

func (f *fakeSaver) Save(*contact.AddressBook) error {
	f.calls++
	return f.err
}

func newSession(saver *fakeSaver) *command.Session {
	return command.NewSession(contact.NewAddressBook(), saver)
}

func TestNew_NonTTYReturnsPlain(t *testing.T) {
	var buf bytes.Buffer
	sh := New(Options{Executor: newSession(&fakeSaver{}), Writer: &buf})

	if _, ok := sh.(*PlainShell); !ok {
		t.Errorf("New() = %T, want *PlainShell for non-TTY writer", sh)
	}
}

func TestNew_ForcePlain(t *testing.T) {
	sh := New(Options{Executor: newSession(&fakeSaver{}), ForcePlain: true})

	if _, ok := sh.(*PlainShell); !ok {
		t.Errorf("New(ForcePlain) = %T, want *PlainShell", sh)
	}
}

func TestPlainShell_RunUntilExit(t *testing.T) {
	// Given a scripted session ending in exit
	saver := &fakeSaver{}
	sess := newSession(saver)
	in := strings.NewReader("hello\nadd Alice 1234567890\nall\nexit\nadd Bob 0987654321\n")
	var out bytes.Buffer
	sh := New(Options{Executor: sess, Reader: in, Writer: &out, Prompt: "> ", Banner: "BANNER"})

	// When the shell runs
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then every command before exit ran and the book was saved once
	got := out.String()
	for _, want := range []string{
		"BANNER\n",
		"> How can I help you?\n",
		"Contact added.\n",
		"Contact name: Alice, phones: 1234567890\n",
		"Goodbye!\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output = %q, want to contain %q", got, want)
		}
	}
	if saver.calls != 1 {
		t.Errorf("Save calls = %d, want 1", saver.calls)
	}

	// And input after exit was ignored
	if _, ok := sess.Book().Find("Bob"); ok {
		t.Error("Bob was added after exit")
	}
}

func TestPlainShell_EOFSaves(t *testing.T) {
	// Given input that ends without exit
	saver := &fakeSaver{}
	var out bytes.Buffer
	sh := New(Options{Executor: newSession(saver), Reader: strings.NewReader("add Alice 1234567890\n"), Writer: &out})

	// When the shell runs
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then the book is still saved
	if saver.calls != 1 {
		t.Errorf("Save calls = %d, want 1", saver.calls)
	}
	if !strings.HasSuffix(out.String(), "Goodbye!\n") {
		t.Errorf("output = %q, want Goodbye! at end", out.String())
	}
}

func TestPlainShell_SaveFailureIsReturned(t *testing.T) {
	saveErr := errors.New("read-only filesystem")
	sh := New(Options{
		Executor: newSession(&fakeSaver{err: saveErr}),
		Reader:   strings.NewReader("exit\n"),
		Writer:   &bytes.Buffer{},
	})

	err := sh.Run(context.Background())

	if !errors.Is(err, saveErr) {
		t.Errorf("Run() error = %v, want %v", err, saveErr)
	}
}

func TestPlainShell_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never returns keeps the loop waiting on ctx.
	r, _ := blockingReader()
	sh := New(Options{Executor: newSession(&fakeSaver{}), Reader: r, Writer: &bytes.Buffer{}})

	if err := sh.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
