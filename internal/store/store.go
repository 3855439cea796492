package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/contact"
)

// FileStore saves and loads an address book at a single path.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for load and save events.
func WithLogger(l *zap.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Save rewrites the whole file with the contents of book.
// The data is written to a temporary file first and renamed into place.
func (s *FileStore) Save(book *contact.AddressBook) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("store: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op once renamed

	if err := Encode(tmp, book); err != nil {
		tmp.Close() //nolint:errcheck // encode error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}

	s.logger.Debug("saved address book", zap.String("path", s.path), zap.Int("records", book.Len()))
	return nil
}

// Load reads the file and adds every record to book, replacing records with
// the same name. A missing file leaves book unchanged and is not an error.
// A malformed file also leaves book unchanged.
func (s *FileStore) Load(book *contact.AddressBook) error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("address book file not found, starting empty", zap.String("path", s.path))
			return nil
		}
		return fmt.Errorf("store: reading %s: %w", s.path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	loaded, err := Decode(f)
	if err != nil {
		s.logger.Warn("address book file rejected", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("store: parsing %s: %w", s.path, err)
	}
	for _, r := range loaded.Records() {
		book.AddRecord(r)
	}

	s.logger.Debug("loaded address book", zap.String("path", s.path), zap.Int("records", loaded.Len()))
	return nil
}
