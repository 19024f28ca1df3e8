// Package sessionstore persists the main-window tab list as a JSON array file.
package sessionstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var emptyDocument = []byte("[]")

// FileStore implements repository.SessionStore on top of a single JSON file.
// Writes are atomic (temp file, fsync, rename) and serialised across
// processes by an advisory lock on "<path>.lock".
type FileStore struct {
	path     string
	lockPath string

	mu   sync.Mutex
	held *writerLock
}

// New creates a store for the given file path. Nothing is touched on disk.
func New(path string) *FileStore {
	return &FileStore{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the session file location.
func (s *FileStore) Path() string {
	return s.path
}

// Lock claims the writer lock for the lifetime of the store, until Unlock.
// Returns an error wrapping repository.ErrStoreLocked when another process owns it.
func (s *FileStore) Lock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	l, err := acquireWriterLock(s.lockPath)
	if err != nil {
		return err
	}
	s.held = l
	return nil
}

// Unlock releases a lock taken by Lock.
func (s *FileStore) Unlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.held.release()
	s.held = nil
	return err
}

// Load reads the stored entries. Absent, empty or malformed files yield an
// empty list and are rewritten as "[]".
func (s *FileStore) Load(ctx context.Context) ([]entity.SessionEntry, error) {
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", s.path).Msg("session file absent, creating empty")
		s.heal(ctx)
		return []entity.SessionEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	entries, err := Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("session file unreadable, resetting")
		s.heal(ctx)
		return []entity.SessionEntry{}, nil
	}
	return entries, nil
}

// Save atomically replaces the stored entries.
func (s *FileStore) Save(ctx context.Context, entries []entity.SessionEntry) error {
	if entries == nil {
		entries = []entity.SessionEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session entries: %w", err)
	}
	if err := s.writeLocked(data); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().
		Int("entries", len(entries)).
		Str("path", s.path).
		Msg("session saved")
	return nil
}

func (s *FileStore) heal(ctx context.Context) {
	if err := s.writeLocked(emptyDocument); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", s.path).Msg("failed to reset session file")
	}
}

// writeLocked writes under the writer lock, taking it for the duration of the
// write when the store does not already hold it.
func (s *FileStore) writeLocked(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	if s.held == nil {
		l, err := acquireWriterLock(s.lockPath)
		if err != nil {
			return err
		}
		defer func() { _ = l.release() }()
	}

	return writeAtomic(s.path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename session file: %w", err)
	}

	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open session dir: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("fsync session dir: %w", err)
	}
	return nil
}

// ErrMalformed is returned by Decode for documents that are not a session list.
var ErrMalformed = errors.New("malformed session document")

// Decode parses a session document. Legacy string elements are read as
// unpinned entries. Every element is kept, including an empty url, which
// restore opens as the home page.
func Decode(data []byte) ([]entity.SessionEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// "null" decodes into a nil slice without error.
	if raw == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}

	entries := make([]entity.SessionEntry, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 {
			return nil, fmt.Errorf("%w: element %d empty", ErrMalformed, i)
		}
		switch elem[0] {
		case '"':
			var url string
			if err := json.Unmarshal(elem, &url); err != nil {
				return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
			}
			entries = append(entries, entity.SessionEntry{URL: url})
		case '{':
			var entry entity.SessionEntry
			if err := json.Unmarshal(elem, &entry); err != nil {
				return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
			}
			entries = append(entries, entry)
		default:
			return nil, fmt.Errorf("%w: element %d is neither object nor string", ErrMalformed, i)
		}
	}
	return entries, nil
}

// ReadFile decodes a session file without healing it. Used by read-only tools.
func ReadFile(path string) ([]entity.SessionEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

var _ repository.SessionStore = (*FileStore)(nil)
