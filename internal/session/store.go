package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/blackwell-systems/nexusshelf/internal/cache"
)

// FileName is the session file inside the data directory.
const FileName = "session.json"

// ErrCorrupt is returned by Load when the session file cannot be decoded.
var ErrCorrupt = errors.New("corrupt session file")

// Store keeps the signed-in user between runs.
type Store interface {
	// Load returns the stored user, or nil when nobody is signed in.
	Load() (*User, error)
	Save(User) error
	Clear() error
}

// FileStore is a Store backed by a file in the data directory.
type FileStore struct {
	m *cache.Manager
}

// NewFileStore returns a FileStore writing into m's directory.
func NewFileStore(m *cache.Manager) *FileStore {
	return &FileStore{m: m}
}

// Path returns the session file location.
func (s *FileStore) Path() string {
	return s.m.Path(FileName)
}

func (s *FileStore) Load() (*User, error) {
	data, err := s.m.ReadFile(FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrCorrupt)
	}
	return &u, nil
}

func (s *FileStore) Save(u User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	if _, err := s.m.WriteFile(FileName, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := s.m.Remove(FileName); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
