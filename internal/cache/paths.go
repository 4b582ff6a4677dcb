package cache

import (
	"os"
	"path/filepath"
)

// Manager owns the local data directory: the session file, the sqlite
// catalog when that backend is selected, and generated pages.
type Manager struct {
	baseDir string
}

// New creates a Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Dir returns the root directory.
func (m *Manager) Dir() string {
	return m.baseDir
}

// Path returns the full path for a file in the data directory.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.baseDir, name)
}

// Exists reports whether the named file exists.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.Path(name))
	return err == nil
}

// EnsureDir creates the data directory.
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(m.baseDir, 0750)
}

// Remove deletes the named file if it exists.
func (m *Manager) Remove(name string) error {
	err := os.Remove(m.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
