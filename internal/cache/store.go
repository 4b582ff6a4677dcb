package cache

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Store writes r to the named file atomically: data goes to a temp file
// in the same directory which is then renamed over the target, so
// readers never see a partial file. Returns the final file path.
func (m *Manager) Store(name string, r io.Reader, perm os.FileMode) (string, error) {
	if err := m.EnsureDir(); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	destPath := m.Path(name)
	f, err := os.CreateTemp(m.baseDir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}

// WriteFile is Store for an in-memory payload.
func (m *Manager) WriteFile(name string, data []byte, perm os.FileMode) (string, error) {
	return m.Store(name, bytes.NewReader(data), perm)
}

// ReadFile returns the named file's contents.
func (m *Manager) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(m.Path(name))
}
