package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Marshal encodes a book list to YAML bytes.
func Marshal(books []Book) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(books); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the book list to a file on disk.
func Save(path string, books []Book) error {
	data, err := Marshal(books)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Merge folds a stored record into the list and returns a new slice.
// A book with the same ID is replaced in place; otherwise b is prepended.
// The input slice is never modified.
func Merge(books []Book, b Book) []Book {
	out := make([]Book, 0, len(books)+1)
	for i, existing := range books {
		if existing.ID == b.ID {
			out = append(out, books[:i]...)
			out = append(out, b)
			return append(out, books[i+1:]...)
		}
	}
	out = append(out, b)
	return append(out, books...)
}

// MergeAll merges a batch so that new records land at the front in batch
// order. Records already present are replaced in place.
func MergeAll(books []Book, batch []Book) []Book {
	for i := len(batch) - 1; i >= 0; i-- {
		books = Merge(books, batch[i])
	}
	return books
}

// Remove removes a book by ID. Returns a new slice and whether a book
// was actually removed. The input slice is never modified.
func Remove(books []Book, id string) ([]Book, bool) {
	for i, b := range books {
		if b.ID == id {
			out := make([]Book, 0, len(books)-1)
			out = append(out, books[:i]...)
			return append(out, books[i+1:]...), true
		}
	}
	return books, false
}
