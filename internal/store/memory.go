package store

import (
	"context"
	"sort"
	"sync"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// Memory is a process-local Store. It backs demos and tests.
type Memory struct {
	mu    sync.Mutex
	books map[string]catalog.Book
	seq   map[string]int
	next  int
}

// NewMemory returns an empty Memory store, optionally pre-populated.
func NewMemory(books ...catalog.Book) *Memory {
	m := &Memory{books: map[string]catalog.Book{}, seq: map[string]int{}}
	for _, b := range books {
		m.put(b)
	}
	return m
}

func (m *Memory) put(b catalog.Book) {
	if _, ok := m.seq[b.ID]; !ok {
		m.next++
		m.seq[b.ID] = m.next
	}
	m.books[b.ID] = b
}

func (m *Memory) List(ctx context.Context) ([]catalog.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]catalog.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	// Newest first; insertion order breaks ties.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedTime != out[j].CreatedTime {
			return out[i].CreatedTime > out[j].CreatedTime
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

func (m *Memory) Upsert(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Book{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(b)
	return b, nil
}

func (m *Memory) UpsertMany(ctx context.Context, books []catalog.Book) ([]catalog.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Book, len(books))
	for i, b := range books {
		m.put(b)
		out[i] = b
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
	delete(m.seq, id)
	return nil
}

func (m *Memory) Close() error { return nil }
