package store

import (
	"context"
	"sort"
	"sync"

	"StockWatch/internal/model"
)

// MemoryStore keeps entries in process memory. Used when SQLite is unavailable.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]model.WatchlistEntry
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64]model.WatchlistEntry)}
}

func (m *MemoryStore) List(_ context.Context) ([]model.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.WatchlistEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (model.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return model.WatchlistEntry{}, ErrNotFound
	}
	return e, nil
}

func (m *MemoryStore) Create(_ context.Context, d model.WatchlistDraft) (model.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := d.Entry(m.nextID)
	m.entries[e.ID] = e
	return e, nil
}

func (m *MemoryStore) Update(_ context.Context, e model.WatchlistEntry) (model.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; !ok {
		return model.WatchlistEntry{}, ErrNotFound
	}
	m.entries[e.ID] = e
	return e, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
