package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/anchorlab/bookforge/vectormath"
)

// Memory is an exact in-memory vector store. Items are ranked by cosine
// similarity; ties break by insertion order.
type Memory struct {
	mu    sync.RWMutex
	items map[string]Item
	order []string
	dim   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]Item)}
}

// Add inserts or replaces an item. The first added item fixes the store's
// embedding dimensionality.
func (m *Memory) Add(item Item) error {
	if item.ID == "" {
		return ErrInvalidID
	}
	if len(item.Embedding) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyItem, item.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dim == 0 {
		m.dim = len(item.Embedding)
	} else if len(item.Embedding) != m.dim {
		return fmt.Errorf("%w: %d vs %d", vectormath.ErrDimensionMismatch, m.dim, len(item.Embedding))
	}

	if _, exists := m.items[item.ID]; !exists {
		m.order = append(m.order, item.ID)
	}
	m.items[item.ID] = item
	return nil
}

// AddAll inserts items, stopping at the first error.
func (m *Memory) AddAll(items []Item) error {
	for _, item := range items {
		if err := m.Add(item); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of stored items.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Search implements Searcher.
func (m *Memory) Search(ctx context.Context, query []float32, filters map[string]string, limit int) ([]Item, error) {
	if limit <= 0 {
		return []Item{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	scored := make([]Item, 0, len(m.order))
	for _, id := range m.order {
		item := m.items[id]
		if !matchesFilters(item, filters) {
			continue
		}
		sim, err := vectormath.CosineSimilarity(query, item.Embedding)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", id, err)
		}
		item.Score = sim
		scored = append(scored, item)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// Fetch implements Fetcher.
func (m *Memory) Fetch(ctx context.Context, ids []string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		item, ok := m.items[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		items = append(items, item)
	}
	return items, nil
}

func matchesFilters(item Item, filters map[string]string) bool {
	for key, want := range filters {
		got, ok := item.Metadata[key]
		if !ok {
			return false
		}
		s, ok := got.(string)
		if !ok || s != want {
			return false
		}
	}
	return true
}
