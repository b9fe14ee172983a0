package store

import (
	"context"
	"errors"
)

// Error values for consistent error handling by callers.
var (
	ErrNotFound  = errors.New("item not found")
	ErrInvalidID = errors.New("invalid item id")
	ErrEmptyItem = errors.New("item has no embedding")
)

// Item is one piece of archived content with its embedding.
type Item struct {
	ID        string         `json:"id"`
	Text      string         `json:"text,omitempty"`
	Embedding []float32      `json:"-"`
	Score     float64        `json:"score,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Searcher performs ranked vector search over a corpus.
type Searcher interface {
	// Search returns up to limit items ranked by similarity to the query
	// embedding, filtered by exact metadata matches when filters is
	// non-empty.
	Search(ctx context.Context, query []float32, filters map[string]string, limit int) ([]Item, error)
}

// Fetcher retrieves items by id.
type Fetcher interface {
	// Fetch returns the items for the given ids, in the given order.
	// A missing id is an error.
	Fetch(ctx context.Context, ids []string) ([]Item, error)
}

// Store combines search and fetch over one corpus.
type Store interface {
	Searcher
	Fetcher
}
