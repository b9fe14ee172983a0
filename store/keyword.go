package store

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// Keyword layers a Bleve full-text index over a Memory store, so content
// can be found by keyword query as well as by vector similarity.
type Keyword struct {
	mem *Memory
	idx bleve.Index
}

// keywordDoc is the shape indexed into Bleve.
type keywordDoc struct {
	Text string `json:"text"`
}

// NewKeyword creates a keyword index backed by the given Memory store.
func NewKeyword(mem *Memory) (*Keyword, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("create keyword index: %w", err)
	}
	return &Keyword{mem: mem, idx: idx}, nil
}

// Index adds the item to both the vector store and the keyword index.
func (k *Keyword) Index(item Item) error {
	if err := k.mem.Add(item); err != nil {
		return err
	}
	if err := k.idx.Index(item.ID, keywordDoc{Text: item.Text}); err != nil {
		return fmt.Errorf("index item %q: %w", item.ID, err)
	}
	return nil
}

// IndexAll adds items, stopping at the first error.
func (k *Keyword) IndexAll(items []Item) error {
	for _, item := range items {
		if err := k.Index(item); err != nil {
			return err
		}
	}
	return nil
}

// SearchText returns up to limit items matching the keyword query, ranked
// by Bleve's relevance score.
func (k *Keyword) SearchText(ctx context.Context, query string, limit int) ([]Item, error) {
	if limit <= 0 {
		return []Item{}, nil
	}

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)

	res, err := k.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	items := make([]Item, 0, len(res.Hits))
	for _, hit := range res.Hits {
		fetched, err := k.mem.Fetch(ctx, []string{hit.ID})
		if err != nil {
			return nil, err
		}
		item := fetched[0]
		item.Score = hit.Score
		items = append(items, item)
	}
	return items, nil
}

// Search implements Searcher via the underlying vector store.
func (k *Keyword) Search(ctx context.Context, query []float32, filters map[string]string, limit int) ([]Item, error) {
	return k.mem.Search(ctx, query, filters, limit)
}

// Fetch implements Fetcher via the underlying vector store.
func (k *Keyword) Fetch(ctx context.Context, ids []string) ([]Item, error) {
	return k.mem.Fetch(ctx, ids)
}

// Close releases the Bleve index.
func (k *Keyword) Close() error {
	return k.idx.Close()
}
