package bookmaking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/anchorlab/bookforge/cluster"
	"github.com/anchorlab/bookforge/store"
	"github.com/anchorlab/bookforge/textstat"
)

// chapter is one thematic group of an outline.
type chapter struct {
	Title      string   `json:"title"`
	PassageIDs []string `json:"passage_ids"`
	Size       int      `json:"size"`
}

// createOutline gathers passages, clusters them thematically, and orders
// the resulting chapters by weight.
func (t *Toolset) createOutline(ctx context.Context, r *outlineRequest) (any, error) {
	if t.store == nil {
		return nil, ErrNoStore
	}

	var items []store.Item
	var err error
	if len(r.PassageIDs) > 0 {
		items, err = t.store.Fetch(ctx, r.PassageIDs)
	} else {
		var queryEmb []float32
		queryEmb, err = t.embed(ctx, r.Query)
		if err != nil {
			return nil, err
		}
		items, err = t.store.Search(ctx, queryEmb, nil, 30)
	}
	if err != nil {
		return nil, err
	}

	points := make([]cluster.Point, len(items))
	texts := make(map[string]string, len(items))
	for i, item := range items {
		points[i] = cluster.Point{ID: item.ID, Embedding: item.Embedding}
		texts[item.ID] = item.Text
	}

	result, err := cluster.Run(points, cluster.Options{
		MinClusterSize: 2,
		MaxClusters:    r.MaxChapters,
	})
	if err != nil {
		return nil, err
	}

	ranked := append([]cluster.Cluster{}, result.Clusters...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Size() != ranked[j].Size() {
			return ranked[i].Size() > ranked[j].Size()
		}
		return ranked[i].Label < ranked[j].Label
	})

	chapters := make([]chapter, 0, len(ranked))
	for i, c := range ranked {
		chapters = append(chapters, chapter{
			Title:      chapterTitle(c, texts, i+1),
			PassageIDs: c.PointIDs,
			Size:       c.Size(),
		})
	}

	return map[string]any{
		"theme":      r.Theme,
		"chapters":   chapters,
		"unassigned": result.Unclustered,
	}, nil
}

// chapterTitle derives a chapter title from the cluster's dominant
// keyword, falling back to a numbered title.
func chapterTitle(c cluster.Cluster, texts map[string]string, ordinal int) string {
	var joined strings.Builder
	for _, id := range c.PointIDs {
		joined.WriteString(texts[id])
		joined.WriteString(" ")
	}

	terms, err := textstat.ExtractTerms(joined.String(), textstat.ExtractOptions{
		Types:    []string{textstat.TermKeywords},
		MaxTerms: 1,
	})
	if err != nil || len(terms.Keywords) == 0 {
		return fmt.Sprintf("Chapter %d", ordinal)
	}

	keyword := terms.Keywords[0].Text
	first, size := utf8.DecodeRuneInString(keyword)
	titled := strings.ToUpper(string(first)) + keyword[size:]
	return fmt.Sprintf("Chapter %d: %s", ordinal, titled)
}

// section is one structural slot of a chapter scaffold.
type section struct {
	Heading    string `json:"heading"`
	Passage    string `json:"passage"`
	WordTarget int    `json:"word_target"`
}

// composeChapter assembles a structural chapter scaffold from the given
// passages: ordering, headings, and per-section word targets. It performs
// no language-model composition.
func (t *Toolset) composeChapter(r *composeRequest) (any, error) {
	sections := make([]section, len(r.Passages))
	total := 0

	for i, passage := range r.Passages {
		words := len(strings.Fields(passage))
		// Target is the source length rounded up to the next couple of
		// hundred words.
		target := ((words / 100) + 2) * 100
		sections[i] = section{
			Heading:    sectionHeading(i, len(r.Passages)),
			Passage:    passage,
			WordTarget: target,
		}
		total += target
	}

	return map[string]any{
		"title":             r.Title,
		"sections":          sections,
		"total_word_target": total,
	}, nil
}

func sectionHeading(i, n int) string {
	switch {
	case i == 0:
		return "Opening"
	case i == n-1 && n > 1:
		return "Resolution"
	default:
		return fmt.Sprintf("Development %d", i)
	}
}

// analyzeStructure runs the structural heuristics over the content.
func (t *Toolset) analyzeStructure(r *analyzeRequest) (any, error) {
	s, err := textstat.AnalyzeStructure(r.Content)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// suggestImprovements analyzes the content and emits focus-area
// suggestions.
func (t *Toolset) suggestImprovements(r *suggestRequest) (any, error) {
	suggestions, err := textstat.SuggestImprovements(r.Content, r.Focus)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"suggestions": suggestions,
	}, nil
}

// extractTerms runs frequency-based term extraction over the text.
func (t *Toolset) extractTerms(r *extractRequest) (any, error) {
	terms, err := textstat.ExtractTerms(r.Text, textstat.ExtractOptions{
		Types:    r.TermTypes,
		MaxTerms: r.MaxTerms,
	})
	if err != nil {
		return nil, err
	}
	return terms, nil
}
