package bookmaking

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Catalog returns the MCP tool descriptors for every operation the
// Toolset dispatches. The order is stable.
func Catalog() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        OpSearchArchive,
			Description: "Semantic search over the content archive, optionally widened by keyword hits",
			InputSchema: objectSchema(map[string]any{
				"query":   stringProp("Natural-language search query"),
				"filters": map[string]any{"type": "object", "description": "Exact-match metadata filters", "additionalProperties": map[string]any{"type": "string"}},
				"limit":   intProp("Maximum results to return"),
			}, "query"),
		},
		{
			Name:        OpClusterContent,
			Description: "Group stored content into thematic clusters by embedding proximity",
			InputSchema: objectSchema(map[string]any{
				"content_ids":       stringArrayProp("IDs of stored items to cluster"),
				"query":             stringProp("Query used to gather items when no IDs are given"),
				"min_cluster_size":  intProp("Smallest cluster to report"),
				"max_clusters":      intProp("Keep only the largest N clusters"),
				"compute_centroids": map[string]any{"type": "boolean", "description": "Include per-cluster centroid vectors"},
				"limit":             intProp("Items gathered by query before clustering"),
			}),
		},
		{
			Name:        OpCreateAnchor,
			Description: "Create a named semantic anchor from exemplar text",
			InputSchema: objectSchema(map[string]any{
				"name": stringProp("Anchor name"),
				"text": stringProp("Exemplar text, at least 10 characters"),
				"kind": map[string]any{"type": "string", "enum": []string{"positive", "negative", "synthetic"}, "description": "Anchor kind, default positive"},
			}, "name", "text"),
		},
		{
			Name:        OpRefineByAnchors,
			Description: "Re-rank search results toward positive examples and away from negative ones",
			InputSchema: objectSchema(map[string]any{
				"query":             stringProp("Base search query"),
				"positive_examples": stringArrayProp("Texts the results should resemble"),
				"negative_examples": stringArrayProp("Texts the results should avoid"),
				"limit":             intProp("Maximum refined results"),
			}, "query"),
		},
		{
			Name:        OpFindBetweenAnchors,
			Description: "Find content balanced between two semantic poles",
			InputSchema: objectSchema(map[string]any{
				"anchor_a":          exemplarSchema("First pole"),
				"anchor_b":          exemplarSchema("Second pole"),
				"balance_threshold": map[string]any{"type": "number", "description": "Maximum allowed similarity imbalance between poles"},
				"limit":             intProp("Maximum results"),
			}, "anchor_a", "anchor_b"),
		},
		{
			Name:        OpHarvestPassages,
			Description: "Collect top passages for each theme, deduplicated across themes",
			InputSchema: objectSchema(map[string]any{
				"themes":    stringArrayProp("Themes to harvest for"),
				"per_theme": intProp("Passages kept per theme"),
			}, "themes"),
		},
		{
			Name:        OpDiscoverConnections,
			Description: "Report semantic similarity links among stored items and ad-hoc texts",
			InputSchema: objectSchema(map[string]any{
				"content_ids":    stringArrayProp("IDs of stored items to compare"),
				"texts":          stringArrayProp("Ad-hoc texts to compare"),
				"min_similarity": map[string]any{"type": "number", "description": "Minimum cosine similarity to report"},
				"limit":          intProp("Maximum connections"),
			}),
		},
		{
			Name:        OpExpandThread,
			Description: "Follow a chain of semantic neighbors outward from a seed",
			InputSchema: objectSchema(map[string]any{
				"seed_id":   stringProp("ID of the stored seed item"),
				"seed_text": stringProp("Seed text when no stored item is given"),
				"depth":     intProp("Hops to follow"),
				"width":     intProp("Neighbors per hop"),
			}),
		},
		{
			Name:        OpCreateOutline,
			Description: "Cluster passages into a chapter outline for a theme",
			InputSchema: objectSchema(map[string]any{
				"theme":        stringProp("Book or section theme"),
				"query":        stringProp("Query used to gather passages when no IDs are given"),
				"passage_ids":  stringArrayProp("IDs of stored passages to outline"),
				"max_chapters": intProp("Maximum chapters"),
			}, "theme"),
		},
		{
			Name:        OpComposeChapter,
			Description: "Build a structural chapter scaffold from ordered passages",
			InputSchema: objectSchema(map[string]any{
				"title":    stringProp("Chapter title"),
				"passages": stringArrayProp("Passages in order"),
			}, "title", "passages"),
		},
		{
			Name:        OpAnalyzeStructure,
			Description: "Analyze narrative structure: counts, pacing, arc shape, and issues",
			InputSchema: objectSchema(map[string]any{
				"content": stringProp("Content to analyze, at least 100 characters"),
			}, "content"),
		},
		{
			Name:        OpSuggestImprovements,
			Description: "Suggest improvements for pacing, structure, or clarity",
			InputSchema: objectSchema(map[string]any{
				"content": stringProp("Content to review"),
				"focus":   stringArrayProp("Focus areas: pacing, structure, clarity; empty means all"),
			}, "content"),
		},
		{
			Name:        OpExtractTerms,
			Description: "Extract frequent keywords and bigrams from text",
			InputSchema: objectSchema(map[string]any{
				"text":       stringProp("Text to extract terms from, at least 50 characters"),
				"term_types": stringArrayProp("Term kinds: keywords, bigrams; empty means both"),
				"max_terms":  intProp("Maximum terms per kind"),
			}, "text"),
		},
		{
			Name:        OpComputeCentroid,
			Description: "Create a synthetic anchor at the centroid of several texts",
			InputSchema: objectSchema(map[string]any{
				"name":  stringProp("Anchor name"),
				"texts": stringArrayProp("At least two texts to average"),
			}, "name", "texts"),
		},
	}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func stringArrayProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func exemplarSchema(description string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": description,
		"properties": map[string]any{
			"name": stringProp("Pole name"),
			"text": stringProp("Pole exemplar text"),
		},
		"required": []string{"text"},
	}
}
