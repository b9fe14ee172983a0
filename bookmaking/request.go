package bookmaking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Operation names dispatched by Toolset.Call.
const (
	OpSearchArchive       = "search_archive"
	OpClusterContent      = "cluster_content"
	OpCreateAnchor        = "create_anchor"
	OpRefineByAnchors     = "refine_by_anchors"
	OpFindBetweenAnchors  = "find_between_anchors"
	OpHarvestPassages     = "harvest_passages"
	OpDiscoverConnections = "discover_connections"
	OpExpandThread        = "expand_thread"
	OpCreateOutline       = "create_outline"
	OpComposeChapter      = "compose_chapter"
	OpAnalyzeStructure    = "analyze_structure"
	OpSuggestImprovements = "suggest_improvements"
	OpExtractTerms        = "extract_terms"
	OpComputeCentroid     = "compute_centroid"
)

// MinExemplarLength is the minimum exemplar text length for anchor
// creation. Shorter exemplars carry too weak a semantic signal.
const MinExemplarLength = 10

// request is the closed set of operation argument variants. Each variant
// validates its own shape before any embedding call.
type request interface {
	validate() error
}

// exemplar is a named piece of exemplar text used to derive an anchor.
type exemplar struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type searchRequest struct {
	Query   string            `json:"query"`
	Filters map[string]string `json:"filters"`
	Limit   int               `json:"limit"`
}

func (r searchRequest) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: query is required", ErrValidation)
	}
	return nil
}

type clusterRequest struct {
	ContentIDs       []string `json:"content_ids"`
	Query            string   `json:"query"`
	MinClusterSize   int      `json:"min_cluster_size"`
	MaxClusters      int      `json:"max_clusters"`
	ComputeCentroids bool     `json:"compute_centroids"`
	Limit            int      `json:"limit"`
}

func (r clusterRequest) validate() error {
	if len(r.ContentIDs) == 0 && strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: either content_ids or query is required", ErrValidation)
	}
	return nil
}

type createAnchorRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Kind string `json:"kind"`
}

func (r createAnchorRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(strings.TrimSpace(r.Text)) < MinExemplarLength {
		return fmt.Errorf("%w: text must be at least %d characters", ErrValidation, MinExemplarLength)
	}
	return nil
}

type refineRequest struct {
	Query            string   `json:"query"`
	PositiveExamples []string `json:"positive_examples"`
	NegativeExamples []string `json:"negative_examples"`
	Limit            int      `json:"limit"`
}

func (r refineRequest) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: query is required", ErrValidation)
	}
	if len(r.PositiveExamples) == 0 && len(r.NegativeExamples) == 0 {
		return fmt.Errorf("%w: at least one positive or negative example is required", ErrValidation)
	}
	for _, e := range append(append([]string{}, r.PositiveExamples...), r.NegativeExamples...) {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("%w: examples must be non-empty", ErrValidation)
		}
	}
	return nil
}

type betweenRequest struct {
	AnchorA exemplar `json:"anchor_a"`
	AnchorB exemplar `json:"anchor_b"`

	// BalanceThreshold is a pointer so an explicit 0 (exact balance
	// only) is distinguishable from an absent field.
	BalanceThreshold *float64 `json:"balance_threshold"`
	Limit            int      `json:"limit"`
}

func (r betweenRequest) validate() error {
	if strings.TrimSpace(r.AnchorA.Text) == "" {
		return fmt.Errorf("%w: anchor_a.text is required", ErrValidation)
	}
	if strings.TrimSpace(r.AnchorB.Text) == "" {
		return fmt.Errorf("%w: anchor_b.text is required", ErrValidation)
	}
	if r.BalanceThreshold != nil && *r.BalanceThreshold < 0 {
		return fmt.Errorf("%w: balance_threshold must be non-negative", ErrValidation)
	}
	return nil
}

type harvestRequest struct {
	Themes   []string `json:"themes"`
	PerTheme int      `json:"per_theme"`
}

func (r harvestRequest) validate() error {
	if len(r.Themes) == 0 {
		return fmt.Errorf("%w: at least one theme is required", ErrValidation)
	}
	for _, theme := range r.Themes {
		if strings.TrimSpace(theme) == "" {
			return fmt.Errorf("%w: themes must be non-empty", ErrValidation)
		}
	}
	return nil
}

type discoverRequest struct {
	ContentIDs    []string `json:"content_ids"`
	Texts         []string `json:"texts"`
	MinSimilarity float64  `json:"min_similarity"`
	Limit         int      `json:"limit"`
}

func (r discoverRequest) validate() error {
	if len(r.ContentIDs)+len(r.Texts) < 2 {
		return fmt.Errorf("%w: at least two content_ids or texts are required", ErrValidation)
	}
	return nil
}

type expandRequest struct {
	SeedID   string `json:"seed_id"`
	SeedText string `json:"seed_text"`
	Depth    int    `json:"depth"`
	Width    int    `json:"width"`
}

func (r expandRequest) validate() error {
	if strings.TrimSpace(r.SeedID) == "" && strings.TrimSpace(r.SeedText) == "" {
		return fmt.Errorf("%w: either seed_id or seed_text is required", ErrValidation)
	}
	return nil
}

type outlineRequest struct {
	Theme       string   `json:"theme"`
	Query       string   `json:"query"`
	PassageIDs  []string `json:"passage_ids"`
	MaxChapters int      `json:"max_chapters"`
}

func (r outlineRequest) validate() error {
	if strings.TrimSpace(r.Theme) == "" {
		return fmt.Errorf("%w: theme is required", ErrValidation)
	}
	if len(r.PassageIDs) == 0 && strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: either passage_ids or query is required", ErrValidation)
	}
	return nil
}

type composeRequest struct {
	Title    string   `json:"title"`
	Passages []string `json:"passages"`
}

func (r composeRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(r.Passages) == 0 {
		return fmt.Errorf("%w: at least one passage is required", ErrValidation)
	}
	return nil
}

type analyzeRequest struct {
	Content string `json:"content"`
}

func (r analyzeRequest) validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

type suggestRequest struct {
	Content string   `json:"content"`
	Focus   []string `json:"focus"`
}

func (r suggestRequest) validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

type extractRequest struct {
	Text      string   `json:"text"`
	TermTypes []string `json:"term_types"`
	MaxTerms  int      `json:"max_terms"`
}

func (r extractRequest) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrValidation)
	}
	return nil
}

type centroidRequest struct {
	Name  string   `json:"name"`
	Texts []string `json:"texts"`
}

func (r centroidRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(r.Texts) < 2 {
		return fmt.Errorf("%w: at least two texts are required", ErrValidation)
	}
	for _, text := range r.Texts {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: texts must be non-empty", ErrValidation)
		}
	}
	return nil
}

// parseRequest decodes args into the typed variant for the operation and
// validates it. Unknown operations and malformed shapes are rejected here,
// before any embedding call.
func parseRequest(op string, args map[string]any) (request, error) {
	var req request
	switch op {
	case OpSearchArchive:
		req = &searchRequest{}
	case OpClusterContent:
		req = &clusterRequest{}
	case OpCreateAnchor:
		req = &createAnchorRequest{}
	case OpRefineByAnchors:
		req = &refineRequest{}
	case OpFindBetweenAnchors:
		req = &betweenRequest{}
	case OpHarvestPassages:
		req = &harvestRequest{}
	case OpDiscoverConnections:
		req = &discoverRequest{}
	case OpExpandThread:
		req = &expandRequest{}
	case OpCreateOutline:
		req = &outlineRequest{}
	case OpComposeChapter:
		req = &composeRequest{}
	case OpAnalyzeStructure:
		req = &analyzeRequest{}
	case OpSuggestImprovements:
		req = &suggestRequest{}
	case OpExtractTerms:
		req = &extractRequest{}
	case OpComputeCentroid:
		req = &centroidRequest{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	if err := decodeArgs(args, req); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// decodeArgs strictly decodes a loosely-typed argument map into a typed
// request struct.
func decodeArgs(args map[string]any, dst any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
