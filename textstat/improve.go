package textstat

import "strings"

// Focus areas accepted by SuggestImprovements.
const (
	FocusPacing    = "pacing"
	FocusStructure = "structure"
	FocusClarity   = "clarity"
)

// Suggestion is one targeted improvement recommendation.
type Suggestion struct {
	Focus   string `json:"focus"`
	Message string `json:"message"`
}

// SuggestImprovements analyzes content and returns suggestions for the
// requested focus areas. Empty focus means all areas. Content limits are
// the same as AnalyzeStructure's.
func SuggestImprovements(content string, focus []string) ([]Suggestion, error) {
	s, err := AnalyzeStructure(content)
	if err != nil {
		return nil, err
	}

	want := func(area string) bool {
		if len(focus) == 0 {
			return true
		}
		for _, f := range focus {
			if strings.EqualFold(f, area) {
				return true
			}
		}
		return false
	}

	var suggestions []Suggestion
	add := func(area, msg string) {
		if want(area) {
			suggestions = append(suggestions, Suggestion{Focus: area, Message: msg})
		}
	}

	if s.Pacing == "uniform" {
		add(FocusPacing, "vary sentence length to build rhythm; alternate short punchy sentences with longer ones")
	} else if s.PacingVariance > 80 {
		add(FocusPacing, "sentence lengths swing widely; smooth transitions between very short and very long sentences")
	}

	switch s.NarrativeArc {
	case ArcFlat:
		add(FocusStructure, "the piece stays at one intensity; consider building toward a clearer climax")
	case ArcFalling:
		add(FocusStructure, "the piece front-loads its weight; consider moving key material later")
	}
	if s.ParagraphCount <= 1 {
		add(FocusStructure, "add a closing paragraph; the piece may need a stronger conclusion")
	}

	if s.AvgSentenceLength > 25 {
		add(FocusClarity, "average sentence length is high; split long sentences to improve readability")
	}
	if s.SentenceCount > 0 && s.WordCount/s.SentenceCount < 6 && s.SentenceCount >= 5 {
		add(FocusClarity, "many very short sentences; combining some may improve flow")
	}

	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}
