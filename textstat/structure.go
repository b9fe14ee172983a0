package textstat

import (
	"errors"
	"fmt"
	"strings"
)

// MinAnalyzeLength is the minimum content length for structural analysis.
const MinAnalyzeLength = 100

// ErrContentTooShort is returned when content is below MinAnalyzeLength.
var ErrContentTooShort = errors.New("content too short to analyze")

// Narrative-arc classifications.
const (
	ArcFlat    = "flat"
	ArcRising  = "rising"
	ArcFalling = "falling"
	ArcPeaked  = "peaked"
)

// Structure is the result of a structural analysis.
type Structure struct {
	WordCount      int `json:"word_count"`
	SentenceCount  int `json:"sentence_count"`
	ParagraphCount int `json:"paragraph_count"`

	// AvgSentenceLength is in words.
	AvgSentenceLength float64 `json:"avg_sentence_length"`

	// PacingVariance is the variance of sentence lengths in words;
	// low variance reads as uniform pacing, high as varied.
	PacingVariance float64 `json:"pacing_variance"`

	// Pacing is "uniform" or "varied", derived from PacingVariance.
	Pacing string `json:"pacing"`

	// NarrativeArc classifies the paragraph-length trajectory as one of
	// ArcFlat, ArcRising, ArcFalling, or ArcPeaked.
	NarrativeArc string `json:"narrative_arc"`

	Issues []string `json:"issues"`
}

// AnalyzeStructure computes surface statistics and structural heuristics
// for the given content. Content must be at least MinAnalyzeLength
// characters.
func AnalyzeStructure(content string) (Structure, error) {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < MinAnalyzeLength {
		return Structure{}, fmt.Errorf("%w: %d characters, need %d", ErrContentTooShort, len(trimmed), MinAnalyzeLength)
	}

	paragraphs := SplitParagraphs(trimmed)
	sentences := SplitSentences(trimmed)
	words := strings.Fields(trimmed)

	s := Structure{
		WordCount:      len(words),
		SentenceCount:  len(sentences),
		ParagraphCount: len(paragraphs),
		Issues:         []string{},
	}

	lengths := make([]float64, len(sentences))
	var total float64
	for i, sent := range sentences {
		lengths[i] = float64(len(strings.Fields(sent)))
		total += lengths[i]
	}
	if len(lengths) > 0 {
		s.AvgSentenceLength = total / float64(len(lengths))
		s.PacingVariance = variance(lengths, s.AvgSentenceLength)
	}

	if s.PacingVariance < 4 {
		s.Pacing = "uniform"
	} else {
		s.Pacing = "varied"
	}

	s.NarrativeArc = classifyArc(paragraphs)

	if s.SentenceCount <= 1 {
		s.Issues = append(s.Issues, "content is a single sentence; consider breaking it up")
	}
	if s.ParagraphCount <= 1 {
		s.Issues = append(s.Issues, "content has no closing paragraph and may need a stronger conclusion")
	}
	if s.AvgSentenceLength > 30 {
		s.Issues = append(s.Issues, "sentences average over 30 words; consider shortening")
	}
	if s.Pacing == "uniform" && s.SentenceCount >= 5 {
		s.Issues = append(s.Issues, "sentence lengths are very uniform; pacing may feel monotonous")
	}

	return s, nil
}

// SplitParagraphs splits text on blank lines, dropping empty paragraphs.
func SplitParagraphs(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, strings.TrimSpace(p))
		}
	}
	return paragraphs
}

// SplitSentences splits text on terminal punctuation, dropping empties.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}

// variance returns the population variance of values around mean.
func variance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// classifyArc inspects the paragraph word-count trajectory.
// Fewer than three paragraphs is always flat: there is no trajectory.
func classifyArc(paragraphs []string) string {
	if len(paragraphs) < 3 {
		return ArcFlat
	}

	counts := make([]float64, len(paragraphs))
	for i, p := range paragraphs {
		counts[i] = float64(len(strings.Fields(p)))
	}

	third := len(counts) / 3
	opening := meanOf(counts[:third])
	middle := meanOf(counts[third : len(counts)-third])
	closing := meanOf(counts[len(counts)-third:])

	switch {
	case middle > opening*1.25 && middle > closing*1.25:
		return ArcPeaked
	case closing > opening*1.25:
		return ArcRising
	case opening > closing*1.25:
		return ArcFalling
	default:
		return ArcFlat
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
