package textstat

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// MinExtractLength is the minimum text length for term extraction.
const MinExtractLength = 50

// DefaultMaxTerms caps how many terms of each type are returned.
const DefaultMaxTerms = 20

// ErrTextTooShort is returned when text is below MinExtractLength.
var ErrTextTooShort = errors.New("text too short for term extraction")

// Term types accepted by ExtractTerms.
const (
	TermKeywords = "keywords"
	TermBigrams  = "bigrams"
)

// Term is a candidate term with its occurrence count.
type Term struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Terms is the result of term extraction.
type Terms struct {
	Keywords []Term `json:"keywords,omitempty"`
	Bigrams  []Term `json:"bigrams,omitempty"`
}

// ExtractOptions configures term extraction.
// The zero value extracts both term types with the default cap.
type ExtractOptions struct {
	// Types selects which term kinds to extract (TermKeywords,
	// TermBigrams). Empty means both.
	Types []string

	// MaxTerms caps each returned list. Default: 20.
	MaxTerms int

	// ExtraStopWords are removed in addition to the built-in stop list.
	ExtraStopWords []string
}

// ExtractTerms performs frequency-based keyword and bigram extraction with
// stop-word removal. Text must be at least MinExtractLength characters.
// Results sort by count descending, ties alphabetically.
func ExtractTerms(text string, opts ExtractOptions) (Terms, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinExtractLength {
		return Terms{}, fmt.Errorf("%w: %d characters, need %d", ErrTextTooShort, len(trimmed), MinExtractLength)
	}

	maxTerms := opts.MaxTerms
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}

	wantKeywords := false
	wantBigrams := false
	if len(opts.Types) == 0 {
		wantKeywords, wantBigrams = true, true
	}
	for _, t := range opts.Types {
		switch t {
		case TermKeywords:
			wantKeywords = true
		case TermBigrams:
			wantBigrams = true
		}
	}

	stop := make(map[string]struct{}, len(stopWords)+len(opts.ExtraStopWords))
	for w := range stopWords {
		stop[w] = struct{}{}
	}
	for _, w := range opts.ExtraStopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	tokens := Tokenize(trimmed)

	var result Terms
	if wantKeywords {
		counts := make(map[string]int)
		for _, tok := range tokens {
			if _, skip := stop[tok]; skip {
				continue
			}
			if len(tok) < 3 {
				continue
			}
			counts[tok]++
		}
		result.Keywords = rankTerms(counts, maxTerms)
	}

	if wantBigrams {
		counts := make(map[string]int)
		for i := 0; i+1 < len(tokens); i++ {
			a, b := tokens[i], tokens[i+1]
			if _, skip := stop[a]; skip {
				continue
			}
			if _, skip := stop[b]; skip {
				continue
			}
			if len(a) < 3 || len(b) < 3 {
				continue
			}
			counts[a+" "+b]++
		}
		result.Bigrams = rankTerms(counts, maxTerms)
	}

	return result, nil
}

// Tokenize lowercases text and splits it into alphanumeric tokens.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// rankTerms sorts by count descending, ties alphabetically, and caps the
// list at maxTerms.
func rankTerms(counts map[string]int, maxTerms int) []Term {
	terms := make([]Term, 0, len(counts))
	for text, count := range counts {
		terms = append(terms, Term{Text: text, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Text < terms[j].Text
	})

	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	return terms
}
