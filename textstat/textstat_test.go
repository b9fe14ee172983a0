package textstat

import (
	"errors"
	"strings"
	"testing"
)

func TestAnalyzeStructure_TooShort(t *testing.T) {
	_, err := AnalyzeStructure("too short")
	if !errors.Is(err, ErrContentTooShort) {
		t.Fatalf("err = %v, want ErrContentTooShort", err)
	}
}

func TestAnalyzeStructure_SingleSentenceSingleParagraph(t *testing.T) {
	// Exactly one sentence and one paragraph, just over 100 characters.
	content := "This is a single sentence that keeps going for long enough to clear the minimum analysis length threshold."
	if len(content) < MinAnalyzeLength {
		t.Fatalf("fixture is %d chars, need at least %d", len(content), MinAnalyzeLength)
	}

	s, err := AnalyzeStructure(content)
	if err != nil {
		t.Fatalf("AnalyzeStructure failed: %v", err)
	}

	if s.SentenceCount != 1 {
		t.Errorf("sentences = %d, want 1", s.SentenceCount)
	}
	if s.ParagraphCount != 1 {
		t.Errorf("paragraphs = %d, want 1", s.ParagraphCount)
	}
	if s.NarrativeArc != ArcFlat {
		t.Errorf("arc = %q, want flat", s.NarrativeArc)
	}

	foundConclusion := false
	for _, issue := range s.Issues {
		if strings.Contains(issue, "may need a stronger conclusion") {
			foundConclusion = true
		}
	}
	if !foundConclusion {
		t.Errorf("issues %v missing conclusion suggestion", s.Issues)
	}
}

func TestAnalyzeStructure_Counts(t *testing.T) {
	content := strings.Join([]string{
		"One two three four five. Six seven eight nine ten.",
		"Eleven twelve thirteen fourteen fifteen. Sixteen seventeen eighteen nineteen twenty.",
	}, "\n\n")

	s, err := AnalyzeStructure(content)
	if err != nil {
		t.Fatalf("AnalyzeStructure failed: %v", err)
	}

	if s.WordCount != 20 {
		t.Errorf("words = %d, want 20", s.WordCount)
	}
	if s.SentenceCount != 4 {
		t.Errorf("sentences = %d, want 4", s.SentenceCount)
	}
	if s.ParagraphCount != 2 {
		t.Errorf("paragraphs = %d, want 2", s.ParagraphCount)
	}
	if s.AvgSentenceLength != 5 {
		t.Errorf("avg sentence length = %v, want 5", s.AvgSentenceLength)
	}
	// All sentences are exactly five words: zero variance, uniform pacing.
	if s.PacingVariance != 0 {
		t.Errorf("pacing variance = %v, want 0", s.PacingVariance)
	}
	if s.Pacing != "uniform" {
		t.Errorf("pacing = %q, want uniform", s.Pacing)
	}
}

func TestAnalyzeStructure_RisingArc(t *testing.T) {
	content := strings.Join([]string{
		"Short opening here now.",
		"A middle paragraph with a few more words than the opening had.",
		"A very long closing paragraph that carries far more weight than anything before it, piling up word after word after word to dominate the trajectory of the piece entirely.",
	}, "\n\n")

	s, err := AnalyzeStructure(content)
	if err != nil {
		t.Fatalf("AnalyzeStructure failed: %v", err)
	}
	if s.NarrativeArc != ArcRising {
		t.Errorf("arc = %q, want rising", s.NarrativeArc)
	}
}

func TestExtractTerms_TooShort(t *testing.T) {
	_, err := ExtractTerms("tiny", ExtractOptions{})
	if !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("err = %v, want ErrTextTooShort", err)
	}
}

func TestExtractTerms_Keywords(t *testing.T) {
	text := "The archive holds conversations. The archive grows. Conversations shape the archive and the archive endures."

	terms, err := ExtractTerms(text, ExtractOptions{Types: []string{TermKeywords}})
	if err != nil {
		t.Fatalf("ExtractTerms failed: %v", err)
	}

	if len(terms.Keywords) == 0 {
		t.Fatal("no keywords extracted")
	}
	if terms.Keywords[0].Text != "archive" {
		t.Errorf("top keyword = %q, want archive", terms.Keywords[0].Text)
	}
	if terms.Keywords[0].Count != 4 {
		t.Errorf("archive count = %d, want 4", terms.Keywords[0].Count)
	}
	if terms.Bigrams != nil {
		t.Errorf("bigrams = %v, want none when only keywords requested", terms.Bigrams)
	}
}

func TestExtractTerms_StopWordsNeverAppear(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while the other animals watch from the fence."

	terms, err := ExtractTerms(text, ExtractOptions{ExtraStopWords: []string{"fox"}})
	if err != nil {
		t.Fatalf("ExtractTerms failed: %v", err)
	}

	for _, term := range terms.Keywords {
		if _, stopped := stopWords[term.Text]; stopped {
			t.Errorf("stop word %q in keywords", term.Text)
		}
		if term.Text == "fox" {
			t.Errorf("caller stop word %q in keywords", term.Text)
		}
	}
	for _, term := range terms.Bigrams {
		for _, part := range strings.Fields(term.Text) {
			if _, stopped := stopWords[part]; stopped {
				t.Errorf("stop word %q in bigram %q", part, term.Text)
			}
			if part == "fox" {
				t.Errorf("caller stop word in bigram %q", term.Text)
			}
		}
	}
}

func TestExtractTerms_Bigrams(t *testing.T) {
	text := "Semantic anchors guide retrieval. Semantic anchors shape results when semantic anchors are defined well."

	terms, err := ExtractTerms(text, ExtractOptions{Types: []string{TermBigrams}})
	if err != nil {
		t.Fatalf("ExtractTerms failed: %v", err)
	}

	if len(terms.Bigrams) == 0 {
		t.Fatal("no bigrams extracted")
	}
	if terms.Bigrams[0].Text != "semantic anchors" {
		t.Errorf("top bigram = %q, want 'semantic anchors'", terms.Bigrams[0].Text)
	}
	if terms.Bigrams[0].Count != 3 {
		t.Errorf("count = %d, want 3", terms.Bigrams[0].Count)
	}
}

func TestExtractTerms_DeterministicTieBreak(t *testing.T) {
	text := "zebra apple zebra apple mango cherry mango cherry plus filler words to clear the length minimum."

	first, err := ExtractTerms(text, ExtractOptions{Types: []string{TermKeywords}})
	if err != nil {
		t.Fatalf("ExtractTerms failed: %v", err)
	}
	second, _ := ExtractTerms(text, ExtractOptions{Types: []string{TermKeywords}})

	for i := range first.Keywords {
		if first.Keywords[i] != second.Keywords[i] {
			t.Fatalf("runs differ at %d: %v vs %v", i, first.Keywords[i], second.Keywords[i])
		}
	}
	// Equal counts must order alphabetically.
	for i := 1; i < len(first.Keywords); i++ {
		a, b := first.Keywords[i-1], first.Keywords[i]
		if a.Count == b.Count && a.Text > b.Text {
			t.Fatalf("tie not alphabetical: %q before %q", a.Text, b.Text)
		}
	}
}

func TestSuggestImprovements_FocusFilter(t *testing.T) {
	content := "This is a single sentence that keeps going for long enough to clear the minimum analysis length threshold."

	suggestions, err := SuggestImprovements(content, []string{FocusStructure})
	if err != nil {
		t.Fatalf("SuggestImprovements failed: %v", err)
	}

	if len(suggestions) == 0 {
		t.Fatal("expected structure suggestions for a single-paragraph piece")
	}
	for _, s := range suggestions {
		if s.Focus != FocusStructure {
			t.Errorf("suggestion focus = %q, want structure only", s.Focus)
		}
	}
}

func TestSuggestImprovements_TooShort(t *testing.T) {
	_, err := SuggestImprovements("nope", nil)
	if !errors.Is(err, ErrContentTooShort) {
		t.Fatalf("err = %v, want ErrContentTooShort", err)
	}
}
