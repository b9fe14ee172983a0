// Package textstat provides structural analysis and term extraction
// heuristics for prose.
//
// [AnalyzeStructure] reports word/sentence/paragraph counts, a pacing
// heuristic based on sentence-length variance, a coarse narrative-arc
// classification from the paragraph-length trajectory, and any issues it
// noticed. [ExtractTerms] performs frequency-based keyword and bigram
// extraction with stop-word removal. [SuggestImprovements] turns an
// analysis into targeted suggestions for requested focus areas.
//
// The heuristics deal in surface statistics only: no language model is
// consulted and results are deterministic for a given input.
package textstat
