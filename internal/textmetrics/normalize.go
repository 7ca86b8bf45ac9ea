// Package textmetrics provides the primitive string and token comparison
// algorithms used by the evaluation engine. Every function accepts empty
// input and returns a zero-valued result instead of an error.
package textmetrics

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// stopwords is the shared English stopword list used by the word-level
// tokenizers and the concept extractor.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true, "nor": true,
	"of": true, "to": true, "in": true, "on": true, "for": true, "with": true, "by": true,
	"from": true, "at": true, "as": true, "into": true, "onto": true, "about": true,
	"this": true, "that": true, "these": true, "those": true, "it": true, "its": true,
	"we": true, "our": true, "us": true, "they": true, "their": true, "them": true,
	"he": true, "she": true, "his": true, "her": true, "i": true, "you": true, "your": true,
	"which": true, "who": true, "whom": true, "whose": true, "than": true, "then": true,
	"there": true, "here": true, "also": true, "such": true, "both": true, "each": true,
	"all": true, "any": true, "some": true, "more": true, "most": true, "other": true,
	"not": true, "no": true, "so": true, "very": true, "via": true, "per": true,
	"between": true, "through": true, "over": true, "under": true, "within": true,
	"without": true, "while": true, "during": true, "if": true, "when": true,
}

// IsStopword reports whether the case-folded word is in the stopword list.
func IsStopword(word string) bool {
	return stopwords[word]
}

// Fold applies NFKC normalization and Unicode case folding.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	// Casers are stateful; build one per call.
	return cases.Fold().String(norm.NFKC.String(s))
}

// Tokenize splits text on runs of whitespace, trims punctuation at token
// edges and case-folds the result.
func Tokenize(s string) []string {
	fields := strings.Fields(Fold(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Words splits text on word boundaries. Letters, digits and inner hyphens
// are word characters.
func Words(s string) []string {
	fields := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, "-")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// ContentWords returns Words with stopwords removed.
func ContentWords(s string) []string {
	var out []string
	for _, w := range Words(s) {
		if !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// WordSet returns the distinct content words of s that are at least
// minLen runes long.
func WordSet(s string, minLen int) map[string]bool {
	set := make(map[string]bool)
	for _, w := range ContentWords(s) {
		if len([]rune(w)) >= minLen {
			set[w] = true
		}
	}
	return set
}

// RuneLen counts runes, which is the length unit used by every ratio in
// this package.
func RuneLen(s string) int {
	return len([]rune(s))
}

// Ratio divides and returns 0 for a zero denominator.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Clamp01 bounds x to [0,1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
