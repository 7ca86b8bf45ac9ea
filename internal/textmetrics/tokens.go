package textmetrics

import "strings"

// TokenMatchResult holds token-level precision, recall and F1 between a
// reference and a candidate.
type TokenMatchResult struct {
	ReferenceTokens []string `json:"referenceTokens"`
	CandidateTokens []string `json:"candidateTokens"`
	MatchedTokens   []string `json:"matchedTokens"`
	Precision       float64  `json:"precision"`
	Recall          float64  `json:"recall"`
	F1Score         float64  `json:"f1Score"`
}

// TokenMatch tokenizes both strings and matches candidate tokens against
// the reference as a multiset: each reference occurrence can satisfy one
// candidate occurrence. Order does not matter.
func TokenMatch(reference, candidate string) TokenMatchResult {
	refTokens := Tokenize(reference)
	candTokens := Tokenize(candidate)

	remaining := make(map[string]int, len(refTokens))
	for _, t := range refTokens {
		remaining[t]++
	}

	matched := make([]string, 0, len(candTokens))
	for _, t := range candTokens {
		if remaining[t] > 0 {
			remaining[t]--
			matched = append(matched, t)
		}
	}

	precision := Ratio(float64(len(matched)), float64(len(candTokens)))
	recall := Ratio(float64(len(matched)), float64(len(refTokens)))

	return TokenMatchResult{
		ReferenceTokens: refTokens,
		CandidateTokens: candTokens,
		MatchedTokens:   matched,
		Precision:       precision,
		Recall:          recall,
		F1Score:         F1(precision, recall),
	}
}

// F1 is the harmonic mean of precision and recall, 0 when both are 0.
func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// Jaccard returns |a ∩ b| / |a ∪ b| over two sets.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return Ratio(float64(inter), float64(union))
}

// Containment returns the fraction of tokens that occur as substrings of
// the case-folded text.
func Containment(tokens map[string]bool, text string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	folded := Fold(text)
	found := 0
	for t := range tokens {
		if strings.Contains(folded, t) {
			found++
		}
	}
	return float64(found) / float64(len(tokens))
}

// SetOf builds a set from a token slice.
func SetOf(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
