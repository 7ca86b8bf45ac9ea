package textmetrics

// SimilarityResult is the outcome of a Levenshtein comparison.
type SimilarityResult struct {
	Distance           int     `json:"distance"`
	NormalizedDistance float64 `json:"normalizedDistance"`
	SimilarityScore    float64 `json:"similarityScore"`
}

// Levenshtein computes the unit-cost edit distance between reference and
// candidate and normalizes it by the longer rune length.
func Levenshtein(reference, candidate string) SimilarityResult {
	ref := []rune(reference)
	cand := []rune(candidate)

	switch {
	case len(ref) == 0 && len(cand) == 0:
		return SimilarityResult{SimilarityScore: 1}
	case len(ref) == 0:
		return SimilarityResult{Distance: len(cand), NormalizedDistance: 1}
	case len(cand) == 0:
		return SimilarityResult{Distance: len(ref), NormalizedDistance: 1}
	}

	dist := distance(ref, cand)
	longest := max(len(ref), len(cand))
	normalized := float64(dist) / float64(longest)

	return SimilarityResult{
		Distance:           dist,
		NormalizedDistance: normalized,
		SimilarityScore:    1 - normalized,
	}
}

// Distance returns only the edit distance.
func Distance(a, b string) int {
	return distance([]rune(a), []rune(b))
}

func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
