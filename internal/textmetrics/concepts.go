package textmetrics

import (
	"regexp"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?;]+`)

	// Auxiliaries and the reporting verbs common in abstracts.
	verbWord = regexp.MustCompile(`^(is|are|was|were|be|been|being|has|have|had|do|does|did|can|could|will|would|shall|should|may|might|must|use|uses|used|using|propose|proposes|proposed|present|presents|presented|show|shows|shown|introduce|introduces|introduced|describe|describes|described|demonstrate|demonstrates|demonstrated|achieve|achieves|achieved)$`)
	verbSuffix = regexp.MustCompile(`^[a-z][a-z-]{2,}(ed|izes?|ises?)$`)
)

const (
	maxConceptWords = 3
	minConceptChars = 4
)

// IsVerbLike reports whether a case-folded word looks like a verb. This is
// a regex heuristic, not a part-of-speech tagger.
func IsVerbLike(word string) bool {
	return verbWord.MatchString(word) || verbSuffix.MatchString(word)
}

// Sentences splits text on sentence punctuation and drops blank pieces.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExtractConcepts pulls candidate key phrases out of free text. Each
// sentence is scanned for runs of content words; every run yields the 1 to
// 3 word windows starting at each of its words. Windows stop at stopwords
// and verb-like tokens. Phrases shorter than 4 characters are dropped and
// the result is deduplicated in first-seen order.
func ExtractConcepts(text string) []string {
	seen := make(map[string]bool)
	var concepts []string

	for _, sentence := range Sentences(text) {
		words := Words(sentence)
		for i := range words {
			if isBreak(words[i]) {
				continue
			}
			for n := 1; n <= maxConceptWords && i+n <= len(words); n++ {
				if isBreak(words[i+n-1]) {
					break
				}
				phrase := strings.Join(words[i:i+n], " ")
				if RuneLen(phrase) < minConceptChars || seen[phrase] {
					continue
				}
				seen[phrase] = true
				concepts = append(concepts, phrase)
			}
		}
	}

	return concepts
}

// ConceptCoverage is the fraction of the reference's concepts found as
// case-insensitive substrings of the candidate text.
func ConceptCoverage(reference, candidate string) (float64, []string, []string) {
	concepts := ExtractConcepts(reference)
	if len(concepts) == 0 {
		return 0, nil, nil
	}
	folded := Fold(candidate)
	var found, missing []string
	for _, c := range concepts {
		if strings.Contains(folded, c) {
			found = append(found, c)
		} else {
			missing = append(missing, c)
		}
	}
	return float64(len(found)) / float64(len(concepts)), found, missing
}

// CountWholeWords counts whole-word occurrences of any lexicon entry in
// text. Multi-word entries are matched as phrases.
func CountWholeWords(text string, lexicon []string) int {
	words := Words(text)
	count := 0
	for _, term := range lexicon {
		count += countPhrase(words, strings.Fields(term))
	}
	return count
}

// ContainsAny reports which lexicon entries occur as whole words in text.
func ContainsAny(text string, lexicon []string) []string {
	words := Words(text)
	var hits []string
	for _, term := range lexicon {
		if countPhrase(words, strings.Fields(term)) > 0 {
			hits = append(hits, term)
		}
	}
	return hits
}

func countPhrase(words, phrase []string) int {
	if len(phrase) == 0 {
		return 0
	}
	n := 0
outer:
	for i := 0; i+len(phrase) <= len(words); i++ {
		for j, p := range phrase {
			if words[i+j] != p {
				continue outer
			}
		}
		n++
	}
	return n
}

func isBreak(word string) bool {
	return stopwords[word] || IsVerbLike(word)
}
