package similarity

import (
	"strings"

	"github.com/dotcommander/papereval/internal/textmetrics"
)

// LabelThreshold is the minimum Levenshtein similarity for two labels to
// match when neither contains the other.
const LabelThreshold = 0.8

// LabelPair is one matched reference/candidate label.
type LabelPair struct {
	Reference      string  `json:"reference"`
	Candidate      string  `json:"candidate"`
	ReferenceIndex int     `json:"referenceIndex"`
	CandidateIndex int     `json:"candidateIndex"`
	Similarity     float64 `json:"similarity"`
}

// LabelMatchResult is a fuzzy set comparison of two label lists.
type LabelMatchResult struct {
	Precision      float64     `json:"precision"`
	Recall         float64     `json:"recall"`
	F1Score        float64     `json:"f1Score"`
	MeanSimilarity float64     `json:"meanSimilarity"`
	Pairs          []LabelPair `json:"pairs,omitempty"`
	Missing        []string    `json:"missing,omitempty"`
	Extra          []string    `json:"extra,omitempty"`
}

// LabelMatch pairs each reference label with its most similar unused
// candidate label. Two labels match when their case-folded Levenshtein
// similarity reaches LabelThreshold or one contains the other. Blank labels
// are ignored.
func LabelMatch(reference, candidate []string) LabelMatchResult {
	refs := foldLabels(reference)
	cands := foldLabels(candidate)

	used := make(map[int]bool, len(cands))
	var res LabelMatchResult
	simSum := 0.0

	for _, r := range refs {
		best, bestSim := -1, -1.0
		for ci, c := range cands {
			if used[ci] {
				continue
			}
			sim := textmetrics.Levenshtein(r.folded, c.folded).SimilarityScore
			if !labelsMatch(r.folded, c.folded, sim) {
				continue
			}
			if sim > bestSim {
				best, bestSim = ci, sim
			}
		}
		if best < 0 {
			res.Missing = append(res.Missing, r.raw)
			continue
		}
		used[best] = true
		simSum += bestSim
		res.Pairs = append(res.Pairs, LabelPair{
			Reference:      r.raw,
			Candidate:      cands[best].raw,
			ReferenceIndex: r.index,
			CandidateIndex: cands[best].index,
			Similarity:     bestSim,
		})
	}

	for ci, c := range cands {
		if !used[ci] {
			res.Extra = append(res.Extra, c.raw)
		}
	}

	matched := float64(len(res.Pairs))
	res.Precision = textmetrics.Ratio(matched, float64(len(cands)))
	res.Recall = textmetrics.Ratio(matched, float64(len(refs)))
	res.F1Score = textmetrics.F1(res.Precision, res.Recall)
	res.MeanSimilarity = textmetrics.Ratio(simSum, matched)
	return res
}

// LabelsEqual reports whether two labels match under LabelMatch rules.
func LabelsEqual(a, b string) bool {
	fa := textmetrics.Fold(strings.TrimSpace(a))
	fb := textmetrics.Fold(strings.TrimSpace(b))
	if fa == "" || fb == "" {
		return false
	}
	return labelsMatch(fa, fb, textmetrics.Levenshtein(fa, fb).SimilarityScore)
}

func labelsMatch(a, b string, sim float64) bool {
	return sim >= LabelThreshold || strings.Contains(a, b) || strings.Contains(b, a)
}

type label struct {
	raw    string
	folded string
	index  int
}

func foldLabels(labels []string) []label {
	out := make([]label, 0, len(labels))
	for i, l := range labels {
		folded := textmetrics.Fold(strings.TrimSpace(l))
		if folded == "" {
			continue
		}
		out = append(out, label{raw: l, folded: folded, index: i})
	}
	return out
}
