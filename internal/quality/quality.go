// Package quality scores a single artifact on structural heuristics,
// mostly without reference to ground truth.
package quality

import (
	"strings"

	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/textmetrics"
)

// Result is one quality sub-score with its reason sentence and the raw
// measurements behind it.
type Result struct {
	Score   float64        `json:"score"`
	Reason  string         `json:"reason"`
	Details map[string]any `json:"details,omitempty"`
}

// Input converts the result for score aggregation.
func (r Result) Input() scoring.Input {
	return scoring.Input{Value: r.Score, Reason: r.Reason}
}

// Reasons holds the sentence for each level of every quality metric.
var Reasons = scoring.ReasonTable{
	scoring.KeyTitleQuality: {
		High:   "Title is well-formed, concise, and uses domain terminology.",
		Medium: "Title is acceptable but could be more precise or better sized.",
		Low:    "Title is too short, too long, or lacks domain terminology.",
	},
	scoring.KeyDescriptionQuality: {
		High:   "Description is well-structured with clear context, method, and objective.",
		Medium: "Description covers some elements but lacks structure or detail.",
		Low:    "Description is too brief or missing context, method, and objective.",
	},
	scoring.KeyRelevance: {
		High:   "Problem is highly relevant to the source paper.",
		Medium: "Problem is partially relevant to the source paper.",
		Low:    "Problem shows little overlap with the source paper.",
	},
	scoring.KeyEvidenceQuality: {
		High:   "Problem is well supported by evidence, figures, and method references.",
		Medium: "Problem has some supporting evidence.",
		Low:    "Problem lacks supporting evidence.",
	},
	scoring.KeyPropertyCoverage: {
		High:   "Template defines enough properties with required fields and varied types.",
		Medium: "Template property set is usable but thin or uniform.",
		Low:    "Template defines too few properties to capture the research.",
	},
	scoring.KeyResearchAlignment: {
		High:   "Template properties align closely with the research problem.",
		Medium: "Some template properties relate to the research problem.",
		Low:    "Template properties do not reflect the research problem.",
	},
	scoring.KeyCompleteness: {
		High:   "Metadata is complete.",
		Medium: "Metadata is missing some fields.",
		Low:    "Metadata is largely incomplete.",
	},
	scoring.KeyDOIFormat: {
		High:   "DOI is well-formed.",
		Medium: "DOI is partially valid.",
		Low:    "DOI is missing or malformed.",
	},
	scoring.KeyYearFormat: {
		High:   "Publication year is plausible.",
		Medium: "Publication year is questionable.",
		Low:    "Publication year is missing or implausible.",
	},
	scoring.KeyAuthorFormat: {
		High:   "Author names are consistently formatted.",
		Medium: "Some author names are incomplete.",
		Low:    "Author names are missing or malformed.",
	},
}

func result(key string, score float64, details map[string]any) Result {
	score = textmetrics.Clamp01(score)
	return Result{
		Score:   score,
		Reason:  Reasons.Reason(key, score),
		Details: details,
	}
}

// windowScore is 1 inside [lo, hi], proportional credit below lo, and
// credit decaying to 0 at 2·hi above it.
func windowScore(v, lo, hi float64) float64 {
	switch {
	case v <= 0:
		return 0
	case v < lo:
		return v / lo
	case v <= hi:
		return 1
	default:
		return max(0, 1-(v-hi)/hi)
	}
}

// stemHits returns the lexicon stems that begin any word of text, so
// "method" also finds "methods" and "methodology".
func stemHits(text string, stems []string) []string {
	words := textmetrics.Words(text)
	var hits []string
	for _, stem := range stems {
		for _, w := range words {
			if strings.HasPrefix(w, stem) {
				hits = append(hits, stem)
				break
			}
		}
	}
	return hits
}
