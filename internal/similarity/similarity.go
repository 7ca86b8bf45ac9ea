// Package similarity turns the primitive text metrics into domain-level
// comparisons between a system-produced artifact and its ground truth.
package similarity

import (
	"strings"

	"github.com/dotcommander/papereval/internal/textmetrics"
)

// Artifact is a titled piece of text: a research problem, a template
// header, or one side of an edit comparison.
type Artifact struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Text joins title and description.
func (a Artifact) Text() string {
	return joinText(a.Title, a.Description)
}

// IsEmpty reports whether both fields are blank.
func (a Artifact) IsEmpty() bool {
	return strings.TrimSpace(a.Title) == "" && strings.TrimSpace(a.Description) == ""
}

// Reference is the ground truth an artifact is compared against: either a
// free-text abstract or a structured title/description pair.
type Reference struct {
	Abstract string
	Artifact
}

// IsAbstract reports whether the reference is free text only.
func (r Reference) IsAbstract() bool {
	return strings.TrimSpace(r.Abstract) != "" && r.Artifact.IsEmpty()
}

// Text returns the full reference text. A structured reference without a
// description uses its abstract in that place.
func (r Reference) Text() string {
	if r.IsAbstract() {
		return r.Abstract
	}
	if strings.TrimSpace(r.Description) == "" {
		return joinText(r.Title, r.Abstract)
	}
	return r.Artifact.Text()
}

// IsEmpty reports whether the reference has no text at all.
func (r Reference) IsEmpty() bool {
	return strings.TrimSpace(r.Abstract) == "" && r.Artifact.IsEmpty()
}

// Abstract builds an abstract reference.
func Abstract(text string) Reference {
	return Reference{Abstract: text}
}

// Structured builds a title/description reference.
func Structured(title, description string) Reference {
	return Reference{Artifact: Artifact{Title: title, Description: description}}
}

// TitleResult explains a title alignment score.
type TitleResult struct {
	Score       float64 `json:"score"`
	Jaccard     float64 `json:"jaccard"`
	Containment float64 `json:"containment"`
}

// TitleAlignment scores how well the candidate title matches the reference:
// 0.4·jaccard + 0.6·containment over content-word sets.
//
// For a structured reference, containment is the share of reference title
// words present in the candidate title. An abstract has no title, so the
// direction flips: containment is the share of candidate title words
// grounded in the abstract, and jaccard compares against all abstract words.
func TitleAlignment(ref Reference, cand Artifact) TitleResult {
	candSet := textmetrics.SetOf(textmetrics.ContentWords(cand.Title))

	var jaccard, containment float64
	if ref.IsAbstract() {
		refSet := textmetrics.SetOf(textmetrics.ContentWords(ref.Abstract))
		jaccard = textmetrics.Jaccard(refSet, candSet)
		containment = textmetrics.Containment(candSet, ref.Abstract)
	} else {
		refSet := textmetrics.SetOf(textmetrics.ContentWords(ref.Title))
		jaccard = textmetrics.Jaccard(refSet, candSet)
		containment = textmetrics.Containment(refSet, cand.Title)
	}

	return TitleResult{
		Score:       0.4*jaccard + 0.6*containment,
		Jaccard:     jaccard,
		Containment: containment,
	}
}

// CoverageResult explains a content coverage score.
type CoverageResult struct {
	Score           float64  `json:"score"`
	ConceptCoverage float64  `json:"conceptCoverage"`
	LengthRatio     float64  `json:"lengthRatio"`
	Found           []string `json:"found,omitempty"`
	Missing         []string `json:"missing,omitempty"`
}

// ContentCoverage is 0.7·conceptCoverage + 0.3·min(len(cand)/len(ref), 1),
// where conceptCoverage is the share of the reference's extracted concepts
// present in the candidate.
func ContentCoverage(ref Reference, cand Artifact) CoverageResult {
	refText := ref.Text()
	candText := cand.Text()

	coverage, found, missing := textmetrics.ConceptCoverage(refText, candText)
	lengthRatio := min(textmetrics.Ratio(
		float64(textmetrics.RuneLen(candText)),
		float64(textmetrics.RuneLen(refText)),
	), 1.0)

	return CoverageResult{
		Score:           0.7*coverage + 0.3*lengthRatio,
		ConceptCoverage: coverage,
		LengthRatio:     lengthRatio,
		Found:           found,
		Missing:         missing,
	}
}

// SpecificTerms is the lexicon that marks a concrete, scoped problem.
var SpecificTerms = []string{
	"how", "why", "what", "which", "where", "when",
	"improve", "enhance", "optimize", "reduce", "increase",
	"challenge", "problem", "issue", "question", "limitation",
}

// SpecificityResult explains a specificity score.
type SpecificityResult struct {
	Score     float64 `json:"score"`
	TermCount int     `json:"termCount"`
}

// Specificity is 0.7·min(terms/5, 1) + 0.3·min(len(description)/500, 1).
func Specificity(cand Artifact) SpecificityResult {
	terms := textmetrics.CountWholeWords(cand.Text(), SpecificTerms)
	length := float64(textmetrics.RuneLen(cand.Description))

	return SpecificityResult{
		Score:     0.7*min(float64(terms)/5, 1.0) + 0.3*min(length/500, 1.0),
		TermCount: terms,
	}
}

// Split weights used when the ground truth is a free-text abstract.
const (
	abstractTitlePrecision = 0.4
	abstractDescPrecision  = 0.6
	abstractTitleRecall    = 0.3
	abstractDescRecall     = 0.7
)

// AccuracyResult holds artifact-level precision, recall and F1.
type AccuracyResult struct {
	Mode      string                                  `json:"mode"` // abstract or structured
	Precision float64                                 `json:"precision"`
	Recall    float64                                 `json:"recall"`
	F1Score   float64                                 `json:"f1Score"`
	Matches   map[string]textmetrics.TokenMatchResult `json:"matches"`
}

// Accuracy computes token precision/recall/F1 of an artifact. Against an
// abstract, title and description are matched separately and blended
// (0.4/0.6 for precision, 0.3/0.7 for recall); against a structured
// reference the combined texts are matched directly.
func Accuracy(ref Reference, cand Artifact) AccuracyResult {
	if ref.IsAbstract() {
		title := textmetrics.TokenMatch(ref.Abstract, cand.Title)
		desc := textmetrics.TokenMatch(ref.Abstract, cand.Description)
		p := abstractTitlePrecision*title.Precision + abstractDescPrecision*desc.Precision
		r := abstractTitleRecall*title.Recall + abstractDescRecall*desc.Recall
		return AccuracyResult{
			Mode:      "abstract",
			Precision: p,
			Recall:    r,
			F1Score:   textmetrics.F1(p, r),
			Matches: map[string]textmetrics.TokenMatchResult{
				"title":       title,
				"description": desc,
			},
		}
	}

	overall := textmetrics.TokenMatch(ref.Text(), cand.Text())
	return AccuracyResult{
		Mode:      "structured",
		Precision: overall.Precision,
		Recall:    overall.Recall,
		F1Score:   overall.F1Score,
		Matches:   map[string]textmetrics.TokenMatchResult{"overall": overall},
	}
}

func joinText(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
