package similarity

import "github.com/dotcommander/papereval/internal/textmetrics"

// Bundle is the full primitive comparison of one field.
type Bundle struct {
	Levenshtein       textmetrics.SimilarityResult   `json:"levenshtein"`
	TokenMatch        textmetrics.TokenMatchResult   `json:"tokenMatch"`
	Edits             textmetrics.EditProfile        `json:"edits"`
	SpecialCharacters textmetrics.SpecialCharProfile `json:"specialCharacters"`
}

// Field names used by CompareFields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldOverall     = "overall"
)

// BundleOf compares reference and candidate with every primitive metric.
// The special character profile describes the candidate.
func BundleOf(reference, candidate string) Bundle {
	return Bundle{
		Levenshtein:       textmetrics.Levenshtein(reference, candidate),
		TokenMatch:        textmetrics.TokenMatch(reference, candidate),
		Edits:             textmetrics.EditProfileOf(reference, candidate),
		SpecialCharacters: textmetrics.SpecialCharacters(candidate),
	}
}

// CompareFields is the edit analysis of an original artifact against a
// reviewer-edited version, keyed by field name.
func CompareFields(original, edited Artifact) map[string]Bundle {
	return map[string]Bundle{
		FieldTitle:       BundleOf(original.Title, edited.Title),
		FieldDescription: BundleOf(original.Description, edited.Description),
		FieldOverall:     BundleOf(original.Text(), edited.Text()),
	}
}
