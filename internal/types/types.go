// Package types provides shared types used across the papereval codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

// Dimension constants name the evaluable artifacts. They double as the
// keys records are stored under.
const (
	DimensionResearchProblem = "research_problem"
	DimensionTemplate        = "template"
	DimensionMetadata        = "metadata"
	DimensionResearchField   = "research_field"
	DimensionContent         = "content"
)

// Dimensions lists every supported dimension in display order.
var Dimensions = []string{
	DimensionMetadata,
	DimensionResearchField,
	DimensionResearchProblem,
	DimensionTemplate,
	DimensionContent,
}

// IsDimension reports whether name is a supported dimension.
func IsDimension(name string) bool {
	for _, d := range Dimensions {
		if d == name {
			return true
		}
	}
	return false
}

// Metric family constants.
const (
	FamilyAccuracy = "accuracy"
	FamilyQuality  = "quality"
	FamilyOverall  = "overall"
)

// Record status constants.
const (
	StatusUnrated              = "unrated"
	StatusRated                = "rated"
	StatusInsufficientData     = "insufficient_data"
	StatusUnsupportedDimension = "unsupported_dimension"
)

// Output format constants.
const (
	FormatConsole  = "console"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)
