package quality

import (
	"strings"

	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/textmetrics"
	"github.com/dotcommander/papereval/internal/types"
)

// Property coverage thresholds.
const (
	GoodPropertyCount = 3
	GoodTypeVariety   = 2
)

// PropertyCoverage scores a template's property set: 0.4·count +
// 0.3·required + 0.3·variety. Three properties, one required property and
// two distinct types each earn full credit.
func PropertyCoverage(props []types.Property) Result {
	count := 0
	required := false
	kinds := make(map[string]bool)
	for _, p := range props {
		if strings.TrimSpace(p.Label) == "" {
			continue
		}
		count++
		required = required || p.Required
		if t := textmetrics.Fold(strings.TrimSpace(p.Type)); t != "" {
			kinds[t] = true
		}
	}

	countScore := min(float64(count)/GoodPropertyCount, 1.0)
	requiredScore := 0.0
	if required {
		requiredScore = 1
	}
	varietyScore := min(float64(len(kinds))/GoodTypeVariety, 1.0)

	return result(scoring.KeyPropertyCoverage, 0.4*countScore+0.3*requiredScore+0.3*varietyScore, map[string]any{
		"properties": count,
		"required":   required,
		"types":      len(kinds),
	})
}

// ResearchAlignment is the share of property labels containing a content
// word of at least four characters from the research problem.
func ResearchAlignment(props []types.Property, problemTitle, problemDescription string) Result {
	terms := textmetrics.WordSet(problemTitle+" "+problemDescription, 4)

	total, aligned := 0, 0
	var matched []string
	for _, p := range props {
		label := textmetrics.Fold(strings.TrimSpace(p.Label))
		if label == "" {
			continue
		}
		total++
		for term := range terms {
			if strings.Contains(label, term) {
				aligned++
				matched = append(matched, p.Label)
				break
			}
		}
	}

	return result(scoring.KeyResearchAlignment, textmetrics.Ratio(float64(aligned), float64(total)), map[string]any{
		"aligned":    aligned,
		"properties": total,
		"matched":    matched,
	})
}
