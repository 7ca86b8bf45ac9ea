package quality

import (
	"regexp"
	"strings"

	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/textmetrics"
	"github.com/dotcommander/papereval/internal/types"
)

// Plausible publication years.
const (
	MinYear = 1600
	MaxYear = 2100
)

var (
	doiPattern    = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	doiPrefixes   = []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"}
	authorPattern = regexp.MustCompile(`^\p{L}[\p{L}'.\-]*(?:[ ,]+\p{L}[\p{L}'.\-]*)+$`)
)

// NormalizeDOI strips resolver prefixes and surrounding space and folds case.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	lower := strings.ToLower(doi)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			doi = doi[len(p):]
			break
		}
	}
	return strings.ToLower(strings.TrimSpace(doi))
}

// MetadataCompleteness is the share of title, authors, DOI, venue and year
// that are present.
func MetadataCompleteness(m types.Metadata) Result {
	present := map[string]bool{
		"title":           strings.TrimSpace(m.Title) != "",
		"authors":         len(nonBlank(m.Authors)) > 0,
		"doi":             strings.TrimSpace(m.DOI) != "",
		"venue":           strings.TrimSpace(m.Venue) != "",
		"publicationYear": m.Year != 0,
	}
	n := 0
	var missing []string
	for _, field := range []string{"title", "authors", "doi", "venue", "publicationYear"} {
		if present[field] {
			n++
		} else {
			missing = append(missing, field)
		}
	}
	return result(scoring.KeyCompleteness, float64(n)/5, map[string]any{
		"present": n,
		"missing": missing,
	})
}

// DOIFormat is 1 for a syntactically valid DOI, with or without a
// resolver prefix.
func DOIFormat(doi string) Result {
	normalized := NormalizeDOI(doi)
	score := 0.0
	if doiPattern.MatchString(normalized) {
		score = 1
	}
	return result(scoring.KeyDOIFormat, score, map[string]any{"doi": normalized})
}

// YearFormat is 1 for a year between MinYear and MaxYear.
func YearFormat(year int) Result {
	score := 0.0
	if year >= MinYear && year <= MaxYear {
		score = 1
	}
	return result(scoring.KeyYearFormat, score, map[string]any{"year": year})
}

// AuthorFormat is the share of authors written as at least two name parts.
func AuthorFormat(authors []string) Result {
	names := nonBlank(authors)
	valid := 0
	var malformed []string
	for _, a := range names {
		if authorPattern.MatchString(a) {
			valid++
		} else {
			malformed = append(malformed, a)
		}
	}
	return result(scoring.KeyAuthorFormat, textmetrics.Ratio(float64(valid), float64(len(names))), map[string]any{
		"authors":   len(names),
		"malformed": malformed,
	})
}

func nonBlank(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
