package output

import (
	"sort"
	"time"

	"github.com/dotcommander/papereval/internal/evaluation"
	"github.com/dotcommander/papereval/internal/types"
)

// ToolName is reported in every output header.
const ToolName = "papereval"

// LowestScoringLimit caps the lowest-scoring list of a summary.
const LowestScoringLimit = 5

// Result is one record together with the document it came from.
type Result struct {
	Source string
	Record evaluation.Record
}

// FileError is a document that could not be loaded.
type FileError struct {
	Source  string
	Message string
}

// Report is everything a formatter renders for one run.
type Report struct {
	Version   string
	Root      string
	StartTime time.Time
	Documents int
	Results   []Result
	Errors    []FileError
}

// Summary holds the aggregate statistics of a report.
type Summary struct {
	Documents     int            `json:"documents"`
	Evaluations   int            `json:"evaluations"`
	FailedFiles   int            `json:"failedFiles"`
	Scored        int            `json:"scored"`
	StatusCounts  map[string]int `json:"statusCounts"`
	TierCounts    map[string]int `json:"tierCounts"`
	MeanAutomated float64        `json:"meanAutomated"`
	MeanFinal     float64        `json:"meanFinal"`
	Lowest        []Result       `json:"-"`
}

// Summarize computes report statistics. Means, tiers and the lowest list
// cover scored records only. Unsupported dimensions carry no scores, and
// insufficient-data scores come from missing inputs.
func Summarize(r *Report) Summary {
	s := Summary{
		Documents:    r.Documents,
		Evaluations:  len(r.Results),
		FailedFiles:  len(r.Errors),
		StatusCounts: make(map[string]int),
		TierCounts:   make(map[string]int),
	}

	var scored []Result
	var sumAuto, sumFinal float64
	for _, res := range r.Results {
		rec := res.Record
		s.StatusCounts[rec.Status]++
		if !isScored(rec.Status) {
			continue
		}
		scored = append(scored, res)
		s.TierCounts[rec.Tier]++
		sumAuto += rec.AutomatedScore
		sumFinal += rec.FinalScore()
	}

	s.Scored = len(scored)
	if n := float64(len(scored)); n > 0 {
		s.MeanAutomated = sumAuto / n
		s.MeanFinal = sumFinal / n
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Record.FinalScore() < scored[j].Record.FinalScore()
	})
	if len(scored) > LowestScoringLimit {
		scored = scored[:LowestScoringLimit]
	}
	s.Lowest = scored
	return s
}

func isScored(status string) bool {
	return status != types.StatusUnsupportedDimension && status != types.StatusInsufficientData
}

// Formatter renders a report.
type Formatter interface {
	Format(report *Report) error
}
