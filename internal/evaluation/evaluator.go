package evaluation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dotcommander/papereval/internal/balance"
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/similarity"
	"github.com/dotcommander/papereval/internal/types"
)

// recordNamespace seeds the name-based record IDs.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/dotcommander/papereval/records"))

// Notices attached to records that could not be fully compared.
const (
	NoticeMissingGroundTruth = "insufficient data for comparison: ground truth is missing"
	NoticeMissingCandidate   = "insufficient data for comparison: candidate artifact is missing"
	NoticeMissingOriginal    = "insufficient data for comparison: edited artifact has no original"
)

// Evaluator runs the scoring engine. It holds only configuration, so a
// single Evaluator is safe for concurrent use.
type Evaluator struct {
	tables     scoring.Tables
	calculator balance.Calculator
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the source of EvaluatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEvaluator creates an evaluator over validated weight tables.
func NewEvaluator(tables scoring.Tables, calculator balance.Calculator, opts ...Option) *Evaluator {
	e := &Evaluator{
		tables:     tables,
		calculator: calculator,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores one request. Apart from EvaluatedAt the record depends
// only on the request and the evaluator's configuration.
func (e *Evaluator) Evaluate(req Request) Record {
	rec := Record{
		ID:              RecordID(req),
		Dimension:       req.Dimension,
		Rating:          req.Rating,
		ExpertiseWeight: min(max(req.ExpertiseWeight, balance.MinRating), balance.MaxRating),
		EvaluatedAt:     e.now().UTC(),
	}

	compute, ok := dimensionFuncs[req.Dimension]
	if !ok {
		rec.Status = types.StatusUnsupportedDimension
		rec.Notice = fmt.Sprintf("dimension %q is not supported", req.Dimension)
		e.logger.Warn("unsupported dimension", zap.String("dimension", req.Dimension))
		return rec
	}

	rec.Families = make(map[string]scoring.AutomatedScore)
	overallInputs := make(map[string]scoring.Input)
	for family, values := range compute(req) {
		table, ok := e.tables.Lookup(req.Dimension, family)
		if !ok {
			e.logger.Warn("no weight table",
				zap.String("dimension", req.Dimension),
				zap.String("family", family))
			continue
		}
		score := scoring.Aggregate(family, table, values)
		rec.Families[family] = score
		overallInputs[family] = scoring.Input{
			Value:  score.Score,
			Reason: familyReasons.Reason(family, score.Score),
		}
	}

	if table, ok := e.tables.Lookup(req.Dimension, types.FamilyOverall); ok {
		overall := scoring.Aggregate(types.FamilyOverall, table, overallInputs)
		rec.AutomatedScore = overall.Score
		rec.Tier = overall.Tier
		rec.Overall = overall.Dimensions
	}

	balanced := e.calculator.CalculateWithExpertise(rec.AutomatedScore, req.Rating.Rating, rec.ExpertiseWeight)
	rec.Balanced = &balanced

	rec.Status = types.StatusUnrated
	if req.Rating.IsRated() {
		rec.Status = types.StatusRated
	}

	if req.Edited != nil && !req.Candidate.IsEmpty() {
		rec.EditAnalysis = similarity.CompareFields(req.Candidate.Problem(), req.Edited.Problem())
	}

	switch {
	case req.GroundTruth.IsEmpty():
		rec.Status, rec.Notice = types.StatusInsufficientData, NoticeMissingGroundTruth
	case req.Candidate.IsEmpty() && req.Edited != nil:
		rec.Status, rec.Notice = types.StatusInsufficientData, NoticeMissingOriginal
	case req.Candidate.IsEmpty():
		rec.Status, rec.Notice = types.StatusInsufficientData, NoticeMissingCandidate
	}

	e.logger.Debug("evaluated",
		zap.String("id", rec.ID),
		zap.String("dimension", rec.Dimension),
		zap.String("status", rec.Status),
		zap.Float64("automated", rec.AutomatedScore),
		zap.Float64("final", balanced.FinalScore),
		zap.String("agreement", string(balanced.AgreementLevel)))

	return rec
}

// EvaluateAll evaluates requests in order.
func (e *Evaluator) EvaluateAll(reqs []Request) []Record {
	out := make([]Record, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, e.Evaluate(r))
	}
	return out
}

// RecordID derives a stable UUIDv5 from the dimension and the compared
// artifacts. The rating is excluded so re-rating keeps the record identity.
func RecordID(req Request) string {
	key := struct {
		Dimension   string    `json:"dimension"`
		GroundTruth Reference `json:"groundTruth"`
		Candidate   Artifact  `json:"candidate"`
		Edited      *Artifact `json:"edited,omitempty"`
		Problem     *Artifact `json:"problem,omitempty"`
	}{req.Dimension, req.GroundTruth, req.Candidate, req.Edited, req.Problem}

	data, err := json.Marshal(key)
	if err != nil {
		// unreachable: key holds only strings and numbers
		data = []byte(req.Dimension)
	}
	return uuid.NewSHA1(recordNamespace, data).String()
}
