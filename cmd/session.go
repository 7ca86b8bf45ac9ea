package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dotcommander/papereval/internal/balance"
	"github.com/dotcommander/papereval/internal/config"
	"github.com/dotcommander/papereval/internal/evaluation"
	"github.com/dotcommander/papereval/internal/loader"
	"github.com/dotcommander/papereval/internal/logging"
	"github.com/dotcommander/papereval/internal/output"
	"github.com/dotcommander/papereval/internal/outputters"
	"github.com/dotcommander/papereval/internal/records"
)

// document is one file to evaluate: where to read it and how to name it
// in reports and the record store.
type document struct {
	path   string
	source string
}

// requestOverrides replace per-evaluation values from the command line.
// Zero means keep what the document says.
type requestOverrides struct {
	rating    int
	expertise int
}

func (o requestOverrides) validate() error {
	if o.rating != 0 && (o.rating < balance.MinRating || o.rating > balance.MaxRating) {
		return fmt.Errorf("--rating must be between %d and %d, got %d", balance.MinRating, balance.MaxRating, o.rating)
	}
	if o.expertise != 0 && (o.expertise < balance.MinRating || o.expertise > balance.MaxRating) {
		return fmt.Errorf("--expertise must be between %d and %d, got %d", balance.MinRating, balance.MaxRating, o.expertise)
	}
	return nil
}

// session wires configuration, logging, loading, and evaluation for one
// command invocation.
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	loader    *loader.Loader
	evaluator *evaluation.Evaluator
	now       func() time.Time
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if noClamp {
		cfg.Balance.Clamp = false
	}

	logger, err := logging.New(cfg.Verbose, cfg.Quiet)
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	ld, err := loader.New()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:       cfg,
		logger:    logger,
		loader:    ld,
		evaluator: evaluation.NewEvaluator(cfg.Tables, cfg.Calculator(), evaluation.WithLogger(logger)),
		now:       time.Now,
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// evaluate loads and scores every document. Documents that fail to load
// are reported and skipped.
func (s *session) evaluate(docs []document, overrides requestOverrides) *output.Report {
	report := &output.Report{
		Version:   version,
		Root:      s.cfg.Root,
		StartTime: s.now(),
	}

	for _, d := range docs {
		doc, err := s.loader.Load(d.path)
		if err != nil {
			s.logger.Warn("document skipped", zap.String("source", d.source), zap.Error(err))
			report.Errors = append(report.Errors, output.FileError{Source: d.source, Message: err.Error()})
			continue
		}
		report.Documents++

		for _, req := range doc.Evaluations {
			req = s.apply(req, overrides)
			report.Results = append(report.Results, output.Result{
				Source: d.source,
				Record: s.evaluator.Evaluate(req),
			})
		}
		s.logger.Debug("document evaluated",
			zap.String("source", d.source),
			zap.Int("evaluations", len(doc.Evaluations)))
	}
	return report
}

func (s *session) apply(req evaluation.Request, o requestOverrides) evaluation.Request {
	if req.ExpertiseWeight == 0 {
		req.ExpertiseWeight = s.cfg.Expertise
	}
	if o.expertise != 0 {
		req.ExpertiseWeight = o.expertise
	}
	if o.rating != 0 {
		req.Rating.Rating = o.rating
	}
	return req
}

// persist writes the report's records to the configured store.
func (s *session) persist(report *output.Report) error {
	if s.cfg.Store == "" {
		return nil
	}

	store, err := records.Open(s.cfg.Store)
	if err != nil {
		return err
	}
	changed := 0
	for _, res := range report.Results {
		if store.Put(res.Source, res.Record) {
			changed++
		}
	}
	if err := store.Save(s.now()); err != nil {
		return err
	}

	s.logger.Info("records stored",
		zap.String("store", s.cfg.Store),
		zap.Int("records", len(report.Results)),
		zap.Int("changed", changed))
	return nil
}

// finish prints the report, stores records, and fails when any document
// could not be loaded.
func (s *session) finish(report *output.Report) error {
	if err := outputters.NewOutputter(s.cfg).WithWriter(stdout).Format(report, s.cfg.Format); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	if err := s.persist(report); err != nil {
		return fmt.Errorf("error storing records: %w", err)
	}
	if n := len(report.Errors); n > 0 {
		return fmt.Errorf("%d document(s) failed to load", n)
	}
	return nil
}
