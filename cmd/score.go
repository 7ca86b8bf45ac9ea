package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dotcommander/papereval/internal/discovery"
)

var (
	scoreRating    int
	scoreExpertise int
)

var scoreCmd = &cobra.Command{
	Use:   "score FILE...",
	Short: "Evaluate one or more evaluation documents",
	Long: `Evaluate the given JSON or YAML evaluation documents and print one record per
evaluation. --rating and --expertise replace the values of every evaluation.

Examples:
  papereval score paper.eval.yaml
  papereval score --rating 4 --expertise 3 a.eval.json b.eval.yaml
  papereval score --store records.json --format json -o report.json paper.eval.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(args); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().IntVar(&scoreRating, "rating", 0, "Override the rating (1-5) of every evaluation")
	scoreCmd.Flags().IntVar(&scoreExpertise, "expertise", 0, "Override the expertise weight (1-5) of every evaluation")
}

func runScore(args []string) error {
	overrides := requestOverrides{rating: scoreRating, expertise: scoreExpertise}
	if err := overrides.validate(); err != nil {
		return err
	}

	docs := make([]document, 0, len(args))
	for _, arg := range args {
		abs, err := discovery.ValidateFilePath(arg)
		if err != nil {
			return err
		}
		docs = append(docs, document{path: abs, source: filepath.ToSlash(filepath.Clean(arg))})
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	report := s.evaluate(docs, overrides)
	if err := s.finish(report); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	return nil
}
