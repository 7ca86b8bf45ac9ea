package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotcommander/papereval/internal/discovery"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every evaluation document under the root directory",
	Long: `Discover evaluation documents under --root (default: current directory) and
evaluate them all. The discovery globs default to **/*.eval.{json,yaml,yml} and can be
changed with the 'patterns' configuration key.

The report ends with tier counts and the lowest final scores.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBatch(); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch() error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	files, err := discovery.NewFileDiscovery(s.cfg.Root, s.cfg.Patterns).DiscoverFiles()
	if err != nil {
		return fmt.Errorf("error discovering documents: %w", err)
	}
	s.logger.Debug("documents discovered", zap.String("root", s.cfg.Root), zap.Int("count", len(files)))

	docs := make([]document, len(files))
	for i, f := range files {
		docs[i] = document{path: f.Path, source: f.RelPath}
	}

	report := s.evaluate(docs, requestOverrides{})
	if err := s.finish(report); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	return nil
}
