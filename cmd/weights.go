package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/papereval/internal/config"
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/types"
)

var (
	weightsValidate  bool
	weightsDimension string
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print or validate the effective weight tables",
	Long: `Print the weight tables after configuration overrides as YAML. The output can be
pasted under the 'weights' key of .paperevalrc.yaml and edited.

With --validate, only check that every table sums to 1.0.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWeights(); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)
	weightsCmd.Flags().BoolVar(&weightsValidate, "validate", false, "Validate the weight tables and exit")
	weightsCmd.Flags().StringVar(&weightsDimension, "dimension", "", "Only print tables of this dimension")
}

func runWeights() error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if weightsDimension != "" && !types.IsDimension(weightsDimension) {
		return fmt.Errorf("unknown dimension %q", weightsDimension)
	}

	if weightsValidate {
		if err := cfg.Tables.Validate(); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(stdout, "✓ %d weight tables valid\n", len(cfg.Tables))
		}
		return nil
	}

	data, err := yaml.Marshal(map[string]config.WeightOverrides{"weights": tablesToMap(cfg.Tables, weightsDimension)})
	if err != nil {
		return fmt.Errorf("error marshaling YAML: %w", err)
	}
	_, err = stdout.Write(data)
	return err
}

// tablesToMap lays the tables out in the configuration shape.
func tablesToMap(tables scoring.Tables, dimension string) config.WeightOverrides {
	out := make(config.WeightOverrides)
	for _, key := range tables.SortedKeys() {
		if dimension != "" && key.Dimension != dimension {
			continue
		}
		if out[key.Dimension] == nil {
			out[key.Dimension] = make(map[string]map[string]float64)
		}
		weights := make(map[string]float64)
		for _, w := range tables[key].Weights() {
			weights[w.Key] = w.Value
		}
		out[key.Dimension][key.Family] = weights
	}
	return out
}
