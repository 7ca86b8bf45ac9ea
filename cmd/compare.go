package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/papereval/internal/similarity"
)

var (
	compareReference string
	compareCandidate string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Print the similarity bundle of two texts as JSON",
	Long: `Compare a reference text with a candidate text and print the similarity bundle:
Levenshtein similarity, token match, edit profile, and the candidate's special
character profile.

Example:
  papereval compare --reference "Graph neural networks" --candidate "Graph networks"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCompare(); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareReference, "reference", "", "Reference text")
	compareCmd.Flags().StringVar(&compareCandidate, "candidate", "", "Candidate text")
	_ = compareCmd.MarkFlagRequired("reference")
	_ = compareCmd.MarkFlagRequired("candidate")
}

func runCompare() error {
	bundle := similarity.BundleOf(compareReference, compareCandidate)

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}
