package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	storePath    string
	noClamp      bool
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

// exitFunc and stdout are swapped out by tests.
var (
	exitFunc           = os.Exit
	stdout   io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:     "papereval",
	Short:   "Score AI-generated paper analyses against ground truth",
	Version: version,
	Long: `Papereval scores AI-generated paper-analysis artifacts (metadata, research field,
research problem, template, and content) against ground-truth references. Automated
similarity and quality metrics are combined with expertise-weighted human ratings into
a balanced final score.

Evaluation documents are JSON or YAML files. Use 'score' for explicit files and
'batch' to discover every *.eval.{json,yaml,yml} file under a root directory.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Root directory for batch discovery (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show metric breakdowns and debug logs")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format json or markdown)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Write records to this JSON store (last write wins per file#dimension)")
	rootCmd.PersistentFlags().BoolVar(&noClamp, "no-clamp", false, "Let final scores exceed 1.0 for high-expertise ratings")

	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
}

// fail reports err the way every command does and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitFunc(1)
}
