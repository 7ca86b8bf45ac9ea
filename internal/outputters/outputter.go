package outputters

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/papereval/internal/config"
	"github.com/dotcommander/papereval/internal/output"
	"github.com/dotcommander/papereval/internal/types"
)

// Outputter handles output formatting
type Outputter struct {
	config *config.Config
	out    io.Writer
}

// NewOutputter creates a new Outputter writing to stdout.
func NewOutputter(config *config.Config) *Outputter {
	return &Outputter{
		config: config,
		out:    os.Stdout,
	}
}

// WithWriter redirects console output and write confirmations.
func (o *Outputter) WithWriter(w io.Writer) *Outputter {
	o.out = w
	return o
}

// Formatter returns the formatter for format.
func (o *Outputter) Formatter(format string) (output.Formatter, error) {
	switch format {
	case types.FormatConsole:
		return output.NewConsoleFormatter(o.out, o.config.Quiet, o.config.Verbose), nil
	case types.FormatJSON:
		return output.NewJSONFormatter(o.out, o.config.Quiet, true, o.config.Output), nil
	case types.FormatMarkdown:
		return output.NewMarkdownFormatter(o.out, o.config.Quiet, o.config.Verbose, o.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Format renders the report using the given format
func (o *Outputter) Format(report *output.Report, format string) error {
	if report.StartTime.IsZero() {
		report.StartTime = time.Now()
	}
	if report.Root == "" {
		report.Root = o.config.Root
	}

	formatter, err := o.Formatter(format)
	if err != nil {
		return err
	}
	return formatter.Format(report)
}
