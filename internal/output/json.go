package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/papereval/internal/evaluation"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	out        io.Writer
	quiet      bool
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter. The report goes to
// outputFile when set, otherwise to w (stdout when nil).
func NewJSONFormatter(w io.Writer, quiet, indent bool, outputFile string) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{
		out:        w,
		quiet:      quiet,
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONReport represents the complete JSON report structure
type JSONReport struct {
	Header  JSONHeader    `json:"header"`
	Summary JSONSummary   `json:"summary"`
	Results []JSONResult  `json:"results"`
	Errors  []JSONFailure `json:"errors,omitempty"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Root      string `json:"root,omitempty"`
}

// JSONSummary contains summary statistics
type JSONSummary struct {
	Summary
	Duration string `json:"duration,omitempty"`
}

// JSONResult is one assessment record and its source document.
type JSONResult struct {
	Source string            `json:"source"`
	Record evaluation.Record `json:"record"`
}

// JSONFailure is a document that failed to load.
type JSONFailure struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Format writes the report as JSON.
func (f *JSONFormatter) Format(report *Report) error {
	out := JSONReport{
		Header: JSONHeader{
			Tool:      ToolName,
			Version:   report.Version,
			Timestamp: time.Now().Format(time.RFC3339),
			Root:      report.Root,
		},
		Summary: JSONSummary{Summary: Summarize(report)},
		Results: make([]JSONResult, len(report.Results)),
	}
	if !report.StartTime.IsZero() {
		out.Summary.Duration = time.Since(report.StartTime).Round(time.Millisecond).String()
	}
	for i, res := range report.Results {
		out.Results[i] = JSONResult{Source: res.Source, Record: res.Record}
	}
	for _, e := range report.Errors {
		out.Errors = append(out.Errors, JSONFailure{Source: e.Source, Message: e.Message})
	}

	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		if !f.quiet {
			fmt.Fprintf(f.out, "Report written to %s\n", f.outputFile)
		}
		return nil
	}

	_, err = fmt.Fprintln(f.out, string(data))
	return err
}
