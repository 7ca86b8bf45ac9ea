package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dotcommander/papereval/internal/evaluation"
	"github.com/dotcommander/papereval/internal/types"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	out        io.Writer
	quiet      bool
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(w io.Writer, quiet, verbose bool, outputFile string) *MarkdownFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &MarkdownFormatter{
		out:        w,
		quiet:      quiet,
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// Format renders the report as Markdown.
func (f *MarkdownFormatter) Format(report *Report) error {
	var builder strings.Builder
	sum := Summarize(report)

	builder.WriteString("# Papereval Report\n\n")
	builder.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	if report.Root != "" {
		builder.WriteString(fmt.Sprintf("**Root:** %s\n\n", report.Root))
	}
	if !report.StartTime.IsZero() {
		builder.WriteString(fmt.Sprintf("**Duration:** %v\n\n", time.Since(report.StartTime).Round(time.Millisecond)))
	}
	builder.WriteString(strings.Repeat("-", 50) + "\n\n")

	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Value |\n")
	builder.WriteString("|--------|-------|\n")
	builder.WriteString(fmt.Sprintf("| Documents | %d |\n", sum.Documents))
	builder.WriteString(fmt.Sprintf("| Evaluations | %d |\n", sum.Evaluations))
	builder.WriteString(fmt.Sprintf("| Failed Documents | %d |\n", sum.FailedFiles))
	builder.WriteString(fmt.Sprintf("| Rated | %d |\n", sum.StatusCounts[types.StatusRated]))
	builder.WriteString(fmt.Sprintf("| Unrated | %d |\n", sum.StatusCounts[types.StatusUnrated]))
	builder.WriteString(fmt.Sprintf("| Insufficient Data | %d |\n", sum.StatusCounts[types.StatusInsufficientData]))
	builder.WriteString(fmt.Sprintf("| Unsupported | %d |\n", sum.StatusCounts[types.StatusUnsupportedDimension]))
	builder.WriteString(fmt.Sprintf("| Mean Automated | %.2f |\n", sum.MeanAutomated))
	builder.WriteString(fmt.Sprintf("| Mean Final | %.2f |\n", sum.MeanFinal))
	builder.WriteString("\n")

	builder.WriteString("### Tier Distribution\n\n")
	builder.WriteString("| Tier | Count |\n")
	builder.WriteString("|------|-------|\n")
	for _, tier := range []string{"A", "B", "C", "D", "F"} {
		builder.WriteString(fmt.Sprintf("| %s | %d |\n", tier, sum.TierCounts[tier]))
	}
	builder.WriteString("\n")

	builder.WriteString("## Results\n\n")
	if len(report.Results) == 0 {
		builder.WriteString("*No evaluations found.*\n\n")
	} else {
		builder.WriteString("| Source | Dimension | Status | Tier | Automated | Final | Rating | Agreement |\n")
		builder.WriteString("|--------|-----------|--------|------|-----------|-------|--------|-----------|\n")
		for _, res := range report.Results {
			builder.WriteString(resultRow(res))
		}
		builder.WriteString("\n")
	}

	if f.verbose {
		for _, res := range report.Results {
			writeRecordDetail(&builder, res)
		}
	}

	if len(report.Errors) > 0 {
		builder.WriteString("## Failed Documents\n\n")
		for _, e := range report.Errors {
			builder.WriteString(fmt.Sprintf("- `%s`: %s\n", e.Source, e.Message))
		}
		builder.WriteString("\n")
	}

	content := builder.String()
	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		if !f.quiet {
			fmt.Fprintf(f.out, "Report written to %s\n", f.outputFile)
		}
		return nil
	}

	_, err := io.WriteString(f.out, content)
	return err
}

func resultRow(res Result) string {
	rec := res.Record
	if rec.Status == types.StatusUnsupportedDimension {
		return fmt.Sprintf("| %s | %s | %s | - | - | - | - | - |\n", res.Source, rec.Dimension, rec.Status)
	}

	rating, agreement := "-", "-"
	if rec.Rating.IsRated() {
		rating = fmt.Sprintf("%d/5", rec.Rating.Rating)
		if rec.Balanced != nil {
			agreement = string(rec.Balanced.AgreementLevel)
		}
	}
	return fmt.Sprintf("| %s | %s | %s | %s | %.2f | %.2f | %s | %s |\n",
		res.Source, rec.Dimension, rec.Status, rec.Tier, rec.AutomatedScore, rec.FinalScore(), rating, agreement)
}

func writeRecordDetail(b *strings.Builder, res Result) {
	rec := res.Record
	b.WriteString(fmt.Sprintf("### %s: %s\n\n", res.Source, rec.Dimension))
	b.WriteString(fmt.Sprintf("Record `%s`\n\n", rec.ID))
	if rec.Notice != "" {
		b.WriteString(fmt.Sprintf("> %s\n\n", rec.Notice))
	}
	if rec.Rating.Comments != "" {
		b.WriteString(fmt.Sprintf("**Reviewer comments:** %s\n\n", rec.Rating.Comments))
	}

	for _, family := range []string{types.FamilyAccuracy, types.FamilyQuality} {
		score, ok := rec.Families[family]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("#### %s (%.2f)\n\n", strings.ToUpper(family[:1])+family[1:], score.Score))
		b.WriteString("| Metric | Value | Weight | Reason |\n")
		b.WriteString("|--------|-------|--------|--------|\n")
		for _, d := range score.Dimensions {
			b.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %s |\n", d.Key, d.Value, d.Weight, d.Reason))
		}
		b.WriteString("\n")
		writeIssues(b, rec, family)
	}
}

func writeIssues(b *strings.Builder, rec evaluation.Record, family string) {
	var issues []string
	for _, d := range rec.Families[family].Dimensions {
		issues = append(issues, d.Issues...)
	}
	if len(issues) == 0 {
		return
	}
	b.WriteString("**Issues:**\n\n")
	for _, issue := range issues {
		b.WriteString(fmt.Sprintf("- %s\n", issue))
	}
	b.WriteString("\n")
}
