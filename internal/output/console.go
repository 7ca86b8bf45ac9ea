package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/papereval/internal/evaluation"
	"github.com/dotcommander/papereval/internal/similarity"
	"github.com/dotcommander/papereval/internal/types"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	out     io.Writer
	quiet   bool
	verbose bool
	styles  consoleStyles
}

type consoleStyles struct {
	header lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
	dim    lipgloss.Style
	bold   lipgloss.Style
	box    lipgloss.Style
	tiers  map[string]lipgloss.Style
}

// tierColors follow the summary bar colors: A green, B blue, C yellow, D/F red.
var tierColors = map[string]string{"A": "10", "B": "12", "C": "3", "D": "9", "F": "9"}

func newConsoleStyles() consoleStyles {
	s := consoleStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		bold:   lipgloss.NewStyle().Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1),
		tiers: make(map[string]lipgloss.Style),
	}
	for tier, color := range tierColors {
		s.tiers[tier] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return s
}

// NewConsoleFormatter creates a new ConsoleFormatter writing to w, or to
// stdout when w is nil.
func NewConsoleFormatter(w io.Writer, quiet, verbose bool) *ConsoleFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleFormatter{
		out:     w,
		quiet:   quiet,
		verbose: verbose,
		styles:  newConsoleStyles(),
	}
}

// Format prints one line per record, load errors, and the summary box.
func (f *ConsoleFormatter) Format(report *Report) error {
	if f.quiet {
		// quiet mode only reports load failures
		f.printErrors(report)
		return nil
	}

	f.printResults(report)
	f.printErrors(report)
	f.printSummary(report)
	return nil
}

func (f *ConsoleFormatter) printResults(report *Report) {
	current := ""
	for _, res := range report.Results {
		if res.Source != current {
			current = res.Source
			fmt.Fprintln(f.out, f.styles.bold.Render(current))
		}
		f.printRecord(res.Record)
	}
}

func (f *ConsoleFormatter) printRecord(rec evaluation.Record) {
	s := f.styles
	switch rec.Status {
	case types.StatusUnsupportedDimension:
		fmt.Fprintf(f.out, "  %s %-17s %s\n", s.fail.Render("✗"), rec.Dimension, s.dim.Render(rec.Notice))
		return
	case types.StatusInsufficientData:
		fmt.Fprintf(f.out, "  %s %-17s %s\n", s.warn.Render("!"), rec.Dimension, s.warn.Render(rec.Notice))
	}

	symbol := s.dim.Render("•")
	rating := s.dim.Render("unrated")
	if rec.Status == types.StatusRated {
		symbol = s.ok.Render("✓")
		rating = fmt.Sprintf("rated %d/5", rec.Rating.Rating)
	}
	if rec.Status == types.StatusInsufficientData {
		symbol = " "
	}

	agreement := ""
	if rec.Balanced != nil && rec.Status == types.StatusRated {
		agreement = fmt.Sprintf("  agreement %s", rec.Balanced.AgreementLevel)
	}

	fmt.Fprintf(f.out, "  %s %-17s %s  auto %.2f  final %.2f  %s%s\n",
		symbol, rec.Dimension, f.tier(rec.Tier), rec.AutomatedScore, rec.FinalScore(), rating, agreement)

	if f.verbose {
		f.printBreakdown(rec)
	}
}

func (f *ConsoleFormatter) printBreakdown(rec evaluation.Record) {
	s := f.styles
	for _, family := range []string{types.FamilyAccuracy, types.FamilyQuality} {
		score, ok := rec.Families[family]
		if !ok {
			continue
		}
		fmt.Fprintf(f.out, "      %s %.2f\n", s.header.Render(family), score.Score)
		for _, d := range score.Dimensions {
			fmt.Fprintf(f.out, "        %-20s %.2f × %.2f  %s\n", d.Key, d.Value, d.Weight, s.dim.Render(d.Reason))
			for _, issue := range d.Issues {
				fmt.Fprintf(f.out, "          %s %s\n", s.warn.Render("-"), issue)
			}
		}
	}
	if b := rec.Balanced; b != nil {
		note := ""
		if b.RatingDefaulted {
			note = " (default rating)"
		}
		if b.Clamped {
			note += " (clamped)"
		}
		fmt.Fprintf(f.out, "      %s human %.2f (expertise ×%.1f)  confidence %.2f%s\n",
			s.header.Render("balanced"), b.HumanScore, b.ExpertiseMultiplier, b.Confidence, note)
	}
	for _, fb := range sortedBundles(rec) {
		fmt.Fprintf(f.out, "      %s %-11s similarity %.2f  edits %d (%.0f%%)\n",
			s.header.Render("edited"), fb.Field, fb.Bundle.Levenshtein.SimilarityScore,
			fb.Bundle.Edits.TotalEdits, fb.Bundle.Edits.EditPercentage*100)
	}
}

func (f *ConsoleFormatter) printErrors(report *Report) {
	for _, e := range report.Errors {
		fmt.Fprintf(f.out, "%s %s: %s\n", f.styles.fail.Render("✗"), e.Source, e.Message)
	}
}

func (f *ConsoleFormatter) printSummary(report *Report) {
	s := f.styles
	sum := Summarize(report)

	var b strings.Builder
	b.WriteString(s.header.Render("EVALUATION SUMMARY") + "\n")
	fmt.Fprintf(&b, "Documents: %d   Evaluations: %d   Failed: %d\n", sum.Documents, sum.Evaluations, sum.FailedFiles)
	fmt.Fprintf(&b, "Rated: %d   Unrated: %d   Insufficient: %d   Unsupported: %d\n",
		sum.StatusCounts[types.StatusRated], sum.StatusCounts[types.StatusUnrated],
		sum.StatusCounts[types.StatusInsufficientData], sum.StatusCounts[types.StatusUnsupportedDimension])
	fmt.Fprintf(&b, "Mean automated: %.2f   Mean final: %.2f\n", sum.MeanAutomated, sum.MeanFinal)

	b.WriteString("\n" + s.header.Render("TIER DISTRIBUTION") + "\n")
	for _, tier := range []struct{ name, label string }{
		{"A", "A (≥0.85)"}, {"B", "B (≥0.70)"}, {"C", "C (≥0.50)"}, {"D", "D (≥0.30)"}, {"F", "F (<0.30)"},
	} {
		count := sum.TierCounts[tier.name]
		fmt.Fprintf(&b, "%s %3d (%5.1f%%) %s\n",
			s.tiers[tier.name].Render(fmt.Sprintf("%-10s", tier.label)),
			count, percent(count, sum.Scored), renderBar(count, sum.Scored, tierColors[tier.name]))
	}

	if len(sum.Lowest) > 0 {
		b.WriteString("\n" + s.header.Render("LOWEST FINAL SCORES") + "\n")
		for i, res := range sum.Lowest {
			fmt.Fprintf(&b, "%s %-38s %-17s %s %.2f\n",
				s.dim.Render(fmt.Sprintf("%d.", i+1)), truncateLeft(res.Source, 38),
				res.Record.Dimension, f.tier(res.Record.Tier), res.Record.FinalScore())
		}
	}

	if !report.StartTime.IsZero() {
		b.WriteString("\n" + s.dim.Render(fmt.Sprintf("Done in %v", time.Since(report.StartTime).Round(time.Millisecond))))
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, s.box.Render(strings.TrimRight(b.String(), "\n")))
}

func (f *ConsoleFormatter) tier(t string) string {
	if t == "" {
		return f.styles.dim.Render("-")
	}
	if style, ok := f.styles.tiers[t]; ok {
		return style.Render(t)
	}
	return t
}

type fieldBundle struct {
	Field  string
	Bundle similarity.Bundle
}

// sortedBundles orders a record's edit analysis by field name.
func sortedBundles(rec evaluation.Record) []fieldBundle {
	out := make([]fieldBundle, 0, len(rec.EditAnalysis))
	for field, b := range rec.EditAnalysis {
		out = append(out, fieldBundle{Field: field, Bundle: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// renderBar draws a ten-cell bar for count out of total.
func renderBar(count, total int, color string) string {
	if total == 0 {
		return ""
	}
	barWidth := 10
	filled := (count * barWidth) / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func truncateLeft(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n+3:])
}
