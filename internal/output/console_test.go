package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleFormatter(&buf, false, false).Format(sampleReport()))
	out := buf.String()

	for _, want := range []string{
		"a.eval.yaml",
		"research_problem",
		"auto 0.62",
		"final 0.70",
		"rated 4/5",
		"agreement high",
		"unrated",
		`dimension "figures" is not supported`,
		"c.eval.yaml: schema validation failed",
		"EVALUATION SUMMARY",
		"Documents: 2",
		"TIER DISTRIBUTION",
		"LOWEST FINAL SCORES",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "missing concept", "breakdown is verbose only")
}

func TestConsoleFormatterVerbose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleFormatter(&buf, false, true).Format(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "missing concept: pruning")
	assert.Contains(t, out, "Candidate wording partially matches the ground truth.")
	assert.Contains(t, out, "similarity 0.80")
	assert.Contains(t, out, "edits 3 (20%)")
}

func TestConsoleFormatterQuiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleFormatter(&buf, true, false).Format(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "c.eval.yaml")
	assert.NotContains(t, out, "EVALUATION SUMMARY")
	assert.NotContains(t, out, "research_problem")
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		count, total int
		filled       int
	}{
		{0, 0, -1},
		{0, 4, 0},
		{1, 100, 1},
		{2, 4, 5},
		{4, 4, 10},
	}
	for _, tt := range tests {
		bar := renderBar(tt.count, tt.total, "10")
		if tt.filled < 0 {
			assert.Empty(t, bar)
			continue
		}
		assert.Equal(t, tt.filled, strings.Count(bar, "█"))
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"))
	}
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "short", truncateLeft("short", 10))
	assert.Equal(t, "...7890", truncateLeft("1234567890", 7))
}
