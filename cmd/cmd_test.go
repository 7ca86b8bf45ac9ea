package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/papereval/internal/config"
	"github.com/dotcommander/papereval/internal/output"
	"github.com/dotcommander/papereval/internal/records"
	"github.com/dotcommander/papereval/internal/similarity"
	"github.com/dotcommander/papereval/internal/types"
)

const researchProblemDoc = `
evaluator: {name: alice, expertise: 3}
evaluations:
  - dimension: research_problem
    groundTruth: "We propose a pruning method for transformer models that reduces inference latency while preserving accuracy on language benchmarks."
    candidate:
      title: Pruning transformers for faster inference
      description: The paper studies structured pruning of transformer models. The method reduces latency on language benchmarks while keeping accuracy.
    rating: 4
  - dimension: metadata
    groundTruth: {title: Fast Transformers, authors: [Ada Lovelace], doi: 10.1000/fast, publicationYear: 2021}
    candidate: {title: Fast Transformers, authors: [Ada Lovelace], doi: 10.1000/fast, publicationYear: 2021}
`

// setupCmdTest isolates viper, the working directory, package flags, and
// stdout for one test, and returns the captured output buffer.
func setupCmdTest(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	viper.Reset()

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf

	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
		stdout = oldStdout
		viper.Reset()
		rootPath, storePath, noClamp = "", "", false
		scoreRating, scoreExpertise = 0, 0
		weightsValidate, weightsDimension = false, ""
		compareReference, compareCandidate = "", ""
	})
	return dir, &buf
}

func writeDoc(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunScoreConsole(t *testing.T) {
	dir, buf := setupCmdTest(t)
	path := writeDoc(t, dir, "paper.eval.yaml", researchProblemDoc)

	require.NoError(t, runScore([]string{path}))

	out := buf.String()
	assert.Contains(t, out, "research_problem")
	assert.Contains(t, out, "metadata")
	assert.Contains(t, out, "rated 4/5")
	assert.Contains(t, out, "EVALUATION SUMMARY")
}

func TestRunScoreJSONWithOverridesAndStore(t *testing.T) {
	dir, _ := setupCmdTest(t)
	path := writeDoc(t, dir, "paper.eval.yaml", researchProblemDoc)
	reportPath := filepath.Join(dir, "report.json")
	storeFile := filepath.Join(dir, "records.json")

	viper.Set("format", types.FormatJSON)
	viper.Set("output", reportPath)
	viper.Set("quiet", true)
	viper.Set("store", storeFile)
	scoreRating, scoreExpertise = 5, 5

	require.NoError(t, runScore([]string{path}))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report output.JSONReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Equal(t, 5, res.Record.Rating.Rating)
		assert.Equal(t, 5, res.Record.ExpertiseWeight)
		assert.Equal(t, types.StatusRated, res.Record.Status)
		assert.LessOrEqual(t, res.Record.FinalScore(), 1.0, "clamped by default")
	}

	store, err := records.Open(storeFile)
	require.NoError(t, err)
	assert.Len(t, store.Entries, 2)
	entry, ok := store.Get(filepath.ToSlash(path), types.DimensionMetadata)
	require.True(t, ok)
	assert.Equal(t, records.Fingerprint(entry.Record), entry.Fingerprint)
}

func TestRunScoreNoClamp(t *testing.T) {
	dir, _ := setupCmdTest(t)
	path := writeDoc(t, dir, "paper.eval.yaml", researchProblemDoc)
	reportPath := filepath.Join(dir, "report.json")

	viper.Set("format", types.FormatJSON)
	viper.Set("output", reportPath)
	viper.Set("quiet", true)
	scoreRating, scoreExpertise = 5, 5
	noClamp = true

	require.NoError(t, runScore([]string{path}))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report output.JSONReport
	require.NoError(t, json.Unmarshal(data, &report))

	// a 5/5 rating at expertise 5 alone contributes 1.0×1.6×0.6 = 0.96
	var meta *output.JSONResult
	for i := range report.Results {
		if report.Results[i].Record.Dimension == types.DimensionMetadata {
			meta = &report.Results[i]
		}
	}
	require.NotNil(t, meta)
	assert.Greater(t, meta.Record.FinalScore(), 1.0)
}

func TestRunScoreErrors(t *testing.T) {
	t.Run("invalid rating override", func(t *testing.T) {
		dir, _ := setupCmdTest(t)
		path := writeDoc(t, dir, "a.eval.json", `{"evaluations":[]}`)
		scoreRating = 6
		assert.ErrorContains(t, runScore([]string{path}), "--rating")
	})

	t.Run("missing file", func(t *testing.T) {
		dir, _ := setupCmdTest(t)
		assert.ErrorContains(t, runScore([]string{filepath.Join(dir, "nope.eval.json")}), "file not found")
	})

	t.Run("invalid document still reports the rest", func(t *testing.T) {
		dir, buf := setupCmdTest(t)
		good := writeDoc(t, dir, "good.eval.yaml", researchProblemDoc)
		bad := writeDoc(t, dir, "bad.eval.json", `{"evaluations":[{"dimension":"metadata","rating":9}]}`)

		err := runScore([]string{good, bad})
		assert.ErrorContains(t, err, "1 document(s) failed to load")
		assert.Contains(t, buf.String(), "research_problem")
		assert.Contains(t, buf.String(), "schema validation failed")
	})
}

func TestRunBatch(t *testing.T) {
	dir, _ := setupCmdTest(t)
	writeDoc(t, dir, "reviews/a.eval.yaml", researchProblemDoc)
	writeDoc(t, dir, "reviews/nested/b.eval.json", `{"evaluations":[
		{"dimension":"research_field","groundTruth":{"fields":["Machine Learning"]},
		 "candidate":{"fields":["Computer Vision","Machine Learning"]},"rating":3}]}`)
	writeDoc(t, dir, "reviews/ignored.yaml", "evaluations: []")
	reportPath := filepath.Join(dir, "report.json")

	rootPath = filepath.Join(dir, "reviews")
	viper.Set("format", types.FormatJSON)
	viper.Set("output", reportPath)
	viper.Set("quiet", true)

	require.NoError(t, runBatch())

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report output.JSONReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, 2, report.Summary.Documents)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "a.eval.yaml", report.Results[0].Source)
	assert.Equal(t, "nested/b.eval.json", report.Results[2].Source)
	assert.Equal(t, types.DimensionResearchField, report.Results[2].Record.Dimension)
}

func TestRunBatchMissingRoot(t *testing.T) {
	dir, _ := setupCmdTest(t)
	rootPath = filepath.Join(dir, "missing")
	assert.ErrorContains(t, runBatch(), "error discovering documents")
}

func TestRunCompare(t *testing.T) {
	_, buf := setupCmdTest(t)
	compareReference = "graph neural networks"
	compareCandidate = "graph networks"

	require.NoError(t, runCompare())

	var got similarity.Bundle
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, similarity.BundleOf(compareReference, compareCandidate), got)
	assert.Equal(t, 7, got.Levenshtein.Distance)
}

func TestRunWeights(t *testing.T) {
	_, buf := setupCmdTest(t)

	require.NoError(t, runWeights())

	var got map[string]config.WeightOverrides
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	weights := got["weights"]
	require.Len(t, weights, len(types.Dimensions))
	assert.InDelta(t, 0.6, weights[types.DimensionResearchProblem][types.FamilyOverall][types.FamilyAccuracy], 1e-9)
	assert.Contains(t, weights[types.DimensionResearchProblem][types.FamilyAccuracy], "detailedAccuracy")
}

func TestRunWeightsDimensionAndValidate(t *testing.T) {
	_, buf := setupCmdTest(t)

	weightsDimension = types.DimensionContent
	require.NoError(t, runWeights())
	var got map[string]config.WeightOverrides
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got["weights"], 1)

	buf.Reset()
	weightsDimension = ""
	weightsValidate = true
	require.NoError(t, runWeights())
	assert.Contains(t, buf.String(), "weight tables valid")

	weightsDimension = "figures"
	assert.ErrorContains(t, runWeights(), "unknown dimension")
}

func TestExecuteFailureExits(t *testing.T) {
	setupCmdTest(t)

	code := -1
	oldExit := exitFunc
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		exitFunc = oldExit
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"score"})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetOut(&bytes.Buffer{})
	Execute()
	assert.Equal(t, 1, code, "score requires at least one file")
}
