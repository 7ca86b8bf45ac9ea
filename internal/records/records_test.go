package records

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/papereval/internal/evaluation"
	"github.com/dotcommander/papereval/internal/types"
)

func record(dimension string, score float64) evaluation.Record {
	return evaluation.Record{
		ID:             "id-" + dimension,
		Dimension:      dimension,
		Status:         types.StatusRated,
		AutomatedScore: score,
		Rating:         evaluation.Rating{Rating: 4},
		EvaluatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, s.Version)
	assert.Empty(t, s.Entries)
}

func TestPutLastWriteWins(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)

	assert.True(t, s.Put("a.eval.yaml", record(types.DimensionMetadata, 0.5)))
	assert.True(t, s.Put("a.eval.yaml", record(types.DimensionMetadata, 0.9)), "changed content")

	got, ok := s.Get("a.eval.yaml", types.DimensionMetadata)
	require.True(t, ok)
	assert.InDelta(t, 0.9, got.Record.AutomatedScore, 1e-12)
	assert.Len(t, s.Entries, 1)

	// same content evaluated later is not a change
	later := record(types.DimensionMetadata, 0.9)
	later.EvaluatedAt = later.EvaluatedAt.Add(time.Hour)
	assert.False(t, s.Put("a.eval.yaml", later))

	// other dimensions and sources get their own keys
	s.Put("a.eval.yaml", record(types.DimensionTemplate, 0.4))
	s.Put("b.eval.yaml", record(types.DimensionMetadata, 0.4))
	assert.Len(t, s.Entries, 3)
}

func TestSaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.json")
	s, err := Open(path)
	require.NoError(t, err)
	s.Put("b.eval.json", record(types.DimensionTemplate, 0.7))
	s.Put("a.eval.json", record(types.DimensionMetadata, 0.6))

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(now))

	loaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16T12:00:00Z", loaded.UpdatedAt)
	require.Len(t, loaded.Entries, 2)

	sorted := loaded.Sorted()
	assert.Equal(t, "a.eval.json", sorted[0].Source)
	assert.Equal(t, "b.eval.json", sorted[1].Source)
	assert.Equal(t, s.Entries[Key("a.eval.json", types.DimensionMetadata)].Fingerprint, sorted[0].Fingerprint)
	assert.True(t, sorted[0].Record.EvaluatedAt.Equal(record("", 0).EvaluatedAt))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestFingerprintStability(t *testing.T) {
	a := record(types.DimensionMetadata, 0.5)
	b := a
	b.EvaluatedAt = time.Now()
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Len(t, Fingerprint(a), 64)

	c := a
	c.Rating = evaluation.Rating{Rating: 2}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "papers/a.eval.yaml#template", Key("papers/a.eval.yaml", types.DimensionTemplate))
}
