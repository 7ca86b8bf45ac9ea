package textmetrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groundTruthAbstract = "This paper proposes a new method to improve classification accuracy using deep learning."

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name          string
		reference     string
		candidate     string
		wantDistance  int
		wantSimilarity float64
	}{
		{"both empty", "", "", 0, 1},
		{"reference empty", "", "abc", 3, 0},
		{"candidate empty", "abcd", "", 4, 0},
		{"identical", "deep learning", "deep learning", 0, 1},
		{"kitten sitting", "kitten", "sitting", 3, 1 - 3.0/7.0},
		{"single substitution", "cat", "bat", 1, 1 - 1.0/3.0},
		{"multibyte runes", "naïve", "naive", 1, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Levenshtein(tt.reference, tt.candidate)
			assert.Equal(t, tt.wantDistance, got.Distance)
			assert.InDelta(t, tt.wantSimilarity, got.SimilarityScore, 1e-9)
			assert.InDelta(t, 1-got.NormalizedDistance, got.SimilarityScore, 1e-12)
		})
	}
}

func TestLevenshteinProperties(t *testing.T) {
	samples := []string{
		"", "a", "ab", "deep learning", "Deep Learning!", "graph neural networks",
		"improving classification", "классификация", "x-ray imaging",
	}

	for _, a := range samples {
		self := Levenshtein(a, a)
		assert.Equal(t, 0, self.Distance, "identity distance for %q", a)
		assert.Equal(t, 1.0, self.SimilarityScore, "identity similarity for %q", a)

		for _, b := range samples {
			ab := Levenshtein(a, b)
			ba := Levenshtein(b, a)
			assert.Equal(t, ab.Distance, ba.Distance, "symmetry for %q / %q", a, b)
			assert.GreaterOrEqual(t, ab.SimilarityScore, 0.0)
			assert.LessOrEqual(t, ab.SimilarityScore, 1.0)
		}
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, Tokenize("  Hello,   World! "))
	assert.Equal(t, []string{"state-of-the-art", "model"}, Tokenize("State-of-the-art (model)"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize(" ... !!! "))
}

func TestWordsAndContentWords(t *testing.T) {
	assert.Equal(t, []string{"improving", "classification", "with", "deep", "learning"},
		Words("Improving Classification with Deep Learning"))
	assert.Equal(t, []string{"improving", "classification", "deep", "learning"},
		ContentWords("Improving Classification with Deep Learning"))
	assert.Equal(t, []string{"covid-19", "spread"}, Words("-COVID-19- spread."))
}

func TestTokenMatch(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		got := TokenMatch("the cat sat", "the cat sat")
		assert.Equal(t, 1.0, got.Precision)
		assert.Equal(t, 1.0, got.Recall)
		assert.Equal(t, 1.0, got.F1Score)
	})

	t.Run("empty reference", func(t *testing.T) {
		got := TokenMatch("", "anything")
		assert.Equal(t, 0.0, got.Precision)
		assert.Equal(t, 0.0, got.Recall)
		assert.Equal(t, 0.0, got.F1Score)
	})

	t.Run("both empty", func(t *testing.T) {
		got := TokenMatch("", "")
		assert.Zero(t, got.Precision)
		assert.Zero(t, got.Recall)
		assert.Zero(t, got.F1Score)
	})

	t.Run("multiset consumption", func(t *testing.T) {
		got := TokenMatch("the cat", "the the cat")
		assert.Equal(t, []string{"the", "cat"}, got.MatchedTokens)
		assert.InDelta(t, 2.0/3.0, got.Precision, 1e-9)
		assert.Equal(t, 1.0, got.Recall)
	})

	t.Run("order insensitive and case folded", func(t *testing.T) {
		got := TokenMatch("Deep Learning models", "models. learning DEEP")
		assert.Equal(t, 1.0, got.F1Score)
	})

	t.Run("no overlap", func(t *testing.T) {
		got := TokenMatch("alpha beta", "gamma delta")
		assert.Zero(t, got.F1Score)
		assert.Empty(t, got.MatchedTokens)
	})
}

func TestTokenMatchF1IsHarmonicMean(t *testing.T) {
	pairs := [][2]string{
		{"graph neural networks for molecules", "neural networks for graphs"},
		{"a b c d e", "a b"},
		{"a", "a b c d"},
		{groundTruthAbstract, "We propose a new method to improve classification accuracy."},
	}
	for _, p := range pairs {
		got := TokenMatch(p[0], p[1])
		if got.Precision+got.Recall == 0 {
			assert.Zero(t, got.F1Score)
			continue
		}
		want := 2 * got.Precision * got.Recall / (got.Precision + got.Recall)
		assert.InDelta(t, want, got.F1Score, 1e-12)
		assert.LessOrEqual(t, got.Recall, 1.0)
		assert.LessOrEqual(t, got.Precision, 1.0)
	}
}

func TestJaccardAndContainment(t *testing.T) {
	a := SetOf([]string{"deep", "learning", "model"})
	b := SetOf([]string{"deep", "learning", "graph", "network"})

	assert.InDelta(t, 2.0/5.0, Jaccard(a, b), 1e-12)
	assert.Zero(t, Jaccard(nil, nil))
	assert.InDelta(t, 2.0/3.0, Containment(a, "A Deep Learning approach"), 1e-12)
	assert.Zero(t, Containment(nil, "anything"))
}

func TestEditProfileOf(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		want      EditProfile
	}{
		{
			name:      "pure insertion",
			reference: "abc",
			candidate: "abcd",
			want:      EditProfile{Insertions: 1, TotalEdits: 1, EditPercentage: 1.0 / 3.0},
		},
		{
			name:      "pure deletion",
			reference: "abcd",
			candidate: "ab",
			want:      EditProfile{Deletions: 2, TotalEdits: 2, EditPercentage: 0.5},
		},
		{
			name:      "mixed",
			reference: "kitten",
			candidate: "sitting",
			want:      EditProfile{Insertions: 1, Modifications: 2, TotalEdits: 3, EditPercentage: 0.5},
		},
		{
			name:      "empty reference",
			reference: "",
			candidate: "new text",
			want:      EditProfile{Insertions: 8, TotalEdits: 8, EditPercentage: 0},
		},
		{
			name: "both empty",
			want: EditProfile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EditProfileOf(tt.reference, tt.candidate)
			assert.Equal(t, tt.want.Insertions, got.Insertions)
			assert.Equal(t, tt.want.Deletions, got.Deletions)
			assert.Equal(t, tt.want.Modifications, got.Modifications)
			assert.Equal(t, tt.want.TotalEdits, got.TotalEdits)
			assert.InDelta(t, tt.want.EditPercentage, got.EditPercentage, 1e-12)
			assert.Equal(t, got.Insertions+got.Deletions+got.Modifications, got.TotalEdits)
		})
	}
}

func TestSpecialCharacters(t *testing.T) {
	t.Run("no special characters", func(t *testing.T) {
		got := SpecialCharacters("abc")
		assert.Equal(t, 0, got.Count)
		assert.Equal(t, 0.0, got.Ratio)
		assert.Empty(t, got.Characters)
	})

	t.Run("three distinct characters", func(t *testing.T) {
		got := SpecialCharacters("a,b.c!")
		assert.Equal(t, 3, got.Count)
		assert.InDelta(t, 0.5, got.Ratio, 1e-12)
		require.Len(t, got.Characters, 3)

		seen := map[string]int{}
		for _, c := range got.Characters {
			seen[c.Character] = c.Count
			assert.InDelta(t, 100.0/3.0, c.Percentage, 1e-9)
		}
		assert.Equal(t, map[string]int{",": 1, ".": 1, "!": 1}, seen)
	})

	t.Run("sorted by frequency", func(t *testing.T) {
		got := SpecialCharacters("a-b-c-d (e)")
		require.NotEmpty(t, got.Characters)
		assert.Equal(t, "-", got.Characters[0].Character)
		assert.Equal(t, 3, got.Characters[0].Count)
		for i := 1; i < len(got.Characters); i++ {
			assert.GreaterOrEqual(t, got.Characters[i-1].Count, got.Characters[i].Count)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := SpecialCharacters("")
		assert.Zero(t, got.Count)
		assert.Zero(t, got.Ratio)
	})
}

func TestIsVerbLike(t *testing.T) {
	tests := map[string]bool{
		"proposes":   true,
		"proposed":   true,
		"using":      true,
		"is":         true,
		"based":      true,
		"optimizes":  true,
		"learning":   false,
		"method":     false,
		"accuracy":   false,
		"improve":    false,
		"networks":   false,
		"red":        false,
		"classifier": false,
	}
	for word, want := range tests {
		assert.Equal(t, want, IsVerbLike(word), word)
	}
}

func TestExtractConcepts(t *testing.T) {
	got := ExtractConcepts(groundTruthAbstract)

	assert.Equal(t, []string{
		"paper",
		"new method",
		"method",
		"improve",
		"improve classification",
		"improve classification accuracy",
		"classification",
		"classification accuracy",
		"accuracy",
		"deep",
		"deep learning",
		"learning",
	}, got)

	for _, c := range got {
		assert.GreaterOrEqual(t, RuneLen(c), 4, c)
		assert.LessOrEqual(t, len(Words(c)), 4, c)
	}
}

func TestExtractConceptsEdgeCases(t *testing.T) {
	assert.Empty(t, ExtractConcepts(""))
	assert.Empty(t, ExtractConcepts("It is. We are. They were."))

	got := ExtractConcepts("Graph models. Graph models!")
	assert.Equal(t, []string{"graph", "graph models", "models"}, got, "deduplicated across sentences")
}

func TestConceptCoverage(t *testing.T) {
	candidate := "Improving Classification with Deep Learning We propose a new method to improve classification accuracy."
	ratio, found, missing := ConceptCoverage(groundTruthAbstract, candidate)

	assert.InDelta(t, 11.0/12.0, ratio, 1e-12)
	assert.Len(t, found, 11)
	assert.Equal(t, []string{"paper"}, missing)

	ratio, _, _ = ConceptCoverage("", candidate)
	assert.Zero(t, ratio)
}

func TestCountWholeWords(t *testing.T) {
	lexicon := []string{"how", "why", "limitation"}
	assert.Equal(t, 3, CountWholeWords("How and why: how?", lexicon))
	assert.Equal(t, 0, CountWholeWords("showhow whyever", lexicon))
	assert.Equal(t, 1, CountWholeWords("a key limitation", lexicon))
	assert.Equal(t, 0, CountWholeWords("", lexicon))
	assert.Equal(t, 1, CountWholeWords("prior work in related work", []string{"related work"}))
	assert.Equal(t, []string{"why"}, ContainsAny("Why now", lexicon))
}

func TestRatioAndClamp(t *testing.T) {
	assert.Zero(t, Ratio(5, 0))
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.False(t, math.IsNaN(Ratio(0, 0)))
}
