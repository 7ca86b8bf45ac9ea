package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dotcommander/papereval/internal/types"
)

// WeightTolerance is the allowed deviation of a table's weight sum from 1.0.
const WeightTolerance = 1e-9

// Weight is one dimension's share of a family score.
type Weight struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"weight" yaml:"weight"`
}

// WeightTable is an immutable, validated mapping from dimension key to
// weight. Entry order is the display order.
type WeightTable struct {
	name    string
	weights []Weight
}

// NewWeightTable validates and builds a table. Weights must be
// non-negative, keys unique and non-empty, and the sum within
// WeightTolerance of 1.0.
func NewWeightTable(name string, weights ...Weight) (WeightTable, error) {
	if len(weights) == 0 {
		return WeightTable{}, fmt.Errorf("weight table %s: no weights", name)
	}

	seen := make(map[string]bool, len(weights))
	sum := 0.0
	for _, w := range weights {
		if w.Key == "" {
			return WeightTable{}, fmt.Errorf("weight table %s: empty key", name)
		}
		if seen[w.Key] {
			return WeightTable{}, fmt.Errorf("weight table %s: duplicate key %q", name, w.Key)
		}
		if w.Value < 0 || math.IsNaN(w.Value) {
			return WeightTable{}, fmt.Errorf("weight table %s: invalid weight %v for %q", name, w.Value, w.Key)
		}
		seen[w.Key] = true
		sum += w.Value
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return WeightTable{}, fmt.Errorf("weight table %s: weights sum to %.6f, want 1.0", name, sum)
	}

	return WeightTable{name: name, weights: append([]Weight(nil), weights...)}, nil
}

// MustWeightTable is NewWeightTable for built-in tables.
func MustWeightTable(name string, weights ...Weight) WeightTable {
	t, err := NewWeightTable(name, weights...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name, e.g. "research_problem.accuracy".
func (t WeightTable) Name() string { return t.name }

// Weights returns a copy of the entries.
func (t WeightTable) Weights() []Weight {
	return append([]Weight(nil), t.weights...)
}

// Keys returns the dimension keys in table order.
func (t WeightTable) Keys() []string {
	keys := make([]string, len(t.weights))
	for i, w := range t.weights {
		keys[i] = w.Key
	}
	return keys
}

// Weight returns the weight for key, 0 when absent.
func (t WeightTable) Weight(key string) float64 {
	for _, w := range t.weights {
		if w.Key == key {
			return w.Value
		}
	}
	return 0
}

// Sum returns the total of all weights.
func (t WeightTable) Sum() float64 {
	sum := 0.0
	for _, w := range t.weights {
		sum += w.Value
	}
	return sum
}

// IsZero reports whether the table was never built.
func (t WeightTable) IsZero() bool { return len(t.weights) == 0 }

// Override returns a new table with the given weights replacing the
// current ones. Keys match case-insensitively because config loaders fold
// key case. Unknown keys are an error and the result is revalidated.
func (t WeightTable) Override(overrides map[string]float64) (WeightTable, error) {
	next := t.Weights()
	for key, value := range overrides {
		found := false
		for i := range next {
			if strings.EqualFold(next[i].Key, key) {
				next[i].Value = value
				found = true
				break
			}
		}
		if !found {
			return WeightTable{}, fmt.Errorf("weight table %s: unknown key %q (known: %s)",
				t.name, key, strings.Join(t.Keys(), ", "))
		}
	}
	return NewWeightTable(t.name, next...)
}

// TableKey identifies a table by dimension and metric family.
type TableKey struct {
	Dimension string
	Family    string
}

func (k TableKey) String() string { return k.Dimension + "." + k.Family }

// Tables is the full weight configuration for an evaluation run.
type Tables map[TableKey]WeightTable

// Lookup returns the table for a dimension and family.
func (ts Tables) Lookup(dimension, family string) (WeightTable, bool) {
	t, ok := ts[TableKey{Dimension: dimension, Family: family}]
	return t, ok
}

// SortedKeys returns the table keys ordered by dimension then family.
func (ts Tables) SortedKeys() []TableKey {
	keys := make([]TableKey, 0, len(ts))
	for k := range ts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Dimension != keys[j].Dimension {
			return keys[i].Dimension < keys[j].Dimension
		}
		return keys[i].Family < keys[j].Family
	})
	return keys
}

// Validate checks every table's sum. Built tables are already valid; this
// guards against hand-assembled Tables values.
func (ts Tables) Validate() error {
	for _, k := range ts.SortedKeys() {
		t := ts[k]
		if t.IsZero() {
			return fmt.Errorf("weight table %s: empty", k)
		}
		if math.Abs(t.Sum()-1.0) > WeightTolerance {
			return fmt.Errorf("weight table %s: weights sum to %.6f, want 1.0", k, t.Sum())
		}
	}
	return nil
}

// WithOverrides copies the tables and applies per-table overrides keyed by
// dimension then family.
func (ts Tables) WithOverrides(overrides map[string]map[string]map[string]float64) (Tables, error) {
	out := make(Tables, len(ts))
	for k, v := range ts {
		out[k] = v
	}
	for dimension, families := range overrides {
		for family, weights := range families {
			key := TableKey{Dimension: dimension, Family: family}
			base, ok := out[key]
			if !ok {
				return nil, fmt.Errorf("no weight table for %s", key)
			}
			next, err := base.Override(weights)
			if err != nil {
				return nil, err
			}
			out[key] = next
		}
	}
	return out, nil
}

// Dimension keys used by the built-in tables.
const (
	KeyPrecision         = "precision"
	KeyRecall            = "recall"
	KeyF1                = "f1"
	KeyDetailedAccuracy  = "detailedAccuracy"
	KeyEditDistance      = "editDistance"
	KeyTokenMatching     = "tokenMatching"
	KeySpecialCharacters = "specialCharacters"
	KeyEditOperations    = "editOperations"

	KeyProblemTitle       = "problemTitle"
	KeyProblemDescription = "problemDescription"
	KeyRelevance          = "relevance"
	KeyEvidenceQuality    = "evidenceQuality"

	KeyLabelPrecision = "labelPrecision"
	KeyLabelRecall    = "labelRecall"
	KeyLabelF1        = "labelF1"
	KeyNameSimilarity = "nameSimilarity"
	KeyTypeAgreement  = "typeAgreement"

	KeyTitleQuality       = "titleQuality"
	KeyDescriptionQuality = "descriptionQuality"
	KeyPropertyCoverage   = "propertyCoverage"
	KeyResearchAlignment  = "researchAlignment"

	KeyTitle           = "title"
	KeyAuthors         = "authors"
	KeyDOI             = "doi"
	KeyVenue           = "venue"
	KeyPublicationYear = "publicationYear"

	KeyCompleteness = "completeness"
	KeyDOIFormat    = "doiFormat"
	KeyYearFormat   = "yearFormat"
	KeyAuthorFormat = "authorFormat"

	KeyExactMatch      = "exactMatch"
	KeyRankScore       = "rankScore"
	KeyLabelSimilarity = "labelSimilarity"

	KeyValueRecall     = "valueRecall"
	KeyValuePrecision  = "valuePrecision"
	KeyValueSimilarity = "valueSimilarity"
)

func table(dimension, family string, weights ...Weight) (TableKey, WeightTable) {
	key := TableKey{Dimension: dimension, Family: family}
	return key, MustWeightTable(key.String(), weights...)
}

// DefaultTables returns the built-in weight tables.
func DefaultTables() Tables {
	ts := Tables{}
	add := func(k TableKey, t WeightTable) { ts[k] = t }

	add(table(types.DimensionResearchProblem, types.FamilyAccuracy,
		Weight{KeyPrecision, 0.25},
		Weight{KeyRecall, 0.25},
		Weight{KeyF1, 0.20},
		Weight{KeyDetailedAccuracy, 0.10},
		Weight{KeyEditDistance, 0.10},
		Weight{KeyTokenMatching, 0.05},
		Weight{KeySpecialCharacters, 0.03},
		Weight{KeyEditOperations, 0.02},
	))
	add(table(types.DimensionResearchProblem, types.FamilyQuality,
		Weight{KeyProblemTitle, 0.3},
		Weight{KeyProblemDescription, 0.3},
		Weight{KeyRelevance, 0.2},
		Weight{KeyEvidenceQuality, 0.2},
	))
	add(table(types.DimensionResearchProblem, types.FamilyOverall,
		Weight{types.FamilyAccuracy, 0.6},
		Weight{types.FamilyQuality, 0.4},
	))

	add(table(types.DimensionTemplate, types.FamilyAccuracy,
		Weight{KeyLabelPrecision, 0.25},
		Weight{KeyLabelRecall, 0.25},
		Weight{KeyLabelF1, 0.20},
		Weight{KeyNameSimilarity, 0.15},
		Weight{KeyTypeAgreement, 0.15},
	))
	add(table(types.DimensionTemplate, types.FamilyQuality,
		Weight{KeyTitleQuality, 0.2},
		Weight{KeyDescriptionQuality, 0.2},
		Weight{KeyPropertyCoverage, 0.3},
		Weight{KeyResearchAlignment, 0.3},
	))
	add(table(types.DimensionTemplate, types.FamilyOverall,
		Weight{types.FamilyAccuracy, 0.5},
		Weight{types.FamilyQuality, 0.5},
	))

	add(table(types.DimensionMetadata, types.FamilyAccuracy,
		Weight{KeyTitle, 0.30},
		Weight{KeyAuthors, 0.25},
		Weight{KeyDOI, 0.15},
		Weight{KeyVenue, 0.15},
		Weight{KeyPublicationYear, 0.15},
	))
	add(table(types.DimensionMetadata, types.FamilyQuality,
		Weight{KeyCompleteness, 0.4},
		Weight{KeyDOIFormat, 0.2},
		Weight{KeyYearFormat, 0.2},
		Weight{KeyAuthorFormat, 0.2},
	))
	add(table(types.DimensionMetadata, types.FamilyOverall,
		Weight{types.FamilyAccuracy, 0.7},
		Weight{types.FamilyQuality, 0.3},
	))

	add(table(types.DimensionResearchField, types.FamilyAccuracy,
		Weight{KeyExactMatch, 0.5},
		Weight{KeyRankScore, 0.3},
		Weight{KeyLabelSimilarity, 0.2},
	))
	add(table(types.DimensionResearchField, types.FamilyOverall,
		Weight{types.FamilyAccuracy, 1.0},
	))

	add(table(types.DimensionContent, types.FamilyAccuracy,
		Weight{KeyValueRecall, 0.4},
		Weight{KeyValuePrecision, 0.3},
		Weight{KeyValueSimilarity, 0.3},
	))
	add(table(types.DimensionContent, types.FamilyOverall,
		Weight{types.FamilyAccuracy, 1.0},
	))

	return ts
}
