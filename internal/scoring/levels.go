package scoring

import "fmt"

// Level is the three-tier bucket used to pick a reason sentence.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Default bucket boundaries. Both comparisons are strict.
const (
	HighThreshold   = 0.7
	MediumThreshold = 0.4
)

// Thresholds holds the lower bounds (exclusive) of the high and medium
// buckets.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds is the >0.7 / >0.4 / else bucketing.
var DefaultThresholds = Thresholds{High: HighThreshold, Medium: MediumThreshold}

// LevelFor buckets a score with the default thresholds.
func LevelFor(score float64) Level {
	return DefaultThresholds.LevelFor(score)
}

// LevelFor buckets a score.
func (t Thresholds) LevelFor(score float64) Level {
	switch {
	case score > t.High:
		return LevelHigh
	case score > t.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ReasonSet holds the sentence shown for each level of one metric.
type ReasonSet struct {
	High   string
	Medium string
	Low    string
}

// ReasonTable maps metric keys to their sentences.
type ReasonTable map[string]ReasonSet

// Reason returns the sentence for the key at the score's level. Unknown
// keys get a generic sentence naming the key.
func (rt ReasonTable) Reason(key string, score float64) string {
	set, ok := rt[key]
	if !ok {
		return fmt.Sprintf("%s scored %s (%.2f)", key, LevelFor(score), score)
	}
	return set.For(LevelFor(score))
}

// For returns the sentence for a level.
func (s ReasonSet) For(level Level) string {
	switch level {
	case LevelHigh:
		return s.High
	case LevelMedium:
		return s.Medium
	default:
		return s.Low
	}
}
