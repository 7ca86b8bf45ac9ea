package scoring

// DimensionScore is one named sub-metric with its weight and the share it
// contributed to the family score.
type DimensionScore struct {
	Key          string   `json:"key"`
	Value        float64  `json:"value"`        // 0-1
	Weight       float64  `json:"weight"`       // share of the family score
	Contribution float64  `json:"contribution"` // value * weight
	Reason       string   `json:"reason"`
	Issues       []string `json:"issues,omitempty"`
}

// AutomatedScore is the weighted sum of one metric family's dimensions
type AutomatedScore struct {
	Family     string           `json:"family"`
	Table      string           `json:"table"`
	Score      float64          `json:"score"` // 0-1
	Tier       string           `json:"tier"`  // A, B, C, D, F
	Dimensions []DimensionScore `json:"dimensions"`
}

// Input is a dimension value handed to the aggregator along with the
// explanation produced by the analyzer that computed it.
type Input struct {
	Value  float64
	Reason string
	Issues []string
}

// TierFromScore returns the display tier for a 0-1 score
func TierFromScore(score float64) string {
	switch {
	case score >= 0.85:
		return "A"
	case score >= 0.70:
		return "B"
	case score >= 0.50:
		return "C"
	case score >= 0.30:
		return "D"
	default:
		return "F"
	}
}
