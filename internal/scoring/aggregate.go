package scoring

// Aggregate combines dimension values into one family score using the
// table's weights: score = Σ value_i × weight_i. Every table entry produces
// a DimensionScore in table order; values for keys outside the table are
// ignored and missing keys count as 0.
func Aggregate(family string, table WeightTable, values map[string]Input) AutomatedScore {
	dims := make([]DimensionScore, 0, len(table.weights))
	total := 0.0

	for _, w := range table.weights {
		in, ok := values[w.Key]
		ds := DimensionScore{
			Key:    w.Key,
			Weight: w.Value,
		}
		if !ok {
			ds.Reason = "No value supplied for " + w.Key
			ds.Issues = []string{"no value supplied"}
			dims = append(dims, ds)
			continue
		}

		v := clamp01(in.Value)
		ds.Value = v
		ds.Contribution = v * w.Value
		ds.Reason = in.Reason
		ds.Issues = in.Issues
		total += ds.Contribution
		dims = append(dims, ds)
	}

	return AutomatedScore{
		Family:     family,
		Table:      table.name,
		Score:      total,
		Tier:       TierFromScore(total),
		Dimensions: dims,
	}
}

// Contributions returns the weighted contribution of each dimension keyed
// by dimension key, for audit display.
func (a AutomatedScore) Contributions() map[string]float64 {
	out := make(map[string]float64, len(a.Dimensions))
	for _, d := range a.Dimensions {
		out[d.Key] = d.Contribution
	}
	return out
}

// Dimension returns the named dimension score.
func (a AutomatedScore) Dimension(key string) (DimensionScore, bool) {
	for _, d := range a.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionScore{}, false
}

func clamp01(x float64) float64 {
	if x != x { // NaN
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
