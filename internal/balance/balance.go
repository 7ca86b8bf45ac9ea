// Package balance blends an automated score with an expertise-weighted
// human rating into the final score shown to reviewers.
package balance

import "math"

// Blend weights of the final score.
const (
	AutomatedWeight = 0.4
	HumanWeight     = 0.6
)

// Rating bounds. A rating of 0 means the field has not been rated yet.
const (
	Unrated       = 0
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// AgreementLevel classifies how close the automated score and the
// normalized human rating are.
type AgreementLevel string

const (
	AgreementHigh   AgreementLevel = "high"
	AgreementMedium AgreementLevel = "medium"
	AgreementLow    AgreementLevel = "low"
)

// Score is the blended result for one field.
type Score struct {
	AutomatedScore      float64        `json:"automatedScore"`
	HumanRating         int            `json:"humanRating"`
	RatingDefaulted     bool           `json:"ratingDefaulted,omitempty"`
	ExpertiseMultiplier float64        `json:"expertiseMultiplier"`
	HumanScore          float64        `json:"humanScore"`
	FinalScore          float64        `json:"finalScore"`
	Clamped             bool           `json:"clamped,omitempty"`
	Confidence          float64        `json:"confidence"`
	Agreement           float64        `json:"agreement"`
	AgreementLevel      AgreementLevel `json:"agreementLevel"`
}

// Calculator computes balanced scores. The zero value leaves the final
// score unclamped and substitutes DefaultRating for unrated fields.
type Calculator struct {
	// Clamp bounds FinalScore to [0,1]. Without it the score can exceed 1
	// once the expertise multiplier is above 1.
	Clamp bool
	// DefaultRating replaces a rating of 0. Values outside 1..5 fall back
	// to the package DefaultRating.
	DefaultRating int
}

// NewCalculator returns a calculator with the package defaults.
func NewCalculator(clamp bool) Calculator {
	return Calculator{Clamp: clamp, DefaultRating: DefaultRating}
}

// ExpertiseMultiplier maps a 1-5 expertise weight onto [0.8, 1.6].
func ExpertiseMultiplier(weight int) float64 {
	w := min(max(weight, MinRating), MaxRating)
	return 0.6 + 0.2*float64(w)
}

// Calculate blends automated ∈ [0,1] with a 1-5 rating:
//
//	final = automated×0.4 + (rating/5)×0.6×multiplier
func (c Calculator) Calculate(automated float64, rating int, multiplier float64) Score {
	automated = clamp01(automated)

	defaulted := false
	if rating == Unrated {
		rating = c.defaultRating()
		defaulted = true
	}
	rating = min(max(rating, MinRating), MaxRating)

	normalized := float64(rating) / MaxRating
	human := normalized * multiplier
	final := automated*AutomatedWeight + human*HumanWeight

	clamped := false
	if c.Clamp {
		bounded := clamp01(final)
		clamped = bounded != final
		final = bounded
	}

	agreement := 1 - math.Abs(automated-normalized)

	return Score{
		AutomatedScore:      automated,
		HumanRating:         rating,
		RatingDefaulted:     defaulted,
		ExpertiseMultiplier: multiplier,
		HumanScore:          human,
		FinalScore:          final,
		Clamped:             clamped,
		Confidence:          Confidence(automated),
		Agreement:           agreement,
		AgreementLevel:      LevelForAgreement(agreement),
	}
}

// CalculateWithExpertise derives the multiplier from an expertise weight.
func (c Calculator) CalculateWithExpertise(automated float64, rating, expertiseWeight int) Score {
	return c.Calculate(automated, rating, ExpertiseMultiplier(expertiseWeight))
}

// Confidence is a U-shaped curve over the automated score: 1 at 0.5,
// falling linearly to 0 at either extreme.
func Confidence(automated float64) float64 {
	return 1 - 2*math.Abs(clamp01(automated)-0.5)
}

// LevelForAgreement buckets an agreement value.
func LevelForAgreement(agreement float64) AgreementLevel {
	switch {
	case agreement >= 0.8:
		return AgreementHigh
	case agreement >= 0.6:
		return AgreementMedium
	default:
		return AgreementLow
	}
}

func (c Calculator) defaultRating() int {
	if c.DefaultRating >= MinRating && c.DefaultRating <= MaxRating {
		return c.DefaultRating
	}
	return DefaultRating
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
