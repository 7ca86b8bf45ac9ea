package output

import (
	"time"

	"github.com/dotcommander/papereval/internal/balance"
	"github.com/dotcommander/papereval/internal/evaluation"
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/similarity"
	"github.com/dotcommander/papereval/internal/textmetrics"
	"github.com/dotcommander/papereval/internal/types"
)

func scoredRecord(dimension string, automated, final float64, tier string, rating int) evaluation.Record {
	status := types.StatusUnrated
	if rating > 0 {
		status = types.StatusRated
	}
	return evaluation.Record{
		ID:             "rec-" + dimension,
		Dimension:      dimension,
		Status:         status,
		AutomatedScore: automated,
		Tier:           tier,
		Rating:         evaluation.Rating{Rating: rating, Comments: "looks fine"},
		Families: map[string]scoring.AutomatedScore{
			types.FamilyAccuracy: {
				Family: types.FamilyAccuracy,
				Score:  automated,
				Dimensions: []scoring.DimensionScore{
					{Key: "precision", Value: automated, Weight: 1, Contribution: automated,
						Reason: "Candidate wording partially matches the ground truth.",
						Issues: []string{"missing concept: pruning"}},
				},
			},
		},
		Balanced: &balance.Score{
			AutomatedScore:      automated,
			HumanRating:         max(rating, 3),
			ExpertiseMultiplier: 1,
			HumanScore:          0.6,
			FinalScore:          final,
			Confidence:          0.5,
			Agreement:           0.9,
			AgreementLevel:      balance.AgreementHigh,
		},
		EvaluatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func sampleReport() *Report {
	edited := scoredRecord(types.DimensionResearchProblem, 0.62, 0.70, "C", 4)
	edited.EditAnalysis = map[string]similarity.Bundle{
		similarity.FieldTitle: {
			Levenshtein: textmetrics.SimilarityResult{SimilarityScore: 0.8},
			Edits:       textmetrics.EditProfile{TotalEdits: 3, EditPercentage: 0.2},
		},
	}

	return &Report{
		Version:   "test",
		Root:      "reviews",
		Documents: 2,
		Results: []Result{
			{Source: "a.eval.yaml", Record: edited},
			{Source: "a.eval.yaml", Record: scoredRecord(types.DimensionMetadata, 0.9, 0.88, "A", 0)},
			{Source: "b.eval.json", Record: evaluation.Record{
				ID:        "rec-figures",
				Dimension: "figures",
				Status:    types.StatusUnsupportedDimension,
				Notice:    `dimension "figures" is not supported`,
			}},
		},
		Errors: []FileError{{Source: "c.eval.yaml", Message: "schema validation failed"}},
	}
}
