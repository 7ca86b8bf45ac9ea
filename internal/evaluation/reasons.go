package evaluation

import (
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/types"
)

// accuracySubjects names what each accuracy key measures.
var accuracySubjects = map[string]string{
	scoring.KeyPrecision:         "Candidate wording",
	scoring.KeyRecall:            "Ground-truth wording",
	scoring.KeyF1:                "Token overlap",
	scoring.KeyDetailedAccuracy:  "Title, coverage, and specificity",
	scoring.KeyEditDistance:      "Character-level text",
	scoring.KeyTokenMatching:     "Vocabulary",
	scoring.KeySpecialCharacters: "Punctuation and symbol usage",
	scoring.KeyEditOperations:    "Edit volume",

	scoring.KeyLabelPrecision: "Template property labels",
	scoring.KeyLabelRecall:    "Ground-truth property labels",
	scoring.KeyLabelF1:        "Property label overlap",
	scoring.KeyNameSimilarity: "Template name",
	scoring.KeyTypeAgreement:  "Property types",

	scoring.KeyTitle:           "Paper title",
	scoring.KeyAuthors:         "Author list",
	scoring.KeyDOI:             "DOI",
	scoring.KeyVenue:           "Venue",
	scoring.KeyPublicationYear: "Publication year",

	scoring.KeyExactMatch:      "Top-ranked research field",
	scoring.KeyRankScore:       "Rank of the correct field",
	scoring.KeyLabelSimilarity: "Research field label",

	scoring.KeyValueRecall:     "Ground-truth values",
	scoring.KeyValuePrecision:  "Extracted values",
	scoring.KeyValueSimilarity: "Matched value wording",
}

// accuracyReasons is built from accuracySubjects.
var accuracyReasons = func() scoring.ReasonTable {
	rt := make(scoring.ReasonTable, len(accuracySubjects))
	for key, subject := range accuracySubjects {
		rt[key] = scoring.ReasonSet{
			High:   subject + " closely matches the ground truth.",
			Medium: subject + " partially matches the ground truth.",
			Low:    subject + " differs substantially from the ground truth.",
		}
	}
	return rt
}()

var familyReasons = scoring.ReasonTable{
	types.FamilyAccuracy: {
		High:   "Automated comparison shows strong agreement with the ground truth.",
		Medium: "Automated comparison shows moderate agreement with the ground truth.",
		Low:    "Automated comparison shows weak agreement with the ground truth.",
	},
	types.FamilyQuality: {
		High:   "Artifact is structurally sound.",
		Medium: "Artifact has some structural weaknesses.",
		Low:    "Artifact has significant structural problems.",
	},
}

func accuracy(key string, value float64, issues ...string) scoring.Input {
	return scoring.Input{Value: value, Reason: accuracyReasons.Reason(key, value), Issues: issues}
}
