package evaluation

import (
	"fmt"
	"math"
	"strings"

	"github.com/dotcommander/papereval/internal/quality"
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/similarity"
	"github.com/dotcommander/papereval/internal/textmetrics"
	"github.com/dotcommander/papereval/internal/types"
)

// familyInputs holds the per-key inputs of each metric family.
type familyInputs map[string]map[string]scoring.Input

// dimensionFunc computes the family inputs of one dimension.
type dimensionFunc func(req Request) familyInputs

var dimensionFuncs = map[string]dimensionFunc{
	types.DimensionResearchProblem: researchProblem,
	types.DimensionTemplate:        template,
	types.DimensionMetadata:        metadata,
	types.DimensionResearchField:   researchField,
	types.DimensionContent:         content,
}

// Blend of the detailed accuracy sub-score.
const (
	detailedTitleWeight       = 0.3
	detailedCoverageWeight    = 0.4
	detailedSpecificityWeight = 0.3
)

const maxListedIssues = 5

func researchProblem(req Request) familyInputs {
	ref := req.GroundTruth.Similarity()
	cand := req.Candidate.Problem()
	refText, candText := ref.Text(), cand.Text()

	acc := similarity.Accuracy(ref, cand)
	title := similarity.TitleAlignment(ref, cand)
	coverage := similarity.ContentCoverage(ref, cand)
	specificity := similarity.Specificity(cand)
	detailed := detailedTitleWeight*title.Score +
		detailedCoverageWeight*coverage.Score +
		detailedSpecificityWeight*specificity.Score

	bundle := similarity.BundleOf(refText, candText)
	refSpecial := textmetrics.SpecialCharacters(refText)
	specialAgreement := 1 - math.Abs(refSpecial.Ratio-bundle.SpecialCharacters.Ratio)
	editOps := 1 - min(bundle.Edits.EditPercentage, 1.0)
	vocab := textmetrics.Jaccard(
		textmetrics.SetOf(bundle.TokenMatch.ReferenceTokens),
		textmetrics.SetOf(bundle.TokenMatch.CandidateTokens),
	)

	var missing []string
	for i, c := range coverage.Missing {
		if i == maxListedIssues {
			missing = append(missing, fmt.Sprintf("%d more concepts missing", len(coverage.Missing)-i))
			break
		}
		missing = append(missing, "missing concept: "+c)
	}

	return familyInputs{
		types.FamilyAccuracy: {
			scoring.KeyPrecision:         accuracy(scoring.KeyPrecision, acc.Precision),
			scoring.KeyRecall:            accuracy(scoring.KeyRecall, acc.Recall),
			scoring.KeyF1:                accuracy(scoring.KeyF1, acc.F1Score),
			scoring.KeyDetailedAccuracy:  accuracy(scoring.KeyDetailedAccuracy, detailed, missing...),
			scoring.KeyEditDistance:      accuracy(scoring.KeyEditDistance, bundle.Levenshtein.SimilarityScore),
			scoring.KeyTokenMatching:     accuracy(scoring.KeyTokenMatching, vocab),
			scoring.KeySpecialCharacters: accuracy(scoring.KeySpecialCharacters, specialAgreement),
			scoring.KeyEditOperations:    accuracy(scoring.KeyEditOperations, editOps),
		},
		types.FamilyQuality: {
			scoring.KeyProblemTitle:       quality.Title(cand.Title).Input(),
			scoring.KeyProblemDescription: quality.Description(cand.Description).Input(),
			scoring.KeyRelevance:          quality.Relevance(candText, refText).Input(),
			scoring.KeyEvidenceQuality:    quality.EvidenceQuality(candText).Input(),
		},
	}
}

func template(req Request) familyInputs {
	gt, cand := req.GroundTruth.Artifact, req.Candidate

	labels := similarity.LabelMatch(propertyLabels(gt.Properties), propertyLabels(cand.Properties))

	agree := 0
	for _, p := range labels.Pairs {
		a := gt.Properties[p.ReferenceIndex].Type
		b := cand.Properties[p.CandidateIndex].Type
		if textmetrics.Fold(strings.TrimSpace(a)) == textmetrics.Fold(strings.TrimSpace(b)) {
			agree++
		}
	}
	typeAgreement := textmetrics.Ratio(float64(agree), float64(len(labels.Pairs)))

	problem := req.GroundTruth.Artifact
	if req.Problem != nil {
		problem = *req.Problem
	} else if problem.Title == "" && problem.Description == "" {
		problem.Description = req.GroundTruth.Abstract
	}

	var missing []string
	for _, m := range labels.Missing {
		missing = append(missing, "missing property: "+m)
	}

	return familyInputs{
		types.FamilyAccuracy: {
			scoring.KeyLabelPrecision: accuracy(scoring.KeyLabelPrecision, labels.Precision),
			scoring.KeyLabelRecall:    accuracy(scoring.KeyLabelRecall, labels.Recall, missing...),
			scoring.KeyLabelF1:        accuracy(scoring.KeyLabelF1, labels.F1Score),
			scoring.KeyNameSimilarity: accuracy(scoring.KeyNameSimilarity, textSimilarity(gt.Title, cand.Title)),
			scoring.KeyTypeAgreement:  accuracy(scoring.KeyTypeAgreement, typeAgreement),
		},
		types.FamilyQuality: {
			scoring.KeyTitleQuality:       quality.Title(cand.Title).Input(),
			scoring.KeyDescriptionQuality: quality.Description(cand.Description).Input(),
			scoring.KeyPropertyCoverage:   quality.PropertyCoverage(cand.Properties).Input(),
			scoring.KeyResearchAlignment:  quality.ResearchAlignment(cand.Properties, problem.Title, problem.Description).Input(),
		},
	}
}

func metadata(req Request) familyInputs {
	gt, cand := req.GroundTruth.Metadata(), req.Candidate.Metadata()

	doi := 0.0
	if d := quality.NormalizeDOI(gt.DOI); d != "" && d == quality.NormalizeDOI(cand.DOI) {
		doi = 1
	}
	year := 0.0
	if gt.Year != 0 && gt.Year == cand.Year {
		year = 1
	}

	return familyInputs{
		types.FamilyAccuracy: {
			scoring.KeyTitle:           accuracy(scoring.KeyTitle, textSimilarity(gt.Title, cand.Title)),
			scoring.KeyAuthors:         accuracy(scoring.KeyAuthors, similarity.LabelMatch(gt.Authors, cand.Authors).F1Score),
			scoring.KeyDOI:             accuracy(scoring.KeyDOI, doi),
			scoring.KeyVenue:           accuracy(scoring.KeyVenue, textSimilarity(gt.Venue, cand.Venue)),
			scoring.KeyPublicationYear: accuracy(scoring.KeyPublicationYear, year),
		},
		types.FamilyQuality: {
			scoring.KeyCompleteness: quality.MetadataCompleteness(cand).Input(),
			scoring.KeyDOIFormat:    quality.DOIFormat(cand.DOI).Input(),
			scoring.KeyYearFormat:   quality.YearFormat(cand.Year).Input(),
			scoring.KeyAuthorFormat: quality.AuthorFormat(cand.Authors).Input(),
		},
	}
}

func researchField(req Request) familyInputs {
	truth := firstNonBlank(append(append([]string{}, req.GroundTruth.Fields...), req.GroundTruth.Title, req.GroundTruth.Abstract)...)
	ranked := req.Candidate.Fields
	if len(ranked) == 0 && req.Candidate.Title != "" {
		ranked = []string{req.Candidate.Title}
	}

	exact, rank, best := 0.0, 0.0, 0.0
	if truth != "" {
		folded := textmetrics.Fold(truth)
		for i, f := range ranked {
			f = textmetrics.Fold(strings.TrimSpace(f))
			if f == "" {
				continue
			}
			if i == 0 && f == folded {
				exact = 1
			}
			if rank == 0 && similarity.LabelsEqual(f, folded) {
				rank = 1 / float64(i+1)
			}
			best = max(best, textmetrics.Levenshtein(folded, f).SimilarityScore)
		}
	}

	return familyInputs{
		types.FamilyAccuracy: {
			scoring.KeyExactMatch:      accuracy(scoring.KeyExactMatch, exact),
			scoring.KeyRankScore:       accuracy(scoring.KeyRankScore, rank),
			scoring.KeyLabelSimilarity: accuracy(scoring.KeyLabelSimilarity, best),
		},
	}
}

func content(req Request) familyInputs {
	truth := propertyValues(req.GroundTruth.Properties)
	if len(truth) == 0 && strings.TrimSpace(req.GroundTruth.Abstract) != "" {
		truth = []string{req.GroundTruth.Abstract}
	}
	values := similarity.LabelMatch(truth, propertyValues(req.Candidate.Properties))

	var missing []string
	for _, m := range values.Missing {
		missing = append(missing, "missing value: "+m)
	}

	return familyInputs{
		types.FamilyAccuracy: {
			scoring.KeyValueRecall:     accuracy(scoring.KeyValueRecall, values.Recall, missing...),
			scoring.KeyValuePrecision:  accuracy(scoring.KeyValuePrecision, values.Precision),
			scoring.KeyValueSimilarity: accuracy(scoring.KeyValueSimilarity, values.MeanSimilarity),
		},
	}
}

// textSimilarity is the case-folded Levenshtein similarity, 0 when either
// side is blank.
func textSimilarity(a, b string) float64 {
	a = textmetrics.Fold(strings.TrimSpace(a))
	b = textmetrics.Fold(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	return textmetrics.Levenshtein(a, b).SimilarityScore
}

// propertyLabels keeps slice positions so pair indices map back onto props.
func propertyLabels(props []types.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Label
	}
	return out
}

func propertyValues(props []types.Property) []string {
	var out []string
	for _, p := range props {
		if v := strings.TrimSpace(p.Value); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonBlank(ss ...string) string {
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
