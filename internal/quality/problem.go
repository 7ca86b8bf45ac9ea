package quality

import (
	"regexp"

	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/textmetrics"
)

var (
	domainStems = []string{"approach", "method", "technique", "framework", "model", "system", "analysis"}

	contextStems   = []string{"background", "context", "current", "existing", "previous", "prior", "despite", "however", "challeng", "problem", "limitation", "gap"}
	methodStems    = []string{"method", "approach", "technique", "algorithm", "framework", "model", "propos", "using", "apply", "develop"}
	objectiveStems = []string{"aim", "goal", "objective", "improv", "enhanc", "achiev", "enabl", "address", "solv", "reduc", "increas", "evaluat", "investigat"}

	evidencePhrases = []string{
		"results show", "results indicate", "shows that", "show that", "demonstrates", "demonstrate",
		"evidence", "experiment", "experiments", "evaluation", "according to", "study", "studies",
		"findings", "observed", "measured",
	}
	evidenceMethodStems = []string{"method", "approach", "algorithm", "technique", "model", "framework", "dataset", "benchmark", "experiment"}

	citationMarker  = regexp.MustCompile(`\[\d+(?:\s*[,\-–]\s*\d+)*\]|\(\p{Lu}[\p{L}\-]+(?: et al\.?)?,? \d{4}\)|\bet al\b`)
	numericMarker   = regexp.MustCompile(`\d+(?:\.\d+)?\s*%|\bp\s*[<=>]\s*0?\.\d+|\d+\.\d+|\b\d+\b`)
	statisticalWord = regexp.MustCompile(`(?i)\b(significant(ly)?|mean|median|variance|correlation|percent|accuracy|f1|precision|recall)\b`)
)

// Title scores a title: 0.3·length + 0.4·words + 0.3·domain terms, with a
// 20–100 character window, a 3–15 word window and credit for two distinct
// domain terms.
func Title(title string) Result {
	length := float64(textmetrics.RuneLen(title))
	words := float64(len(textmetrics.Words(title)))
	hits := stemHits(title, domainStems)

	lengthScore := windowScore(length, 20, 100)
	wordScore := windowScore(words, 3, 15)
	domainScore := min(float64(len(hits))/2, 1.0)

	return result(scoring.KeyTitleQuality, 0.3*lengthScore+0.4*wordScore+0.3*domainScore, map[string]any{
		"length":      int(length),
		"words":       int(words),
		"domainTerms": hits,
	})
}

// Description scores a description: 0.3·length + 0.3·sentences +
// 0.4·structure. Structure awards a third each for context, method and
// objective vocabulary.
func Description(desc string) Result {
	length := float64(textmetrics.RuneLen(desc))
	sentences := float64(len(textmetrics.Sentences(desc)))

	structure := 0.0
	checks := map[string]bool{}
	for name, stems := range map[string][]string{
		"context":   contextStems,
		"method":    methodStems,
		"objective": objectiveStems,
	} {
		ok := len(stemHits(desc, stems)) > 0
		checks[name] = ok
		if ok {
			structure += 1.0 / 3
		}
	}

	score := 0.3*windowScore(length, 100, 1000) + 0.3*windowScore(sentences, 2, 6) + 0.4*structure
	return result(scoring.KeyDescriptionQuality, score, map[string]any{
		"length":    int(length),
		"sentences": int(sentences),
		"structure": checks,
	})
}

// Relevance compares problem text against the ground truth over content
// words longer than two characters: 0.5·jaccard + 0.5·recall of
// ground-truth words.
func Relevance(problemText, groundTruth string) Result {
	problem := textmetrics.WordSet(problemText, 3)
	truth := textmetrics.WordSet(groundTruth, 3)

	shared := 0
	for w := range truth {
		if problem[w] {
			shared++
		}
	}
	jaccard := textmetrics.Jaccard(problem, truth)
	recall := textmetrics.Ratio(float64(shared), float64(len(truth)))

	return result(scoring.KeyRelevance, 0.5*jaccard+0.5*recall, map[string]any{
		"jaccard":     jaccard,
		"wordRecall":  recall,
		"sharedWords": shared,
	})
}

// EvidenceQuality is min(evidence·0.4 + numbers + methods, 1), where
// evidence saturates at three phrases or citation markers and numeric or
// statistical content and method terms add 0.3 each.
func EvidenceQuality(text string) Result {
	phrases := textmetrics.ContainsAny(text, evidencePhrases)
	citations := len(citationMarker.FindAllString(text, -1))
	evidenceScore := min(float64(len(phrases)+citations)/3, 1.0)

	numbers := numericMarker.MatchString(text) || statisticalWord.MatchString(text)
	methods := stemHits(text, evidenceMethodStems)

	score := evidenceScore * 0.4
	if numbers {
		score += 0.3
	}
	if len(methods) > 0 {
		score += 0.3
	}

	return result(scoring.KeyEvidenceQuality, min(score, 1.0), map[string]any{
		"evidencePhrases": phrases,
		"citations":       citations,
		"numeric":         numbers,
		"methodTerms":     methods,
	})
}
