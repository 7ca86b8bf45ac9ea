package textmetrics

import (
	"sort"
	"unicode"
)

// EditProfile classifies the edits between a reference and a candidate.
type EditProfile struct {
	Insertions     int     `json:"insertions"`
	Deletions      int     `json:"deletions"`
	Modifications  int     `json:"modifications"`
	TotalEdits     int     `json:"totalEdits"`
	EditPercentage float64 `json:"editPercentage"`
}

// EditProfileOf derives insertions and deletions from the length delta and
// attributes the rest of the Levenshtein distance to modifications.
func EditProfileOf(reference, candidate string) EditProfile {
	refLen := RuneLen(reference)
	candLen := RuneLen(candidate)
	dist := Levenshtein(reference, candidate).Distance

	ins := max(0, candLen-refLen)
	del := max(0, refLen-candLen)
	mods := dist - ins - del
	total := ins + del + mods

	return EditProfile{
		Insertions:     ins,
		Deletions:      del,
		Modifications:  mods,
		TotalEdits:     total,
		EditPercentage: Ratio(float64(total), float64(refLen)),
	}
}

// CharCount is one entry of a special character breakdown.
type CharCount struct {
	Character  string  `json:"character"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SpecialCharProfile summarizes the non-alphanumeric, non-whitespace
// characters of a text.
type SpecialCharProfile struct {
	Count      int         `json:"count"`
	Ratio      float64     `json:"ratio"`
	Characters []CharCount `json:"characters"`
}

// SpecialCharacters counts special characters. Characters are sorted by
// frequency, descending; ties are ordered by character.
func SpecialCharacters(text string) SpecialCharProfile {
	counts := make(map[rune]int)
	total := 0
	length := 0
	for _, r := range text {
		length++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		counts[r]++
		total++
	}

	chars := make([]CharCount, 0, len(counts))
	for r, n := range counts {
		chars = append(chars, CharCount{
			Character:  string(r),
			Count:      n,
			Percentage: Ratio(float64(n), float64(total)) * 100,
		})
	}
	sort.Slice(chars, func(i, j int) bool {
		if chars[i].Count != chars[j].Count {
			return chars[i].Count > chars[j].Count
		}
		return chars[i].Character < chars[j].Character
	})

	return SpecialCharProfile{
		Count:      total,
		Ratio:      Ratio(float64(total), float64(length)),
		Characters: chars,
	}
}
