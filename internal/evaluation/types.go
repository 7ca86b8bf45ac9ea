// Package evaluation orchestrates the scoring engine for one evaluation
// dimension at a time and assembles the assessment record.
package evaluation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dotcommander/papereval/internal/balance"
	"github.com/dotcommander/papereval/internal/scoring"
	"github.com/dotcommander/papereval/internal/similarity"
	"github.com/dotcommander/papereval/internal/types"
)

// Artifact is a system-produced or reference artifact. Each dimension
// reads the fields it needs; the rest stay empty.
type Artifact struct {
	Title       string           `json:"title,omitempty" yaml:"title,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  []types.Property `json:"properties,omitempty" yaml:"properties,omitempty" validate:"dive"`
	Authors     []string         `json:"authors,omitempty" yaml:"authors,omitempty"`
	DOI         string           `json:"doi,omitempty" yaml:"doi,omitempty"`
	Venue       string           `json:"venue,omitempty" yaml:"venue,omitempty"`
	Year        int              `json:"publicationYear,omitempty" yaml:"publicationYear,omitempty" validate:"gte=0"`
	// Fields is a ranked list of research fields, best first.
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Problem returns the title/description view used by the similarity
// analyzer.
func (a Artifact) Problem() similarity.Artifact {
	return similarity.Artifact{Title: a.Title, Description: a.Description}
}

// Metadata returns the bibliographic view.
func (a Artifact) Metadata() types.Metadata {
	return types.Metadata{Title: a.Title, Authors: a.Authors, DOI: a.DOI, Venue: a.Venue, Year: a.Year}
}

// IsEmpty reports whether the artifact carries no data at all.
func (a Artifact) IsEmpty() bool {
	if !a.Problem().IsEmpty() || !a.Metadata().IsEmpty() {
		return false
	}
	for _, p := range a.Properties {
		if strings.TrimSpace(p.Label) != "" || strings.TrimSpace(p.Value) != "" {
			return false
		}
	}
	for _, f := range a.Fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Reference is ground truth. On the wire it is either a bare string,
// taken as an abstract, or an object with the Artifact fields and an
// optional abstract.
type Reference struct {
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Artifact `yaml:",inline"`
}

// referenceObject breaks the UnmarshalJSON recursion.
type referenceObject struct {
	Abstract string `json:"abstract,omitempty"`
	Artifact
}

// UnmarshalJSON accepts a string or an object.
func (r *Reference) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Reference{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("ground truth: %w", err)
		}
		*r = Reference{Abstract: s}
		return nil
	}
	var obj referenceObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("ground truth: %w", err)
	}
	*r = Reference{Abstract: obj.Abstract, Artifact: obj.Artifact}
	return nil
}

// MarshalJSON writes an abstract-only reference back as a string.
func (r Reference) MarshalJSON() ([]byte, error) {
	if r.Artifact.IsEmpty() && r.Abstract != "" {
		return json.Marshal(r.Abstract)
	}
	return json.Marshal(referenceObject{Abstract: r.Abstract, Artifact: r.Artifact})
}

// Similarity returns the reference as seen by the similarity analyzer.
func (r Reference) Similarity() similarity.Reference {
	return similarity.Reference{Abstract: r.Abstract, Artifact: r.Artifact.Problem()}
}

// IsEmpty reports whether there is no ground truth.
func (r Reference) IsEmpty() bool {
	return strings.TrimSpace(r.Abstract) == "" && r.Artifact.IsEmpty()
}

// Rating is the canonical human rating. 0 means not yet rated.
type Rating struct {
	Rating   int    `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Comments string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// UnmarshalJSON accepts a bare number or a {rating, comments} object.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = Rating{}
		return nil
	case len(data) > 0 && data[0] == '{':
		type plain Rating
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		*r = Rating(p)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		if n != float64(int(n)) {
			return fmt.Errorf("rating: %v is not a whole number", n)
		}
		*r = Rating{Rating: int(n)}
		return nil
	}
}

// IsRated reports whether a rating has been given.
func (r Rating) IsRated() bool {
	return r.Rating != balance.Unrated
}

// Request is one evaluation: a dimension, its ground truth, the candidate
// artifact and the reviewer's input.
type Request struct {
	Dimension   string    `json:"dimension" yaml:"dimension" validate:"required"`
	GroundTruth Reference `json:"groundTruth" yaml:"groundTruth"`
	Candidate   Artifact  `json:"candidate" yaml:"candidate"`
	// Edited is the reviewer's corrected version of Candidate, if any.
	Edited *Artifact `json:"edited,omitempty" yaml:"edited,omitempty"`
	// Problem is the research problem a template should align with. When
	// nil the ground truth stands in.
	Problem         *Artifact `json:"problem,omitempty" yaml:"problem,omitempty"`
	Rating          Rating    `json:"rating" yaml:"rating"`
	ExpertiseWeight int       `json:"expertise,omitempty" yaml:"expertise,omitempty" validate:"gte=0,lte=5"`
}

// Record is the assessment record handed to display and persistence.
type Record struct {
	ID              string                            `json:"id"`
	Dimension       string                            `json:"dimension"`
	Status          string                            `json:"status"`
	Notice          string                            `json:"notice,omitempty"`
	Families        map[string]scoring.AutomatedScore `json:"families,omitempty"`
	AutomatedScore  float64                           `json:"automatedScore"`
	Tier            string                            `json:"tier,omitempty"`
	Overall         []scoring.DimensionScore          `json:"overall,omitempty"`
	Balanced        *balance.Score                    `json:"balanced,omitempty"`
	Rating          Rating                            `json:"rating"`
	ExpertiseWeight int                               `json:"expertiseWeight"`
	EditAnalysis    map[string]similarity.Bundle      `json:"editAnalysis,omitempty"`
	EvaluatedAt     time.Time                         `json:"evaluatedAt"`
}

// FinalScore returns the balanced final score, or 0 when there is none.
func (r Record) FinalScore() float64 {
	if r.Balanced == nil {
		return 0
	}
	return r.Balanced.FinalScore
}
