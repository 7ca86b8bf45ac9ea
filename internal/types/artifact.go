package types

// Property is one template or content property. Content evaluations carry
// a Value; templates usually leave it empty.
type Property struct {
	Label    string `json:"label" yaml:"label" validate:"required"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Metadata is the bibliographic record of a paper.
type Metadata struct {
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	DOI     string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	Year    int      `json:"publicationYear,omitempty" yaml:"publicationYear,omitempty"`
}

// IsEmpty reports whether no field is set.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && len(m.Authors) == 0 && m.DOI == "" && m.Venue == "" && m.Year == 0
}
