// Package loader reads evaluation documents from disk. Documents are JSON
// or YAML; both are normalized to JSON, checked against the embedded CUE
// schema, decoded into requests, and validated as Go structs.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/papereval/internal/cue"
	"github.com/dotcommander/papereval/internal/evaluation"
)

// Evaluator describes who produced the ratings in a document.
type Evaluator struct {
	Name      string `json:"name,omitempty"`
	Expertise int    `json:"expertise,omitempty" validate:"gte=0,lte=5"`
}

// Document is one evaluation file. Records are stored per file and
// dimension, so each dimension may appear only once.
type Document struct {
	Path        string               `json:"-"`
	Evaluator   Evaluator            `json:"evaluator"`
	Evaluations []evaluation.Request `json:"evaluations" validate:"unique=Dimension,dive"`
}

// SchemaError reports every schema violation found in a document.
type SchemaError struct {
	Path   string
	Errors []cue.ValidationError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.String()
	}
	return fmt.Sprintf("%s: schema validation failed: %s", e.Path, strings.Join(msgs, "; "))
}

// Loader decodes and validates evaluation documents.
type Loader struct {
	schemas  *cue.Validator
	validate *validator.Validate
}

// New creates a loader with the embedded schemas compiled.
func New() (*Loader, error) {
	schemas := cue.NewValidator()
	if err := schemas.LoadSchemas(); err != nil {
		return nil, fmt.Errorf("loading schemas: %w", err)
	}
	return &Loader{
		schemas:  schemas,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Load reads and decodes the document at path.
func (l *Loader) Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return l.Decode(path, content)
}

// Decode parses content, using the extension of name to pick the format.
// Unknown extensions are tried as YAML, which also accepts JSON.
func (l *Loader) Decode(name string, content []byte) (*Document, error) {
	data, err := normalize(name, content)
	if err != nil {
		return nil, err
	}

	verrs, err := l.schemas.ValidateDocument(name, data)
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		return nil, &SchemaError{Path: name, Errors: verrs}
	}

	doc := &Document{Path: name}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	if err := l.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	doc.applyEvaluatorExpertise()
	return doc, nil
}

// normalize converts the document to JSON bytes.
func normalize(name string, content []byte) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if !json.Valid(content) {
			return nil, fmt.Errorf("error parsing %s: invalid JSON", name)
		}
		return content, nil
	}

	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", name, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("error parsing %s: document is empty", name)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(raw); err != nil {
		return nil, fmt.Errorf("error converting %s to JSON: %w", name, err)
	}
	return buf.Bytes(), nil
}

// applyEvaluatorExpertise fills in the document-level expertise for
// evaluations that do not set their own.
func (d *Document) applyEvaluatorExpertise() {
	if d.Evaluator.Expertise == 0 {
		return
	}
	for i := range d.Evaluations {
		if d.Evaluations[i].ExpertiseWeight == 0 {
			d.Evaluations[i].ExpertiseWeight = d.Evaluator.Expertise
		}
	}
}
