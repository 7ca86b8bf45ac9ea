package cue

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Schema names and the definitions checked within them.
const (
	SchemaEvaluation = "evaluation"
	SchemaWeights    = "weights"

	defDocument = "#Document"
	defWeights  = "#Weights"
)

// ValidationError represents a validation error
type ValidationError struct {
	File     string
	Path     string // CUE path of the offending value, empty for document-level errors
	Message  string
	Severity string // error, warning
}

func (e ValidationError) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every embedded schema. Unlike a missing optional
// schema, a schema that fails to compile is a build defect and is returned.
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}

		// evaluation.cue -> evaluation
		v.schemas[strings.TrimSuffix(entry.Name(), ".cue")] = inst
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}
	return nil
}

// ValidateDocument checks a JSON-encoded evaluation document. The bytes are
// compiled as CUE directly so integers and floats keep their JSON kinds.
func (v *Validator) ValidateDocument(file string, data []byte) ([]ValidationError, error) {
	schema, ok := v.schemas[SchemaEvaluation]
	if !ok {
		return nil, fmt.Errorf("schema %q not loaded", SchemaEvaluation)
	}

	value := v.ctx.CompileBytes(data, cue.Filename(file))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return v.validateAgainstSchema(schema, value, defDocument, file)
}

// ValidateWeights checks weight overrides as read from configuration.
func (v *Validator) ValidateWeights(data map[string]any) ([]ValidationError, error) {
	schema, ok := v.schemas[SchemaWeights]
	if !ok {
		return nil, fmt.Errorf("schema %q not loaded", SchemaWeights)
	}

	value := v.ctx.Encode(data)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("error encoding data: %w", err)
	}
	return v.validateAgainstSchema(schema, value, defWeights, "")
}

// validateAgainstSchema unifies data with a definition of schema.
func (v *Validator) validateAgainstSchema(schema, data cue.Value, definition, file string) ([]ValidationError, error) {
	def := schema.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return nil, fmt.Errorf("definition %s not found in schema", definition)
	}

	unified := def.Unify(data)
	if err := unified.Err(); err != nil {
		return extractErrorsFromCUE(err, file), nil
	}

	// Concreteness catches required fields that are absent.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrorsFromCUE(err, file), nil
	}

	return nil, nil
}

// extractErrorsFromCUE splits a CUE error list into one entry per failure.
func extractErrorsFromCUE(err error, file string) []ValidationError {
	var out []ValidationError
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			File:     file,
			Path:     strings.Join(e.Path(), "."),
			Message:  e.Error(),
			Severity: "error",
		}
		if seen[ve.String()] {
			continue
		}
		seen[ve.String()] = true
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{File: file, Message: err.Error(), Severity: "error"})
	}
	return out
}
