package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/osse101/IdleTracker_Go/internal/domain"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schema names bundled with the binary
const (
	SchemaSave = "save"
)

// SchemaValidator validates JSON documents against the bundled schemas
type SchemaValidator interface {
	ValidateBytes(data []byte, schemaName string) error
	ValidateSave(data []byte) error
}

type validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewSchemaValidator compiles every bundled schema
func NewSchemaValidator() (SchemaValidator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	v := &validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}

	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".schema.json")
		schema, err := compile(compiler, name, e.Name())
		if err != nil {
			return nil, err
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// MustSchemaValidator panics if the bundled schemas do not compile
func MustSchemaValidator() SchemaValidator {
	v, err := NewSchemaValidator()
	if err != nil {
		panic(err)
	}
	return v
}

func compile(compiler *jsonschema.Compiler, name, file string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + file)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	url := "mem://schemas/" + file
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return schema, nil
}

// ValidateBytes validates JSON data against a bundled schema
func (v *validator) ValidateBytes(data []byte, schemaName string) error {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateSave checks an import document. Failures wrap domain.ErrInvalidSave.
func (v *validator) ValidateSave(data []byte) error {
	if err := v.ValidateBytes(data, SchemaSave); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidSave, err)
	}
	return nil
}

// formatValidationError formats validation errors to be user-friendly
func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		var msgs []string
		collectErrors(validationErr, &msgs)
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(msgs, "\n"))
	}
	return fmt.Errorf("validation error: %w", err)
}

// collectErrors recursively collects leaf validation errors
func collectErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		*msgs = append(*msgs, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, msgs)
	}
}

// formatError formats a single validation error
func formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")
	if len(err.InstanceLocation) == 0 {
		location = "(root)"
	}

	keywords := ""
	if err.ErrorKind != nil {
		keywords = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	if keywords == "" {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
}
