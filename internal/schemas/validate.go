// Package schemas provides JSON Schema validation for persisted documents.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	docschemas "github.com/jonathan/resume-builder/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	documentSchemaOnce sync.Once
	documentSchema     *gojsonschema.Schema
	documentSchemaErr  error
)

func loadDocumentSchema() (*gojsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		documentSchema, documentSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(docschemas.ResumeDocument))
		if documentSchemaErr != nil {
			documentSchemaErr = &SchemaLoadError{
				Path:    "resume_document.schema.json",
				Message: "failed to compile embedded schema",
				Cause:   documentSchemaErr,
			}
		}
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocument validates raw JSON bytes against the embedded resume document schema.
// Malformed JSON is reported as an error from the loader, not as a ValidationError.
func ValidateDocument(data []byte) error {
	schema, err := loadDocumentSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
