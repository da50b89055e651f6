// Package schemas validates written usage files against their JSON Schema.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/usage-stats/schemas"
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
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

const usageSchemaName = "usage.schema.json"

var (
	usageOnce   sync.Once
	usageSchema *gojsonschema.Schema
	usageErr    error
)

// compiledUsage compiles the embedded usage schema once per process.
func compiledUsage() (*gojsonschema.Schema, error) {
	usageOnce.Do(func() {
		usageSchema, usageErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemafiles.Usage))
		if usageErr != nil {
			usageErr = &SchemaLoadError{
				Path:    usageSchemaName,
				Message: "embedded schema does not compile",
				Cause:   usageErr,
			}
		}
	})
	return usageSchema, usageErr
}

// ValidateUsageJSON validates a usage document held in memory.
func ValidateUsageJSON(data []byte) error {
	schema, err := compiledUsage()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to load usage document: %w", err)
	}
	return toValidationError(result)
}

// ValidateUsageFile validates a written usage file.
func ValidateUsageFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", absPath)
		}
		return fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	return ValidateUsageJSON(data)
}

// toValidationError returns nil for a valid result and a structured error otherwise.
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
