// internal/common/validation/schema.go

// Package validation validates inbound request bodies against JSON schemas.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const chatRequestSchema = `{
	"type": "object",
	"properties": {
		"question": {
			"type": "string",
			"minLength": 1
		}
	},
	"required": ["question"]
}`

var chatRequestLoader = gojsonschema.NewStringLoader(chatRequestSchema)

// ValidateChatRequest checks the decoded chat request body against the
// request schema. Whitespace-only strings satisfy minLength and are
// rejected separately by the handler's trim check.
func ValidateChatRequest(body map[string]interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(chatRequestLoader, gojsonschema.NewGoLoader(body))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return &ValidationResult{Valid: false, Errors: errs}, nil
}
