// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// suggestionRequestSchema guards the activity-suggestion payload before it
// reaches the pipeline: coordinates required and numeric, bounded
// max_activities, preference flags boolean.
const suggestionRequestSchema = `{
	"type": "object",
	"properties": {
		"latitude": {"type": "number", "minimum": -90, "maximum": 90},
		"longitude": {"type": "number", "minimum": -180, "maximum": 180},
		"max_activities": {"type": "integer", "minimum": 1, "maximum": 10},
		"activities": {
			"type": "object",
			"additionalProperties": {"type": "boolean"}
		}
	},
	"required": ["latitude", "longitude"]
}`

var suggestionSchema = gojsonschema.NewStringLoader(suggestionRequestSchema)

// ValidateSuggestionRequest validates the raw JSON body of an
// activity-suggestion request. A non-nil return describes the first group of
// violations in one message.
func ValidateSuggestionRequest(body []byte) error {
	result, err := gojsonschema.Validate(suggestionSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		msgs = append(msgs, resErr.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
