// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSuggestionRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"minimal valid", `{"latitude": 40.7, "longitude": -74.0}`, false},
		{
			"full valid",
			`{"latitude": 40.7, "longitude": -74.0, "max_activities": 5, "activities": {"outdoorAdventure": true}}`,
			false,
		},
		{"missing latitude", `{"longitude": -74.0}`, true},
		{"missing longitude", `{"latitude": 40.7}`, true},
		{"latitude out of range", `{"latitude": 91, "longitude": 0}`, true},
		{"longitude out of range", `{"latitude": 0, "longitude": -181}`, true},
		{"latitude wrong type", `{"latitude": "40.7", "longitude": -74.0}`, true},
		{"max_activities zero", `{"latitude": 0, "longitude": 0, "max_activities": 0}`, true},
		{"max_activities too large", `{"latitude": 0, "longitude": 0, "max_activities": 11}`, true},
		{"max_activities fractional", `{"latitude": 0, "longitude": 0, "max_activities": 2.5}`, true},
		{"non-boolean preference", `{"latitude": 0, "longitude": 0, "activities": {"outdoorAdventure": "yes"}}`, true},
		{"not json", `latitude=40.7`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSuggestionRequest([]byte(tc.body))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
