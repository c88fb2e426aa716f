package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = []byte(`{
	"type": "object",
	"required": ["careerId"],
	"properties": {
		"careerId": {"type": "string", "minLength": 1},
		"limit": {"type": "integer", "minimum": 1, "maximum": 50},
		"budget": {"type": "string", "enum": ["low", "medium", "high"]}
	}
}`)

func TestSchema_ValidateBytes(t *testing.T) {
	s := MustCompile(testSchema)

	tests := []struct {
		name  string
		doc   string
		valid bool
		code  string
	}{
		{"valid", `{"careerId": "nursing", "limit": 5}`, true, ""},
		{"missing required", `{"limit": 5}`, false, "REQUIRED_FIELD_MISSING"},
		{"wrong type", `{"careerId": 7}`, false, "INVALID_TYPE"},
		{"bad enum", `{"careerId": "x", "budget": "huge"}`, false, "INVALID_ENUM_VALUE"},
		{"above maximum", `{"careerId": "x", "limit": 99}`, false, "MAXIMUM_VIOLATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.ValidateBytes([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.code, result.Errors[0].Code)
				assert.NotEmpty(t, result.Error())
			}
		})
	}
}

func TestValidateInput_EmptySchemaAcceptsAnything(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"anything": true}, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCompile_RejectsBrokenSchema(t *testing.T) {
	_, err := Compile([]byte(`{"type": 12}`))
	assert.Error(t, err)
}
