package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-extractor/internal/schemas"
)

func TestProfileSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestProfileSchema_ValidJSONSchema(t *testing.T) {
	data, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err)

	var schemaObj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schemaObj))

	_, hasType := schemaObj["type"]
	_, hasSchema := schemaObj["$schema"]
	_, hasProps := schemaObj["properties"]
	assert.True(t, hasType && hasSchema && hasProps,
		"schema should declare type, $schema, and properties")

	// Both record lists share one definition.
	defs, ok := schemaObj["definitions"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, defs, "record")
}

func TestProfileSchema_ValidatesDocuments(t *testing.T) {
	schemaData, err := os.ReadFile("profile.schema.json")
	require.NoError(t, err)
	schema := string(schemaData)

	valid := `{
		"personal": {"full_name": "Jane Smith"},
		"experience": [
			{"title": "Senior Software Engineer", "org": "Acme Corp"}
		],
		"education": [
			{"title": "BS Computer Science", "org": "State University", "date_range": "2012 - 2016"}
		],
		"skills": ["Python", "SQL"]
	}`
	assert.NoError(t, schemas.ValidateJSONString(schema, valid))

	missingRequired := `{"personal": {}}`
	err = schemas.ValidateJSONString(schema, missingRequired)
	require.Error(t, err)
	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok, "should be a ValidationError, not a schema load error")
	assert.GreaterOrEqual(t, len(validationErr.Errors), 3)
}
