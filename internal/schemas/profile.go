package schemas

import (
	"fmt"
	"os"
)

// ProfileSchemaFile is the repo-relative path of the profile document schema.
const ProfileSchemaFile = "schemas/profile.schema.json"

// ValidateProfileJSON validates a marshaled profile document against the
// profile schema. It is the last gate before a profile leaves the system
// over the API or into storage.
func ValidateProfileJSON(data []byte) error {
	schemaPath := ResolveSchemaPath(ProfileSchemaFile)
	if schemaPath == "" {
		return &SchemaLoadError{
			Path:    ProfileSchemaFile,
			Message: "schema file not found",
		}
	}

	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaPath,
			Message: "failed to read schema",
			Cause:   err,
		}
	}

	if err := ValidateJSONString(string(schemaContent), string(data)); err != nil {
		return fmt.Errorf("profile document invalid: %w", err)
	}
	return nil
}
