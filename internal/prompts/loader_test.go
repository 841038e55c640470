package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		key      string
		wantErr  string
	}{
		{name: "system prompt", filename: "extraction.json", key: "profile-system"},
		{name: "output rules", filename: "extraction.json", key: "output-rules"},
		{name: "missing file", filename: "nonexistent.json", key: "some-key", wantErr: "failed to read prompt file"},
		{name: "missing key", filename: "extraction.json", key: "nonexistent-key", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearCache()

			prompt, err := Get(tt.filename, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_PromptContent(t *testing.T) {
	ClearCache()

	prompt, err := Get("extraction.json", "profile-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "career-profile parser")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.NotEmpty(t, MustGet("extraction.json", "output-rules"))
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "substitutes placeholders",
			template: "Hello {{.Name}}, welcome to {{.Company}}!",
			data:     map[string]string{"Name": "Alice", "Company": "Acme Corp"},
			expected: "Hello Alice, welcome to Acme Corp!",
		},
		{
			name:     "no placeholders",
			template: "No placeholders here",
			data:     map[string]string{"Key": "Value"},
			expected: "No placeholders here",
		},
		{
			name:     "unmatched placeholder stays",
			template: "Hello {{.Name}}",
			data:     map[string]string{},
			expected: "Hello {{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("extraction.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "profile-system")
	assert.Contains(t, keys, "output-rules")
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("extraction.json", "profile-system")
	require.NoError(t, err)
	prompt2, err := Get("extraction.json", "profile-system")
	require.NoError(t, err)
	assert.Equal(t, prompt1, prompt2)
}
