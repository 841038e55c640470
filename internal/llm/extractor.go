// Package llm - extractor.go provides LLM-based structured profile extraction.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/profile-extractor/internal/prompts"
	"github.com/jonathan/profile-extractor/internal/types"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "Profile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "[]object"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString(prompts.MustGet("extraction.json", "output-rules"))
	sb.WriteString("\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ProfileSchema returns the extraction schema for captured career-profile pages.
func ProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "Profile",
		Description: prompts.MustGet("extraction.json", "profile-system"),
		Fields: []SchemaField{
			{
				Name:        "full_name",
				Type:        "\"string\"",
				Description: "The person's full name",
			},
			{
				Name:        "headline",
				Type:        "\"string\"",
				Description: "Professional headline shown under the name",
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "City/region, e.g. \"Austin, Texas\"",
			},
			{
				Name:        "email",
				Type:        "\"string\"",
				Description: "Email address if present in the text",
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "The About/summary section, copied verbatim",
			},
			{
				Name:        "experience",
				Type:        "[{\"title\", \"org\", \"date_range\", \"location\", \"description\"}]",
				Description: "One object per role; org is the employer, copy all fields verbatim",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        "[{\"title\", \"org\", \"date_range\"}]",
				Description: "One object per school; title is the degree, org is the institution",
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "Individual skill names, one per entry",
			},
		},
	}
}

// extractedProfile is the wire shape the model is asked to return.
type extractedProfile struct {
	FullName   string                  `json:"full_name"`
	Headline   string                  `json:"headline"`
	Location   string                  `json:"location"`
	Email      string                  `json:"email"`
	Summary    string                  `json:"summary"`
	Experience []types.CandidateRecord `json:"experience"`
	Education  []types.CandidateRecord `json:"education"`
	Skills     []string                `json:"skills"`
}

// ExtractProfile asks the model to parse raw captured text into a profile.
// When draft is non-nil it is sent along as context so the model corrects and
// completes the heuristic result instead of starting from nothing. The
// returned profile is unvalidated; callers are expected to sanitize it.
func ExtractProfile(ctx context.Context, client Client, rawText string, draft *types.Profile) (*types.Profile, error) {
	input := rawText
	if draft != nil && !draft.IsEmpty() {
		if draftJSON, err := json.Marshal(draft); err == nil {
			input = fmt.Sprintf("%s\n\n%s\n%s",
				rawText, prompts.MustGet("extraction.json", "draft-context"), string(draftJSON))
		}
	}

	prompt := BuildExtractionPrompt(ProfileSchema(), input)

	raw, err := client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("profile extraction failed: %w", err)
	}

	var ext extractedProfile
	if err := json.Unmarshal([]byte(CleanJSONBlock(raw)), &ext); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	return ext.toProfile(), nil
}

func (e *extractedProfile) toProfile() *types.Profile {
	p := types.NewProfile()
	p.Personal.FullName = strings.TrimSpace(e.FullName)
	if parts := strings.Fields(p.Personal.FullName); len(parts) > 1 {
		p.Personal.FirstName = parts[0]
		p.Personal.LastName = strings.Join(parts[1:], " ")
	}
	p.Personal.Headline = strings.TrimSpace(e.Headline)
	p.Personal.Location = strings.TrimSpace(e.Location)
	p.Personal.Email = strings.TrimSpace(e.Email)
	p.Summary = strings.TrimSpace(e.Summary)
	p.Experience = append(p.Experience, e.Experience...)
	p.Education = append(p.Education, e.Education...)
	for _, s := range e.Skills {
		if s = strings.TrimSpace(s); s != "" {
			p.Skills = append(p.Skills, s)
		}
	}
	return p
}
