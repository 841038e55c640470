package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-extractor/internal/types"
)

func TestRecord(t *testing.T) {
	tests := []struct {
		name  string
		input types.CandidateRecord
		ok    bool
	}{
		{"valid record", types.CandidateRecord{Title: "Software Engineer", Org: "Acme Corporation"}, true},
		{"title too short", types.CandidateRecord{Title: "QA", Org: "Acme Corporation"}, false},
		{"org too short", types.CandidateRecord{Title: "Software Engineer", Org: "A"}, false},
		{"title equals org", types.CandidateRecord{Title: "Acme Corporation", Org: "Acme Corporation"}, false},
		{"title equals org case-insensitive", types.CandidateRecord{Title: "ACME Corporation", Org: "Acme Corporation"}, false},
		{"missing title", types.CandidateRecord{Org: "Acme Corporation"}, false},
		{"missing org", types.CandidateRecord{Title: "Software Engineer"}, false},
		{"title over 100 chars", types.CandidateRecord{Title: strings.Repeat("a", 101), Org: "Acme Corporation"}, false},
		{"whitespace-only title", types.CandidateRecord{Title: "   ", Org: "Acme Corporation"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Record(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRecordSynthesizesDescription(t *testing.T) {
	rec, ok := Record(types.CandidateRecord{Title: "Software Engineer", Org: "Acme Corporation"})
	require.True(t, ok)
	assert.Equal(t, "Software Engineer at Acme Corporation", rec.Description)

	rec, ok = Record(types.CandidateRecord{Title: "Software Engineer", Org: "Acme Corporation", Description: "Built things."})
	require.True(t, ok)
	assert.Equal(t, "Built things.", rec.Description)
}

func TestRecordRepairsDoubling(t *testing.T) {
	rec, ok := Record(types.CandidateRecord{Title: "Front Desk Manager", Org: "Embassy SuitesEmbassy Suites"})
	require.True(t, ok)
	assert.Equal(t, "Embassy Suites", rec.Org)
}

func TestProfileDropsInvalidRecords(t *testing.T) {
	draft := &types.Profile{
		Experience: []types.CandidateRecord{
			{Title: "Software Engineer", Org: "Acme Corporation"},
			{Title: "x", Org: "y"},
		},
		Education: []types.CandidateRecord{
			{Title: "BS Computer Science", Org: "State University"},
			{Title: "State University", Org: "State University"},
		},
	}

	p := Profile(draft)
	assert.Len(t, p.Experience, 1)
	assert.Len(t, p.Education, 1)
}

func TestProfileDedupesSkillsCaseInsensitive(t *testing.T) {
	p := Profile(&types.Profile{Skills: []string{"Python", "python", "SQL", " sql ", "Go"}})
	assert.Equal(t, []string{"Python", "SQL", "Go"}, p.Skills)

	seen := map[string]bool{}
	for _, s := range p.Skills {
		key := strings.ToLower(s)
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestProfileDedupesCertifications(t *testing.T) {
	p := Profile(&types.Profile{Certifications: []types.Certification{
		{Name: "AWS Solutions Architect", Issuer: "Amazon"},
		{Name: "aws solutions architect", Issuer: "AWS"},
		{Name: "", Issuer: "Nobody"},
	}})
	require.Len(t, p.Certifications, 1)
	assert.Equal(t, "Amazon", p.Certifications[0].Issuer)
}

func TestProfileClearsMalformedEmail(t *testing.T) {
	p := Profile(&types.Profile{Personal: types.PersonalInfo{Email: "not-an-email"}})
	assert.Empty(t, p.Personal.Email)

	p = Profile(&types.Profile{Personal: types.PersonalInfo{Email: "jane@example.com"}})
	assert.Equal(t, "jane@example.com", p.Personal.Email)
}

func TestProfileTruncatesSummary(t *testing.T) {
	p := Profile(&types.Profile{Summary: strings.Repeat("a", MaxSummaryLength+500)})
	assert.True(t, strings.HasSuffix(p.Summary, TruncationMarker))
	assert.Len(t, []rune(p.Summary), MaxSummaryLength+len([]rune(TruncationMarker)))
}

func TestProfileNilDraft(t *testing.T) {
	p := Profile(nil)
	require.NotNil(t, p)
	assert.True(t, p.IsEmpty())
}

func TestProfileDoesNotAliasDraft(t *testing.T) {
	draft := &types.Profile{
		Experience: []types.CandidateRecord{{Title: "Software Engineer", Org: "Acme Corporation"}},
	}
	p := Profile(draft)
	p.Experience[0].Title = "Changed"
	assert.Equal(t, "Software Engineer", draft.Experience[0].Title)
}
