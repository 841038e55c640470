package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/jonathan/profile-extractor/internal/validation"
)

func TestProfilesSingleEqualsValidate(t *testing.T) {
	p := &types.Profile{
		Personal: types.PersonalInfo{FullName: "Jane Doe", Email: "bad-email"},
		Experience: []types.CandidateRecord{
			{Title: "Software Engineer", Org: "Acme Corporation"},
			{Title: "x", Org: "y"},
		},
		Skills: []string{"Go", "go"},
	}

	merged, err := Profiles([]*types.Profile{p}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, validation.Profile(p), merged)
}

func TestProfilesEmptyInput(t *testing.T) {
	_, err := Profiles(nil, DefaultOptions())
	assert.Error(t, err)

	_, err = Profiles([]*types.Profile{nil, nil}, DefaultOptions())
	assert.Error(t, err)
}

func TestProfilesScalarTrust(t *testing.T) {
	high := &types.Profile{Personal: types.PersonalInfo{FullName: "Jane Doe", Headline: "Engineer"}}
	low := &types.Profile{Personal: types.PersonalInfo{FullName: "Jane Allison Doe", Headline: "Sr"}}

	merged, err := Profiles([]*types.Profile{high, low}, DefaultOptions())
	require.NoError(t, err)
	// Longer name wins even from the lower-trust source; the shorter
	// headline does not displace the higher-trust one.
	assert.Equal(t, "Jane Allison Doe", merged.Personal.FullName)
	assert.Equal(t, "Engineer", merged.Personal.Headline)
}

func TestProfilesLocationPrefersComma(t *testing.T) {
	high := &types.Profile{Personal: types.PersonalInfo{Location: "Austin"}}
	low := &types.Profile{Personal: types.PersonalInfo{Location: "Austin, Texas"}}

	merged, err := Profiles([]*types.Profile{high, low}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Austin, Texas", merged.Personal.Location)
}

func TestProfilesSkillUnionCaseInsensitive(t *testing.T) {
	a := &types.Profile{Skills: []string{"Python", "python"}}
	b := &types.Profile{Skills: []string{"SQL"}}

	merged, err := Profiles([]*types.Profile{a, b}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, merged.Skills)
}

func TestProfilesRecordDedupExactTitle(t *testing.T) {
	a := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Software Engineer", Org: "Acme Corporation", DateRange: "2020 - Present"},
	}}
	b := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "software engineer", Org: "ACME Corporation"},
		{Title: "Product Manager", Org: "Initech Inc"},
	}}

	merged, err := Profiles([]*types.Profile{a, b}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, merged.Experience, 2)
	assert.Equal(t, "2020 - Present", merged.Experience[0].DateRange)
}

func TestProfilesRecordDedupSimilarTitle(t *testing.T) {
	a := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Senior Software Engineer", Org: "Acme Corporation"},
	}}
	b := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Sr. Software Engineer", Org: "Acme Corporation"},
	}}

	merged, err := Profiles([]*types.Profile{a, b}, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, merged.Experience, 1)
}

func TestProfilesDifferentCompaniesNotDeduped(t *testing.T) {
	a := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Software Engineer", Org: "Acme Corporation"},
	}}
	b := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Software Engineer", Org: "Initech Inc"},
	}}

	merged, err := Profiles([]*types.Profile{a, b}, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, merged.Experience, 2)
}

func TestProfilesThresholdTunable(t *testing.T) {
	a := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Platform Engineer", Org: "Acme Corporation"},
	}}
	b := &types.Profile{Experience: []types.CandidateRecord{
		{Title: "Pipeline Engineer", Org: "Acme Corporation"},
	}}

	strict := DefaultOptions()
	strict.TitleSimilarity = 0.99
	merged, err := Profiles([]*types.Profile{a, b}, strict)
	require.NoError(t, err)
	assert.Len(t, merged.Experience, 2)

	loose := DefaultOptions()
	loose.TitleSimilarity = 0.5
	merged, err = Profiles([]*types.Profile{a, b}, loose)
	require.NoError(t, err)
	assert.Len(t, merged.Experience, 1)
}

func TestProfilesDoesNotMutateInputs(t *testing.T) {
	a := &types.Profile{Skills: []string{"Go"}}
	b := &types.Profile{Skills: []string{"Python"}}

	_, err := Profiles([]*types.Profile{a, b}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, a.Skills)
	assert.Equal(t, []string{"Python"}, b.Skills)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "Software Engineer", "Software Engineer", 1.0, 1.0},
		{"case insensitive", "SOFTWARE ENGINEER", "software engineer", 1.0, 1.0},
		{"abbreviated", "Senior Software Engineer", "Sr. Software Engineer", 0.8, 1.0},
		{"unrelated", "Chef", "Quantitative Analyst", 0.0, 0.4},
		{"empty", "", "Engineer", 0.0, 0.0},
		{"both empty", "", "", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}
