package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/normalize"
)

func extract(raw string) []string {
	loc := locale.English()
	return Extract(normalize.Lines(raw, loc), loc)
}

func TestExtractFromSkillsSection(t *testing.T) {
	raw := "Skills\nGo · Distributed Systems · PostgreSQL\nTeam Leadership, Mentoring"
	got := extract(raw)

	assert.Contains(t, got, "Distributed Systems")
	assert.Contains(t, got, "Team Leadership")
	assert.Contains(t, got, "Mentoring")
	assert.Contains(t, got, "PostgreSQL")
}

func TestExtractStopsAtNextSection(t *testing.T) {
	raw := "Skills\nKubernetes\nExperience\nManaged a large retail storefront"
	got := extract(raw)

	assert.Contains(t, got, "Kubernetes")
	assert.NotContains(t, got, "Managed a large retail storefront")
}

func TestExtractKnownTechnologiesAnywhere(t *testing.T) {
	raw := "Built data pipelines in Python and deployed them with Docker on AWS"
	got := extract(raw)

	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "Docker")
	assert.Contains(t, got, "AWS")
}

func TestExtractWordBoundaries(t *testing.T) {
	got := extract("Worked at Google on category pages years ago")
	assert.NotContains(t, got, "Go")
}

func TestExtractCaseInsensitiveDedup(t *testing.T) {
	raw := "Skills\npython, SQL\nAutomated reporting with Python and sql"
	got := extract(raw)

	lower := map[string]int{}
	for _, s := range got {
		lower[strings.ToLower(s)]++
	}
	for skill, count := range lower {
		assert.Equal(t, 1, count, "duplicate skill %q", skill)
	}
	// First-seen casing wins.
	assert.Contains(t, got, "python")
	assert.NotContains(t, got, "Python")
}

func TestExtractCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Skills\n")
	for i := 0; i < 30; i++ {
		sb.WriteString("Skill Entry Number ")
		sb.WriteString(strings.Repeat("A", i+1))
		sb.WriteString("\n")
	}
	got := extract(sb.String())
	assert.LessOrEqual(t, len(got), MaxSkills)
}

func TestExtractEmpty(t *testing.T) {
	assert.Empty(t, extract(""))
}
