// Package skills extracts skill names from captured profile text, combining
// a skills-section scan with a known-technology table.
package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
)

// MaxSkills caps the extracted list; beyond this the tail is noise from
// overly aggressive list splitting.
const MaxSkills = 20

// Skill-token length bounds when splitting list lines.
const (
	minTokenLength = 2
	maxTokenLength = 30
)

// knownTechnologies is scanned against the whole text regardless of
// sections, catching skills mentioned inline in experience bullets. Casing
// here is the canonical output casing.
var knownTechnologies = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "PHP",
	"Ruby", "Go", "Rust", "Swift", "Kotlin",
	"React", "Vue", "Angular", "Node.js", "Express", "Django", "Flask", "Rails",
	"HTML", "CSS", "Sass", "Bootstrap", "Tailwind",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Jenkins",
	"Git", "Linux", "Bash",
	"Machine Learning", "Data Science", "Tableau",
}

// listSplitRe splits skills-section lines on the separators capture uses
// between list items.
var listSplitRe = regexp.MustCompile(`[,،;•·|/]|\s-\s`)

// Extract returns skills found in the cleaned lines: entries from an
// explicit skills section first, then known technologies mentioned anywhere.
// The result is deduplicated case-insensitively with first-seen casing kept.
func Extract(lines []types.TextLine, loc *locale.Table) []string {
	if loc == nil {
		loc = locale.Default()
	}

	found := []string{}
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		key := strings.ToLower(s)
		if seen[key] || len(found) >= MaxSkills {
			return
		}
		seen[key] = true
		found = append(found, s)
	}

	for _, content := range sectionLines(lines, loc) {
		for _, token := range listSplitRe.Split(content, -1) {
			token = strings.TrimSpace(token)
			n := utf8.RuneCountInString(token)
			if n > minTokenLength && n < maxTokenLength {
				add(token)
			}
		}
	}

	var all strings.Builder
	for _, line := range lines {
		all.WriteString(line.Content)
		all.WriteString("\n")
	}
	lowerAll := strings.ToLower(all.String())
	for _, tech := range knownTechnologies {
		if containsTechToken(lowerAll, strings.ToLower(tech)) {
			add(tech)
		}
	}

	return found
}

// sectionLines returns the lines between a "Skills" heading and the next
// section heading.
func sectionLines(lines []types.TextLine, loc *locale.Table) []string {
	inSection := false
	var out []string
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line.Content))
		if isSkillsHeading(lower, loc) {
			inSection = true
			continue
		}
		if inSection && isSectionHeading(lower, loc) {
			break
		}
		if inSection {
			out = append(out, line.Content)
		}
	}
	return out
}

func isSkillsHeading(lower string, loc *locale.Table) bool {
	return lower == "skills" || lower == "スキル" || strings.HasPrefix(lower, "skills &")
}

func isSectionHeading(lower string, loc *locale.Table) bool {
	for _, heading := range loc.SectionHeadings {
		if lower == heading {
			return true
		}
	}
	return false
}

// containsTechToken matches a technology name on word boundaries so "go"
// does not fire inside "google" or "ago". Names with non-word characters
// ("c++", "node.js") match as plain substrings.
func containsTechToken(text, tech string) bool {
	if strings.ContainsAny(tech, "+.#") {
		return strings.Contains(text, tech)
	}
	idx := 0
	for {
		pos := strings.Index(text[idx:], tech)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(tech)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end >= len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
