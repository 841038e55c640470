package strategy

import (
	"strings"

	"github.com/jonathan/profile-extractor/internal/associate"
	"github.com/jonathan/profile-extractor/internal/classify"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/normalize"
	"github.com/jonathan/profile-extractor/internal/personal"
	"github.com/jonathan/profile-extractor/internal/skills"
	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/jonathan/profile-extractor/internal/validation"
)

// heuristicProfile runs the full text pipeline over one capture: normalize,
// classify, associate, then sanitize. Both the text fallback and the
// enhancement draft are built this way.
func heuristicProfile(text string, loc *locale.Table, w associate.Windows) *types.Profile {
	lines := normalize.Lines(text, loc)
	classified := classify.Classify(lines, loc)

	p := types.NewProfile()
	p.Personal = personal.Extract(lines, loc)
	p.Summary = summarySection(lines, loc)
	p.Experience = associate.Experience(classified, w, loc)
	p.Education = associate.Education(classified, w, loc)
	p.Skills = skills.Extract(lines, loc)

	return validation.Profile(p)
}

// summarySection collects the lines between an About/Summary heading and the
// next section heading, joined verbatim.
func summarySection(lines []types.TextLine, loc *locale.Table) string {
	var out []string
	inSection := false
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line.Content))
		if isHeading(lower, loc) {
			if inSection {
				break
			}
			inSection = lower == "about" || lower == "summary" || lower == "概要"
			continue
		}
		if inSection {
			out = append(out, line.Content)
		}
	}
	return strings.Join(out, "\n")
}

func isHeading(lower string, loc *locale.Table) bool {
	for _, h := range loc.SectionHeadings {
		if lower == h {
			return true
		}
	}
	return false
}
