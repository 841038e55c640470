// Package normalize cleans noisy captured page text into an ordered sequence
// of candidate lines ready for classification.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/repair"
	"github.com/jonathan/profile-extractor/internal/types"
)

// Line-length bounds for a line to survive normalization. Anything shorter is
// a stray glyph or icon label; anything longer is a paragraph the associator
// cannot use.
const (
	MinLineLength = 3
	MaxLineLength = 150
)

// standaloneNumberRe matches lines that are only a number, optionally with
// separators — pagination controls and counters.
var standaloneNumberRe = regexp.MustCompile(`^[\d,.\s+]+$`)

// counterRe strips a leading count from lines like "500+ connections" so the
// remainder can be compared against single-word noise entries.
var counterRe = regexp.MustCompile(`^[\d,.+]+\s*`)

// Lines splits a raw text blob into cleaned TextLines. It trims whitespace,
// repairs capture doubling, drops lines outside the length bounds, and drops
// lines matching the locale noise list. Pure function: no side effects, and
// identical input always yields identical output.
func Lines(raw string, loc *locale.Table) []types.TextLine {
	if loc == nil {
		loc = locale.Default()
	}
	if strings.TrimSpace(raw) == "" {
		return []types.TextLine{}
	}

	split := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	out := make([]types.TextLine, 0, len(split))
	for _, line := range split {
		line = repair.Doubling(strings.TrimSpace(line))
		if !keep(line, loc) {
			continue
		}
		out = append(out, types.TextLine{Content: line, Index: len(out)})
	}
	return out
}

// FromLines normalizes pre-segmented lines supplied by the capture
// collaborator, applying the same filters as Lines.
func FromLines(lines []string, loc *locale.Table) []types.TextLine {
	return Lines(strings.Join(lines, "\n"), loc)
}

func keep(line string, loc *locale.Table) bool {
	n := utf8.RuneCountInString(line)
	if n < MinLineLength || n > MaxLineLength {
		return false
	}
	if standaloneNumberRe.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	// Counter lines like "500+ connections" or "1,024 followers".
	counter := counterRe.ReplaceAllString(lower, "")
	for _, phrase := range loc.NoisePhrases {
		// Multi-word entries match as substrings; single-word entries
		// ("follow", "message") only match whole lines, otherwise they would
		// drop legitimate content like "Following up with enterprise clients".
		if strings.Contains(phrase, " ") {
			if strings.Contains(lower, phrase) {
				return false
			}
		} else if lower == phrase || counter == phrase {
			return false
		}
	}
	return true
}
