// Package classify labels cleaned text lines as title, company, date-range,
// or metadata candidates using an ordered heuristic rule set.
//
// Rules apply in a fixed priority order — date-range, metadata, title,
// company — so the cheap high-precision filters claim a line before the
// ambiguous title/company pair is consulted. Classification is a
// deterministic function of line content and the locale table.
package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
)

var (
	yearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	durationRe = regexp.MustCompile(`(?i)\b\d+\s*(?:yrs?|mos?|years?|months?)\b|\d+\s*(?:年|ヶ月|か月)`)
	// hyphenRangeRe matches "X - Y" spans; combined with a digit check it
	// covers ranges like "2018 - 2020" written with unusual year tokens.
	hyphenRangeRe = regexp.MustCompile(`\S\s*[-–—~〜]\s*\S`)
	digitRe       = regexp.MustCompile(`\d`)
)

// bulletSeparators are the separators capture inserts between metadata
// fragments ("Acme Corp · Full-time").
const bulletSeparators = "·•"

// Classify labels each line. Input order is preserved and the input slice is
// never mutated.
func Classify(lines []types.TextLine, loc *locale.Table) []types.ClassifiedLine {
	if loc == nil {
		loc = locale.Default()
	}
	out := make([]types.ClassifiedLine, len(lines))
	for i, line := range lines {
		out[i] = types.ClassifiedLine{TextLine: line, Label: Label(line.Content, loc)}
	}
	return out
}

// Label classifies a single line's content.
func Label(content string, loc *locale.Table) types.LineLabel {
	switch {
	case IsDateRange(content, loc):
		return types.LabelDateRange
	case IsMetadata(content, loc):
		return types.LabelMetadata
	case IsTitle(content, loc):
		return types.LabelTitle
	case IsCompany(content, loc):
		return types.LabelCompany
	default:
		return types.LabelUnclassified
	}
}

// IsDateRange reports whether the line looks like a date or date span: a
// month token, a four-digit year, an open-ended marker ("Present"), a
// duration ("3 yrs 2 mos"), or a hyphenated range containing digits.
func IsDateRange(content string, loc *locale.Table) bool {
	lower := strings.ToLower(content)
	if containsToken(lower, loc.Months) {
		return true
	}
	if yearRe.MatchString(content) {
		return true
	}
	if containsAny(lower, loc.PresentWords) {
		return true
	}
	if durationRe.MatchString(content) {
		return true
	}
	return hyphenRangeRe.MatchString(content) && digitRe.MatchString(content)
}

// IsMetadata reports whether the line is section furniture: an employment
// type, a bullet-separated fragment, a section heading, or boilerplate.
// Metadata lines never become titles or companies directly, but may still
// carry an embedded company name (see CompanyFromMetadata).
func IsMetadata(content string, loc *locale.Table) bool {
	lower := strings.ToLower(content)
	if containsAny(lower, loc.EmploymentTypes) {
		return true
	}
	if strings.ContainsAny(content, bulletSeparators) {
		return true
	}
	for _, heading := range loc.SectionHeadings {
		if lower == heading {
			return true
		}
	}
	return containsAny(lower, []string{"endorsed", "show more"})
}

// IsTitle reports whether the line names a role: it must contain a title
// keyword and must not carry a company suffix, so "Hotel Manager at Hilton
// Hotels Corporation" stays out of the title pool.
func IsTitle(content string, loc *locale.Table) bool {
	lower := strings.ToLower(content)
	return containsAny(lower, loc.TitleKeywords) && !hasCompanySuffix(lower, loc)
}

// IsCompany reports whether the line names an organization: either it
// carries an explicit company suffix, or it is proper-cased multi-word text
// that fails the title test.
func IsCompany(content string, loc *locale.Table) bool {
	lower := strings.ToLower(content)
	if hasCompanySuffix(lower, loc) {
		return true
	}
	return isProperCasedMultiWord(content) && !containsAny(lower, loc.TitleKeywords)
}

// CompanyFromMetadata mines a company name out of a metadata line shaped
// like "Company · EmploymentType". The left side must itself survive a
// company plausibility check; otherwise nothing is returned.
func CompanyFromMetadata(content string, loc *locale.Table) (string, bool) {
	idx := strings.IndexAny(content, bulletSeparators)
	if idx < 0 {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(content[idx:])
	left := strings.TrimSpace(content[:idx])
	right := strings.ToLower(strings.TrimSpace(content[idx+size:]))
	if utf8.RuneCountInString(left) < 2 || !containsAny(right, loc.EmploymentTypes) {
		return "", false
	}
	if IsDateRange(left, loc) || IsTitle(left, loc) {
		return "", false
	}
	return left, true
}

func hasCompanySuffix(lower string, loc *locale.Table) bool {
	return containsToken(lower, loc.CompanySuffixes)
}

// containsToken matches any keyword as a whole word, so "inc" does not fire
// inside "principal". Non-ASCII keywords (Japanese) match as substrings
// because the text has no word boundaries.
func containsToken(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if !isASCIIWord(kw) {
			if strings.Contains(lower, kw) {
				return true
			}
			continue
		}
		idx := 0
		for {
			pos := strings.Index(lower[idx:], kw)
			if pos < 0 {
				break
			}
			start := idx + pos
			end := start + len(kw)
			beforeOK := start == 0 || !isWordChar(rune(lower[start-1]))
			afterOK := end >= len(lower) || !isWordChar(rune(lower[end]))
			if beforeOK && afterOK {
				return true
			}
			idx = end
		}
	}
	return false
}

// containsAny matches keywords as plain substrings; used for multi-word
// phrases and employment types where boundary checks add nothing.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isProperCasedMultiWord reports whether the text is two or more words each
// starting with an uppercase letter ("Embassy Suites", "Goldman Sachs").
func isProperCasedMultiWord(content string) bool {
	words := strings.Fields(content)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return false
		}
	}
	return true
}
