// Package personal extracts contact and identity fields from captured
// profile text: name, headline, email, phone, location, and profile URLs.
package personal

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
)

// nameScanWindow is how many leading lines are considered for the full name.
// The captured page renders the name at the top; anything further down is a
// section body.
const nameScanWindow = 5

// maxHeadlineLength bounds the headline so a mis-scoped paragraph is never
// ingested as one.
const maxHeadlineLength = 200

var (
	emailRe     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneUSRe   = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	phoneIntlRe = regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{2,4}[-.\s]?\d{2,4}`)
	linkedinRe  = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe    = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	nameRe      = regexp.MustCompile(`^[A-Za-z][A-Za-z\s.'-]{1,49}$`)
	locationRe  = regexp.MustCompile(`\p{Lu}[\p{L}\s.]+,\s*\p{Lu}[\p{L}\s.]*`)
)

// Extract scans cleaned lines for personal fields. Missing fields stay
// empty; nothing here fails.
func Extract(lines []types.TextLine, loc *locale.Table) types.PersonalInfo {
	if loc == nil {
		loc = locale.Default()
	}
	var info types.PersonalInfo

	for _, line := range lines {
		content := line.Content
		lower := strings.ToLower(content)

		if info.Email == "" {
			if m := emailRe.FindString(content); m != "" {
				info.Email = m
				continue
			}
		}
		if info.Phone == "" {
			if m := phoneUSRe.FindString(content); m != "" && !looksLikeDateSpan(content) {
				info.Phone = strings.TrimSpace(m)
				continue
			}
			if m := phoneIntlRe.FindString(content); m != "" {
				info.Phone = strings.TrimSpace(m)
				continue
			}
		}
		if info.LinkedIn == "" {
			if m := linkedinRe.FindString(content); m != "" {
				info.LinkedIn = "https://" + m
				continue
			}
		}
		if info.GitHub == "" {
			if m := githubRe.FindString(content); m != "" {
				info.GitHub = "https://" + m
				continue
			}
		}

		if info.FullName == "" && line.Index < nameScanWindow && isNameLine(content, loc) {
			setName(&info, content)
			continue
		}

		if info.Headline == "" && info.FullName != "" &&
			utf8.RuneCountInString(content) < maxHeadlineLength &&
			containsAny(lower, loc.TitleKeywords) {
			info.Headline = content
			continue
		}

		if info.Location == "" && isLocationLine(content, loc) {
			info.Location = content
		}
	}

	return info
}

// isNameLine accepts short alphabetic lines that carry no role keyword,
// email, or URL. Names on non-Latin pages fall through to the caller's
// structural hints.
func isNameLine(content string, loc *locale.Table) bool {
	if !nameRe.MatchString(content) {
		return false
	}
	lower := strings.ToLower(content)
	if strings.ContainsAny(content, "@/") {
		return false
	}
	if containsAny(lower, loc.TitleKeywords) || containsAny(lower, loc.CompanySuffixes) {
		return false
	}
	// Section headings ("Personal Information") are proper-cased too.
	for _, heading := range loc.SectionHeadings {
		if lower == heading {
			return false
		}
	}
	// Names are two to four capitalized words.
	words := strings.Fields(content)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !unicode.IsUpper([]rune(w)[0]) {
			return false
		}
	}
	return true
}

func setName(info *types.PersonalInfo, content string) {
	name := strings.TrimSpace(content)
	info.FullName = name
	parts := strings.Fields(name)
	if len(parts) > 0 {
		info.FirstName = parts[0]
	}
	if len(parts) > 1 {
		info.LastName = parts[len(parts)-1]
	}
}

// isLocationLine matches "City, Region" shapes while rejecting date spans
// and sentences.
func isLocationLine(content string, loc *locale.Table) bool {
	if !locationRe.MatchString(content) {
		return false
	}
	lower := strings.ToLower(content)
	if containsAny(lower, loc.Months) || containsAny(lower, loc.PresentWords) {
		return false
	}
	if strings.ContainsAny(content, "0123456789") {
		return false
	}
	return len(strings.Fields(content)) <= 6
}

// looksLikeDateSpan guards the US phone pattern against year ranges like
// "2015 - 2019 123" fragments on metadata lines.
func looksLikeDateSpan(content string) bool {
	digits := 0
	for _, r := range content {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits < 10
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
