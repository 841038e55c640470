// Package validation enforces field presence, length, and uniqueness rules
// on extracted profiles. Invalid sub-records are dropped, never fatal: a
// profile always comes back usable, possibly with empty collections.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/profile-extractor/internal/repair"
	"github.com/jonathan/profile-extractor/internal/types"
)

// MaxSummaryLength caps the free-text summary; anything longer is a capture
// artifact that swallowed the whole page.
const MaxSummaryLength = 10000

// TruncationMarker is appended when a summary is cut at MaxSummaryLength.
const TruncationMarker = " […]"

// validate is shared; Struct() is safe for concurrent use.
var validate = validator.New()

// recordBounds mirrors the record field rules as validator tags so the
// bounds live in one declarative place.
type recordBounds struct {
	Title string `validate:"required,min=3,max=100"`
	Org   string `validate:"required,min=2,max=100"`
}

// Record sanitizes a single candidate record. The second return is false
// when the record fails validation and must be dropped.
func Record(rec types.CandidateRecord) (types.CandidateRecord, bool) {
	rec.Title = repair.Doubling(strings.TrimSpace(rec.Title))
	rec.Org = repair.Doubling(strings.TrimSpace(rec.Org))
	rec.DateRange = strings.TrimSpace(rec.DateRange)
	rec.Location = strings.TrimSpace(rec.Location)
	rec.Description = strings.TrimSpace(rec.Description)

	if err := validate.Struct(recordBounds{Title: rec.Title, Org: rec.Org}); err != nil {
		return types.CandidateRecord{}, false
	}
	if strings.EqualFold(rec.Title, rec.Org) {
		return types.CandidateRecord{}, false
	}
	if rec.Description == "" {
		rec.Description = fmt.Sprintf("%s at %s", rec.Title, rec.Org)
	}
	return rec, true
}

// Profile validates and sanitizes a draft profile. It never fails; invalid
// experience and education entries are dropped, list fields are deduplicated
// case-insensitively, and malformed contact fields are cleared. The result
// is a deep copy of the draft.
func Profile(draft *types.Profile) *types.Profile {
	if draft == nil {
		return types.NewProfile()
	}
	p := draft.Clone()

	p.Experience = sanitizeRecords(p.Experience)
	p.Education = sanitizeRecords(p.Education)
	p.Skills = dedupeStrings(p.Skills)
	p.Certifications = dedupeCertifications(p.Certifications)

	if p.Personal.Email != "" && !validEmail(p.Personal.Email) {
		p.Personal.Email = ""
	}
	if utf8.RuneCountInString(p.Summary) > MaxSummaryLength {
		p.Summary = string([]rune(p.Summary)[:MaxSummaryLength]) + TruncationMarker
	}
	return p
}

func sanitizeRecords(records []types.CandidateRecord) []types.CandidateRecord {
	out := []types.CandidateRecord{}
	seen := map[string]bool{}
	for _, rec := range records {
		clean, ok := Record(rec)
		if !ok {
			continue
		}
		key := strings.ToLower(clean.Title) + "\x00" + strings.ToLower(clean.Org)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, clean)
	}
	return out
}

func dedupeStrings(values []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func dedupeCertifications(certs []types.Certification) []types.Certification {
	out := []types.Certification{}
	seen := map[string]bool{}
	for _, c := range certs {
		c.Name = strings.TrimSpace(c.Name)
		c.Issuer = strings.TrimSpace(c.Issuer)
		if c.Name == "" {
			continue
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// validEmail applies the minimal shape check the wire contract requires: an
// "@" and a dot somewhere after it.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
