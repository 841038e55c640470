// Package merge reconciles profiles produced by independent extraction
// strategies into one authoritative profile, using field-quality heuristics
// for scalars and similarity-based deduplication for record lists.
package merge

import (
	"fmt"
	"strings"

	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/jonathan/profile-extractor/internal/validation"
)

// Options holds the tunable reconciliation constants. The defaults are the
// empirically tuned values; none of them is asserted optimal.
type Options struct {
	// TitleSimilarity is the normalized character-overlap ratio above which
	// two titles at the same company count as the same record.
	TitleSimilarity float64
	// NameCap and HeadlineCap bound the "prefer the longer value" rule so a
	// mis-scoped paragraph never wins a scalar field.
	NameCap     int
	HeadlineCap int
}

// DefaultOptions returns the tuned reconciliation options.
func DefaultOptions() Options {
	return Options{TitleSimilarity: 0.8, NameCap: 100, HeadlineCap: 220}
}

// withDefaults fills unset fields so callers may override a single constant
// without restating the rest.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TitleSimilarity == 0 {
		o.TitleSimilarity = d.TitleSimilarity
	}
	if o.NameCap == 0 {
		o.NameCap = d.NameCap
	}
	if o.HeadlineCap == 0 {
		o.HeadlineCap = d.HeadlineCap
	}
	return o
}

// Profiles combines candidate profiles ordered by descending trust: the
// first entry is the most trusted strategy's output. Nil entries are
// skipped. The result has passed full validation, so merging a single
// profile is identical to validating it.
//
// An error here is a caller bug (no profiles at all), not a runtime state.
func Profiles(profiles []*types.Profile, opts Options) (*types.Profile, error) {
	opts = opts.withDefaults()
	ordered := make([]*types.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p != nil {
			ordered = append(ordered, p)
		}
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("merge: no profiles supplied")
	}

	out := ordered[0].Clone()
	for _, lower := range ordered[1:] {
		mergeInto(out, lower, opts)
	}
	return validation.Profile(out), nil
}

// mergeInto folds a lower-trust profile into the accumulator.
func mergeInto(acc *types.Profile, lower *types.Profile, opts Options) {
	mergePersonal(&acc.Personal, &lower.Personal, opts)

	if better(acc.Summary, lower.Summary, preferNonEmpty) {
		acc.Summary = lower.Summary
	}

	acc.Experience = unionRecords(acc.Experience, lower.Experience, opts)
	acc.Education = unionRecords(acc.Education, lower.Education, opts)
	acc.Skills = unionStrings(acc.Skills, lower.Skills)
	acc.Certifications = unionCertifications(acc.Certifications, lower.Certifications)
}

func mergePersonal(acc, lower *types.PersonalInfo, opts Options) {
	if preferLongerCapped(acc.FullName, lower.FullName, opts.NameCap) {
		acc.FullName = lower.FullName
		acc.FirstName = lower.FirstName
		acc.LastName = lower.LastName
	}
	if preferLongerCapped(acc.Headline, lower.Headline, opts.HeadlineCap) {
		acc.Headline = lower.Headline
	}
	if preferLocation(acc.Location, lower.Location) {
		acc.Location = lower.Location
	}
	if acc.Email == "" {
		acc.Email = lower.Email
	}
	if acc.Phone == "" {
		acc.Phone = lower.Phone
	}
	if acc.LinkedIn == "" {
		acc.LinkedIn = lower.LinkedIn
	}
	if acc.GitHub == "" {
		acc.GitHub = lower.GitHub
	}
}

// better reports whether the candidate should replace the current value
// under the given rule.
func better(current, candidate string, rule func(current, candidate string) bool) bool {
	if candidate == "" {
		return false
	}
	return rule(current, candidate)
}

func preferNonEmpty(current, _ string) bool {
	return current == ""
}

// preferLongerCapped takes the lower-trust value when it is strictly longer
// and still under the cap.
func preferLongerCapped(current, candidate string, limit int) bool {
	if candidate == "" || len(candidate) > limit {
		return false
	}
	return current == "" || len(candidate) > len(current)
}

// preferLocation takes a lower-trust location when the current one lacks a
// comma and the candidate has one: "Austin, Texas" beats "Austin".
func preferLocation(current, candidate string) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}
	return !strings.Contains(current, ",") && strings.Contains(candidate, ",")
}

// unionRecords appends lower-trust records that do not duplicate an existing
// one. Two records are duplicates when their orgs match and their titles
// either match exactly or exceed the similarity threshold.
func unionRecords(acc, lower []types.CandidateRecord, opts Options) []types.CandidateRecord {
	out := acc
	for _, cand := range lower {
		if !containsRecord(out, cand, opts) {
			out = append(out, cand)
		}
	}
	return out
}

func containsRecord(records []types.CandidateRecord, cand types.CandidateRecord, opts Options) bool {
	for _, rec := range records {
		if !strings.EqualFold(rec.Org, cand.Org) {
			continue
		}
		if strings.EqualFold(rec.Title, cand.Title) {
			return true
		}
		if Similarity(rec.Title, cand.Title) >= opts.TitleSimilarity {
			return true
		}
	}
	return false
}

func unionStrings(acc, lower []string) []string {
	seen := make(map[string]bool, len(acc))
	for _, s := range acc {
		seen[strings.ToLower(s)] = true
	}
	out := acc
	for _, s := range lower {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func unionCertifications(acc, lower []types.Certification) []types.Certification {
	seen := make(map[string]bool, len(acc))
	for _, c := range acc {
		seen[strings.ToLower(c.Name)] = true
	}
	out := acc
	for _, c := range lower {
		key := strings.ToLower(c.Name)
		if c.Name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
