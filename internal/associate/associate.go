// Package associate pairs classified lines into candidate records using
// proximity: each title takes the nearest unused company line and the
// nearest date-range line within bounded index windows. The same algorithm,
// with school/degree vocabulary substituted, drives education extraction.
package associate

import (
	"strings"

	"github.com/jonathan/profile-extractor/internal/classify"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
)

// Windows bounds the line-index distance allowed when associating two lines
// into one record. The defaults are tuned empirically against captured
// profile pages; callers may override them.
type Windows struct {
	// Company is the maximum distance between a title and its company.
	Company int
	// Date is the maximum distance between a title and its date range.
	Date int
	// Education is the distance bound used for both school and year when
	// pairing education lines.
	Education int
}

// DefaultWindows returns the tuned association windows.
func DefaultWindows() Windows {
	return Windows{Company: 5, Date: 3, Education: 3}
}

// candidate is one classified line entered into an association pool.
type candidate struct {
	content string
	index   int
	used    bool
}

// Experience builds work-experience records from classified lines. Nested
// company groups (one company heading above several stacked roles) are
// expanded first; remaining lines go through pairwise association. A title
// with no company inside the window produces no record.
func Experience(lines []types.ClassifiedLine, w Windows, loc *locale.Table) []types.CandidateRecord {
	if loc == nil {
		loc = locale.Default()
	}
	records, consumed := nestedGroups(lines, w, loc)

	titles, companies, dates := experiencePools(lines, consumed, loc)
	records = append(records, pairwise(titles, companies, dates, w.Company, w.Date)...)
	return records
}

// Education builds education records: degrees pair with the nearest unused
// school, years attach like date ranges. Both lookups use the education
// window.
func Education(lines []types.ClassifiedLine, w Windows, loc *locale.Table) []types.CandidateRecord {
	if loc == nil {
		loc = locale.Default()
	}
	var degrees, schools, years []*candidate
	for _, line := range lines {
		lower := strings.ToLower(line.Content)
		switch {
		case containsAny(lower, loc.SchoolKeywords):
			schools = append(schools, &candidate{content: line.Content, index: line.Index})
		case containsAny(lower, loc.DegreeKeywords):
			degrees = append(degrees, &candidate{content: line.Content, index: line.Index})
		case line.Label == types.LabelDateRange:
			years = append(years, &candidate{content: line.Content, index: line.Index})
		}
	}
	return pairwise(degrees, schools, years, w.Education, w.Education)
}

// experiencePools collects the three ordered association pools, skipping
// lines already consumed by nested-group expansion. Companies recovered from
// metadata lines ("Embassy Suites · Full-time") join the company pool at the
// metadata line's index.
func experiencePools(lines []types.ClassifiedLine, consumed map[int]bool, loc *locale.Table) (titles, companies, dates []*candidate) {
	for _, line := range lines {
		if consumed[line.Index] {
			continue
		}
		switch line.Label {
		case types.LabelTitle:
			titles = append(titles, &candidate{content: line.Content, index: line.Index})
		case types.LabelCompany:
			companies = append(companies, &candidate{content: line.Content, index: line.Index})
		case types.LabelDateRange:
			dates = append(dates, &candidate{content: line.Content, index: line.Index})
		case types.LabelMetadata:
			if name, ok := classify.CompanyFromMetadata(line.Content, loc); ok {
				companies = append(companies, &candidate{content: name, index: line.Index})
			}
		}
	}
	return titles, companies, dates
}

// pairwise runs one association pass. Titles are visited in original order;
// each takes the nearest unused org within orgWindow (consuming it) and the
// nearest date within dateWindow (dates are shared, not consumed). The date
// lookup anchors at the paired org line, since captured pages render the
// date directly under the organization it belongs to. Records whose title
// equals their org are dropped.
func pairwise(titles, orgs, dates []*candidate, orgWindow, dateWindow int) []types.CandidateRecord {
	records := []types.CandidateRecord{}
	for _, title := range titles {
		org := nearest(orgs, title.index, orgWindow, true)
		if org == nil {
			continue
		}
		if strings.EqualFold(title.content, org.content) {
			continue
		}
		rec := types.CandidateRecord{Title: title.content, Org: org.content}
		if date := nearest(dates, org.index, dateWindow, false); date != nil {
			rec.DateRange = date.content
		}
		records = append(records, rec)
	}
	return records
}

// nearest returns the pool entry with minimal index distance from pivot
// within the window, or nil. When consume is true the entry is marked used
// and skipped by later callers. Ties go to the later line, which on captured
// pages is the entry sitting directly under its title.
func nearest(pool []*candidate, pivot, window int, consume bool) *candidate {
	var best *candidate
	bestDist := window + 1
	for _, c := range pool {
		if c.used && consume {
			continue
		}
		dist := c.index - pivot
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist || (dist == bestDist && best != nil && c.index > best.index) {
			best = c
			bestDist = dist
		}
	}
	if best != nil && consume {
		best.used = true
	}
	return best
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
