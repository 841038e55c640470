package associate

import (
	"github.com/jonathan/profile-extractor/internal/classify"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
)

// maxGroupHeaderSpan is how many lines at the top of a group may hold the
// shared company heading.
const maxGroupHeaderSpan = 3

// minGroupTitles is the minimum stacked roles under one company heading for
// the nested layout to apply; a single role is plain pairwise material.
const minGroupTitles = 2

// nestedGroups detects the stacked-role layout: one company heading followed
// by two or more titles before the next company-like line, as rendered when
// someone held several positions at the same employer. Each title becomes a
// record sharing the group's company, with its own nearest date scoped to
// the group. Returns the records and the set of consumed line indices; when
// the pattern is absent both are empty and the caller falls through to
// pairwise association.
func nestedGroups(lines []types.ClassifiedLine, w Windows, loc *locale.Table) ([]types.CandidateRecord, map[int]bool) {
	records := []types.CandidateRecord{}
	consumed := map[int]bool{}

	for i := 0; i < len(lines); i++ {
		company, headerEnd := groupHeader(lines, i, loc)
		if company == "" {
			continue
		}

		// Collect titles and dates until the next company-like line.
		var titles, dates []*candidate
		end := headerEnd
		for j := headerEnd; j < len(lines); j++ {
			line := lines[j]
			if isCompanyLike(line, loc) {
				break
			}
			// A title sitting directly above a company line is a plain
			// title/company entry for the next employer, not another stacked
			// role of this group.
			if line.Label == types.LabelTitle && j+1 < len(lines) && isCompanyLike(lines[j+1], loc) {
				break
			}
			switch line.Label {
			case types.LabelTitle:
				titles = append(titles, &candidate{content: line.Content, index: line.Index})
			case types.LabelDateRange:
				dates = append(dates, &candidate{content: line.Content, index: line.Index})
			}
			end = j + 1
		}

		if len(titles) < minGroupTitles {
			continue
		}

		for _, title := range titles {
			rec := types.CandidateRecord{Title: title.content, Org: company}
			if date := nearest(dates, title.index, w.Date, false); date != nil {
				rec.DateRange = date.content
			}
			records = append(records, rec)
		}
		for j := i; j < end; j++ {
			consumed[lines[j].Index] = true
		}
		i = end - 1
	}

	return records, consumed
}

// groupHeader looks for a company inside the first maxGroupHeaderSpan lines
// starting at start. Returns the company name and the index just past the
// header line, or "" when the window holds no company. Title lines abort the
// search: a title above the company means the plain per-role layout.
func groupHeader(lines []types.ClassifiedLine, start int, loc *locale.Table) (string, int) {
	for i := start; i < len(lines) && i < start+maxGroupHeaderSpan; i++ {
		line := lines[i]
		if line.Label == types.LabelTitle {
			return "", 0
		}
		if line.Label == types.LabelCompany {
			return line.Content, i + 1
		}
		if line.Label == types.LabelMetadata {
			if name, ok := classify.CompanyFromMetadata(line.Content, loc); ok {
				return name, i + 1
			}
		}
	}
	return "", 0
}

// isCompanyLike reports whether a line would start a new group: an explicit
// company label or a metadata line carrying an embedded company.
func isCompanyLike(line types.ClassifiedLine, loc *locale.Table) bool {
	if line.Label == types.LabelCompany {
		return true
	}
	if line.Label == types.LabelMetadata {
		_, ok := classify.CompanyFromMetadata(line.Content, loc)
		return ok
	}
	return false
}
