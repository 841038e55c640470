package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/profile-extractor/internal/associate"
	"github.com/jonathan/profile-extractor/internal/classify"
	"github.com/jonathan/profile-extractor/internal/hints"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/normalize"
	"github.com/jonathan/profile-extractor/internal/personal"
	"github.com/jonathan/profile-extractor/internal/skills"
	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/jonathan/profile-extractor/internal/validation"
)

// Structured extracts a profile from the captured markup. Section boundaries
// come from the HTML, which removes the main source of association errors in
// flat text, but every hinted value is still re-checked by the classifier
// before it reaches a record.
type Structured struct {
	loc *locale.Table
	win associate.Windows
}

// NewStructured builds the markup strategy. A nil locale falls back to the
// merged default table.
func NewStructured(loc *locale.Table, win associate.Windows) *Structured {
	if loc == nil {
		loc = locale.Default()
	}
	return &Structured{loc: loc, win: win}
}

// Name implements Strategy.
func (s *Structured) Name() Name { return NameStructured }

// Extract implements Strategy.
func (s *Structured) Extract(ctx context.Context, in Input) (*types.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.HTML) == "" {
		return nil, fmt.Errorf("%w: no markup capture", ErrUnavailable)
	}
	h := hints.FromHTML(in.HTML)
	if h.Empty() {
		return nil, fmt.Errorf("%w: markup carried no usable structure", ErrUnavailable)
	}

	p := types.NewProfile()

	// Personal info from the header block, falling back to the text scan.
	textLines := normalize.Lines(in.Text, s.loc)
	p.Personal = personal.Extract(textLines, s.loc)
	if h.Name != "" {
		personalSetNameFromHint(&p.Personal, h.Name)
	}
	if h.Headline != "" {
		p.Personal.Headline = h.Headline
	}

	p.Summary = h.SectionText("about", "summary", "概要")

	// Each hinted section is its own association scope.
	if sec := h.SectionText("experience", "職歴"); sec != "" {
		p.Experience = s.associateSection(sec, associate.Experience)
	}
	if sec := h.SectionText("education", "学歴"); sec != "" {
		p.Education = s.associateSection(sec, associate.Education)
	}

	if len(p.Experience) == 0 {
		p.Experience = s.recordsFromGuesses(h)
	}

	if sec := h.SectionText("skills", "スキル"); sec != "" {
		p.Skills = skills.Extract(normalize.Lines(sec, s.loc), s.loc)
	} else {
		p.Skills = skills.Extract(textLines, s.loc)
	}

	return validation.Profile(p), nil
}

type associator func([]types.ClassifiedLine, associate.Windows, *locale.Table) []types.CandidateRecord

func (s *Structured) associateSection(section string, fn associator) []types.CandidateRecord {
	lines := normalize.Lines(section, s.loc)
	return fn(classify.Classify(lines, s.loc), s.win, s.loc)
}

// recordsFromGuesses pairs markup-derived title and company guesses by
// position when line association found nothing. Guesses that fail the
// classifier are dropped.
func (s *Structured) recordsFromGuesses(h *hints.Hints) []types.CandidateRecord {
	var records []types.CandidateRecord
	for i, title := range h.TitleGuesses {
		if !classify.IsTitle(title, s.loc) {
			continue
		}
		rec := types.CandidateRecord{Title: title}
		if i < len(h.CompanyGuesses) && classify.IsCompany(h.CompanyGuesses[i], s.loc) {
			rec.Org = h.CompanyGuesses[i]
		}
		if rec.Org == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func personalSetNameFromHint(info *types.PersonalInfo, name string) {
	info.FullName = name
	parts := strings.Fields(name)
	if len(parts) > 1 {
		info.FirstName = parts[0]
		info.LastName = strings.Join(parts[1:], " ")
	}
}
