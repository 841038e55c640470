// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-extractor/internal/pipeline"
	"github.com/jonathan/profile-extractor/internal/strategy"
	"github.com/jonathan/profile-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n characters, appending an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", profile.Personal.FullName))
	if profile.Personal.Headline != "" {
		sb.WriteString(fmt.Sprintf("Headline:  %s\n", truncate(profile.Personal.Headline, 45)))
	}
	if profile.Personal.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", profile.Personal.Location))
	}
	if profile.Personal.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", profile.Personal.Email))
	}
	sb.WriteString("\n")

	if len(profile.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(profile.Experience)))
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			rec := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(rec.Title, 48)))
			detail := rec.Org
			if rec.DateRange != "" {
				detail = fmt.Sprintf("%s, %s", detail, rec.DateRange)
			}
			if detail != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", truncate(detail, 46)))
			}
		}
		if len(profile.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(profile.Education)))
		count := min(len(profile.Education), 3)
		for i := 0; i < count; i++ {
			rec := profile.Education[i]
			entry := rec.Org
			if rec.Title != "" {
				entry = fmt.Sprintf("%s, %s", entry, rec.Title)
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(entry, 48)))
		}
		if len(profile.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(profile.Skills) > 0 {
		skills := strings.Join(profile.Skills, ", ")
		sb.WriteString(fmt.Sprintf("Skills:    %s\n", truncate(skills, 45)))
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutcomes outputs the per-strategy results of an extraction run.
func (p *Printer) PrintOutcomes(outcomes []pipeline.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	for i, o := range outcomes {
		sb.WriteString(fmt.Sprintf("%-14s ", o.Strategy))
		switch {
		case o.Err == nil && o.Profile != nil:
			sb.WriteString(fmt.Sprintf("ok (%d roles, %d schools, %d skills)",
				len(o.Profile.Experience), len(o.Profile.Education), len(o.Profile.Skills)))
		case errors.Is(o.Err, strategy.ErrUnavailable):
			sb.WriteString(fmt.Sprintf("skipped: %s", truncate(o.Err.Error(), 32)))
		case o.Err != nil:
			sb.WriteString(fmt.Sprintf("failed: %s", truncate(o.Err.Error(), 32)))
		default:
			sb.WriteString("no result")
		}
		if i < len(outcomes)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STRATEGY OUTCOMES", sb.String())
}
