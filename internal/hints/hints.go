// Package hints derives structural extraction hints from captured profile
// HTML. Hints only pre-seed the structured strategy; every hinted value is
// re-validated by the line classifier before it reaches a record.
package hints

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Hints holds structural guesses pulled from the captured markup.
type Hints struct {
	// Name and Headline come from the page header block.
	Name     string
	Headline string
	// Sections maps a lowercased section heading ("experience",
	// "education", "skills") to the visible text of its block.
	Sections map[string]string
	// TitleGuesses and CompanyGuesses are texts of elements whose markup
	// position suggests a role title or an organization name.
	TitleGuesses   []string
	CompanyGuesses []string
}

// Empty reports whether parsing found nothing usable.
func (h *Hints) Empty() bool {
	return h == nil || (h.Name == "" && h.Headline == "" &&
		len(h.Sections) == 0 && len(h.TitleGuesses) == 0 && len(h.CompanyGuesses) == 0)
}

// FromHTML parses captured outerHTML into hints. Parse failures return an
// empty hint set rather than an error: hints are optional by contract.
func FromHTML(html string) *Hints {
	h := &Hints{Sections: map[string]string{}}
	if strings.TrimSpace(html) == "" {
		return h
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return h
	}

	h.Name = firstText(doc, "h1")
	h.Headline = firstText(doc,
		"[data-field=headline], .headline, .text-body-medium, h1 + div, h1 + p")

	doc.Find("section").Each(func(_ int, sec *goquery.Selection) {
		heading := strings.ToLower(strings.TrimSpace(sec.Find("h2").First().Text()))
		if heading == "" {
			return
		}
		body := cleanLines(sec.Text())
		// The section text echoes its own heading as the first line.
		if rest, ok := strings.CutPrefix(strings.ToLower(body), heading); ok {
			body = strings.TrimSpace(body[len(body)-len(rest):])
		}
		if body != "" {
			h.Sections[heading] = body
		}
	})

	doc.Find("li h3, li strong, .experience-item h3, [data-field=title]").Each(func(_ int, s *goquery.Selection) {
		if t := collapseWhitespace(s.Text()); t != "" {
			h.TitleGuesses = append(h.TitleGuesses, t)
		}
	})
	doc.Find("li h4, .experience-item h4, [data-field=company]").Each(func(_ int, s *goquery.Selection) {
		if t := collapseWhitespace(s.Text()); t != "" {
			h.CompanyGuesses = append(h.CompanyGuesses, t)
		}
	})

	return h
}

// SectionText returns the text of the section whose heading contains any of
// the given names, or "".
func (h *Hints) SectionText(names ...string) string {
	for heading, body := range h.Sections {
		for _, name := range names {
			if strings.Contains(heading, name) {
				return body
			}
		}
	}
	return ""
}

func firstText(doc *goquery.Document, selector string) string {
	return collapseWhitespace(doc.Find(selector).First().Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanLines trims every line and drops blanks while keeping the line
// structure; section bodies feed the line-oriented pipeline downstream.
func cleanLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
