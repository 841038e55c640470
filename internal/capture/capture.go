// Package capture acquires the visible text and markup of a profile page.
// It centralizes the HTTP fetching and HTML-to-text processing the extraction
// pipeline depends on; the pipeline itself never performs network I/O.
package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ProfileAgent/1.0)"

// Result holds the raw and processed content from a profile page capture.
type Result struct {
	URL        string
	HTML       string
	Text       string
	StatusCode int
	Rendered   bool // true when a headless browser produced the HTML
}

// Error represents an error during page capture.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("capture error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the capture behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	UseBrowser bool // force headless rendering instead of falling back to it
	Verbose    bool
}

// DefaultOptions returns sensible defaults for capturing.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Page captures a profile page. It fetches over plain HTTP first and falls
// back to headless rendering when the visible text is too short to be a
// server-rendered page. Profile sites are almost always SPAs, so the
// fallback is the common path.
func Page(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	source := DetectSource(urlStr)

	if opts.UseBrowser {
		return renderPage(ctx, urlStr, source, opts)
	}

	result, err := fetchPage(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	text, err := VisibleText(result.HTML, SourceContentSelectors(source), SourceNoiseSelectors(source)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	result.Text = text

	if ShouldUseBrowser(text) {
		return renderPage(ctx, urlStr, source, opts)
	}
	return result, nil
}

// renderPage captures a page through the headless browser.
func renderPage(ctx context.Context, urlStr string, source Source, opts *Options) (*Result, error) {
	rendered, err := WithBrowser(ctx, urlStr, opts.Timeout, opts.Verbose)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	text, err := VisibleText(rendered, SourceContentSelectors(source), SourceNoiseSelectors(source)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	return &Result{
		URL:      urlStr,
		HTML:     rendered,
		Text:     text,
		Rendered: true,
	}, nil
}

// fetchPage retrieves HTML content over plain HTTP.
func fetchPage(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:        urlStr,
		HTML:       string(bodyBytes),
		StatusCode: resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}

// VisibleText parses HTML and returns the visible body text with one line
// per rendered block, which is the shape the line classifier expects.
// Noise elements are removed first; content is located with contentSelectors
// and falls back to the body element.
func VisibleText(htmlStr string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove common unwanted elements (nav, footer, scripts, ads, etc.)
	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	if len(noiseSelectors) > 0 {
		noiseSelector := strings.Join(noiseSelectors, ", ")
		if noiseSelector != "" {
			doc.Find(noiseSelector).Remove()
		}
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return cleanLines(blockText(mainContent)), nil
}

// blockTags are elements that end a rendered line.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "tr": true, "td": true, "th": true,
	"br": true, "dt": true, "dd": true, "blockquote": true, "main": true,
}

// blockText walks the DOM and inserts a newline after each block element,
// so sibling headings in minified markup do not run together.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			b.WriteString("\n")
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}

// cleanLines trims each line and drops blank ones.
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
