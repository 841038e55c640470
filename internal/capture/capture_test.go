package capture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Success(t *testing.T) {
	// Enough visible text that no browser fallback is attempted
	body := "<html><body><main><h1>Jane Smith</h1><p>" +
		strings.Repeat("Builds data platforms for retail analytics teams. ", 20) +
		"</p></main></body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Jane Smith</h1>")
	assert.Contains(t, result.Text, "Jane Smith")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.False(t, result.Rendered)
}

func TestPage_InvalidURL(t *testing.T) {
	_, err := Page(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var capErr *Error
	assert.ErrorAs(t, err, &capErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Page(context.Background(), server.URL, nil)
	require.Error(t, err)

	var capErr *Error
	assert.ErrorAs(t, err, &capErr)
	assert.Contains(t, err.Error(), "404")
}

func TestVisibleText_MainElement(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Jane Smith</h1>
				<p>Senior Software Engineer at Acme Corp</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := VisibleText(html, SourceContentSelectors(SourceGeneric))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Smith")
	assert.Contains(t, text, "Senior Software Engineer at Acme Corp")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestVisibleText_MinifiedBlocksStaySeparate(t *testing.T) {
	// No whitespace between sibling headings in the source
	html := `<html><body><main><h3>Senior Software Engineer</h3><h4>Acme Corp</h4><span>Jan 2020 - Present</span></main></body></html>`

	text, err := VisibleText(html, SourceContentSelectors(SourceGeneric))
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Contains(t, lines, "Senior Software Engineer")
	assert.Contains(t, lines, "Acme Corp")
}

func TestVisibleText_NoiseSelectorsRemoved(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="sign-in-form">Sign in to view</div>
			<main>
				<h1>Jane Smith</h1>
			</main>
		</body>
	</html>`

	text, err := VisibleText(html, SourceContentSelectors(SourceGeneric), SourceNoiseSelectors(SourceGeneric)...)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Smith")
	assert.NotContains(t, text, "Sign in to view")
}

func TestVisibleText_FallbackToBody(t *testing.T) {
	html := `<html><body><div class="unstyled">Some profile text here.</div></body></html>`

	text, err := VisibleText(html, []string{".does-not-exist"})
	require.NoError(t, err)
	assert.Contains(t, text, "Some profile text here")
}

func TestVisibleText_BlankLinesDropped(t *testing.T) {
	html := `
	<html>
		<body>
			<main>
				<p>First</p>
				<p>   </p>
				<p>Second</p>
			</main>
		</body>
	</html>`

	text, err := VisibleText(html, SourceContentSelectors(SourceGeneric))
	require.NoError(t, err)
	assert.Equal(t, "First\nSecond", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short shell page"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("profile text ", 50)))
}

func TestError_Unwrap(t *testing.T) {
	cause := assert.AnError
	err := &Error{URL: "https://example.com", Message: "HTTP request failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "https://example.com")
	assert.Contains(t, err.Error(), "HTTP request failed")
}
