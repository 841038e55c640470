// Package capture - source.go provides profile-site detection and
// site-specific selectors.
package capture

import (
	"net/url"
	"strings"
)

// Source represents a known profile-page host.
type Source string

const (
	// SourceLinkedIn is a linkedin.com profile page
	SourceLinkedIn Source = "linkedin"
	// SourceXing is a xing.com profile page
	SourceXing Source = "xing"
	// SourceGeneric is an unrecognized host
	SourceGeneric Source = "generic"
)

// DetectSource identifies the profile site from a URL.
func DetectSource(urlStr string) Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceGeneric
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "linkedin.com") {
		return SourceLinkedIn
	}
	if strings.Contains(host, "xing.com") {
		return SourceXing
	}

	return SourceGeneric
}

// SourceContentSelectors returns content selectors optimized for a profile site.
func SourceContentSelectors(source Source) []string {
	switch source {
	case SourceLinkedIn:
		return []string{
			"main.scaffold-layout__main", // logged-in profile view
			".scaffold-layout__main",
			".core-rail",   // public profile view
			".profile-rail",
			"main",
		}
	case SourceXing:
		return []string{
			"[data-testid='profile-modules']",
			".profile-modules",
			"main",
		}
	default:
		return []string{
			"main",
			"article",
			".profile",
			"#profile",
			".content",
			"#content",
		}
	}
}

// SourceNoiseSelectors returns noise exclusion selectors for a profile site.
func SourceNoiseSelectors(source Source) []string {
	// Common noise selectors for all profile sites
	common := []string{
		// Sign-in walls and upsells
		".join-form",
		".sign-in-form",
		".sign-in-modal",
		".premium-upsell",
		"[data-testid='login-wall']",

		// People-also-viewed rails and feeds
		".right-rail",
		".aside-section",
		".browsemap",
		".pv-browsemap-section",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch source {
	case SourceLinkedIn:
		return append(common,
			".global-nav",
			".msg-overlay-list-bubble",
			".artdeco-toasts",
			"#artdeco-modal-outlet",
			".ad-banner-container",
		)
	case SourceXing:
		return append(common,
			"[data-testid='ad-slot']",
			".vertical-navigation",
		)
	default:
		return common
	}
}
