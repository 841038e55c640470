// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Profile    string `json:"profile,omitempty"`     // Path to a captured profile text file
	ProfileURL string `json:"profile_url,omitempty"` // URL to capture the profile from

	// Extraction tuning
	Locale          string  `json:"locale,omitempty"`           // "en", "ja", or "" for the merged default
	CompanyWindow   int     `json:"company_window,omitempty"`   // Title-to-company association distance in lines
	DateWindow      int     `json:"date_window,omitempty"`      // Org-to-date association distance in lines
	EducationWindow int     `json:"education_window,omitempty"` // Degree-to-school association distance in lines
	TitleSimilarity float64 `json:"title_similarity,omitempty"` // Record dedup threshold (0.0-1.0)

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for the enhancement strategy
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use a headless browser for JS-rendered pages
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for persistence
	Port        int    `json:"port,omitempty"`         // HTTP server listen port
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Profile != "" && c.ProfileURL != "" {
		return fmt.Errorf("config error: 'profile' and 'profile_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.CompanyWindow < 0 {
		return fmt.Errorf("config error: 'company_window' must be non-negative")
	}
	if c.DateWindow < 0 {
		return fmt.Errorf("config error: 'date_window' must be non-negative")
	}
	if c.EducationWindow < 0 {
		return fmt.Errorf("config error: 'education_window' must be non-negative")
	}
	if c.TitleSimilarity < 0 || c.TitleSimilarity > 1 {
		return fmt.Errorf("config error: 'title_similarity' must be between 0.0 and 1.0")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}

	// Validate file paths exist (if specified)
	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.ProfileURL == "" {
		result.ProfileURL = defaults.ProfileURL
	}
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.CompanyWindow == 0 {
		result.CompanyWindow = defaults.CompanyWindow
	}
	if result.DateWindow == 0 {
		result.DateWindow = defaults.DateWindow
	}
	if result.EducationWindow == 0 {
		result.EducationWindow = defaults.EducationWindow
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Float fields
	if result.TitleSimilarity == 0 {
		if defaults.TitleSimilarity > 0 {
			result.TitleSimilarity = defaults.TitleSimilarity
		} else {
			result.TitleSimilarity = 0.8 // Tuned record dedup threshold
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// WindowsOrDefault returns the three association distances with zero values replaced
// by the tuned defaults (5, 3, 3).
func (c *Config) WindowsOrDefault() (company, date, education int) {
	company, date, education = c.CompanyWindow, c.DateWindow, c.EducationWindow
	if company == 0 {
		company = 5
	}
	if date == 0 {
		date = 3
	}
	if education == 0 {
		education = 3
	}
	return company, date, education
}
