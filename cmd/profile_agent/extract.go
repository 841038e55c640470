package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-extractor/internal/associate"
	"github.com/jonathan/profile-extractor/internal/capture"
	"github.com/jonathan/profile-extractor/internal/config"
	"github.com/jonathan/profile-extractor/internal/db"
	"github.com/jonathan/profile-extractor/internal/merge"
	"github.com/jonathan/profile-extractor/internal/observability"
	"github.com/jonathan/profile-extractor/internal/pipeline"
	"github.com/jonathan/profile-extractor/internal/schemas"
	"github.com/jonathan/profile-extractor/internal/strategy"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured profile from a captured page",
	Long: `Runs the extraction pipeline over a captured profile page and prints the
resulting profile as JSON.

Input is a text capture file (use "-" for stdin), an HTML capture, a URL to
render, or any combination. Configuration can be loaded from a JSON file
using --config; command-line arguments override config file values.`,
	RunE: runExtract,
}

var (
	extractConfigPath string
	extractInput      string
	extractHTML       string
	extractURL        string
	extractLocale     string
	extractOut        string
	extractAPIKey     string
	extractDBURL      string
	extractUseBrowser bool
	extractValidate   bool
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", `Path to captured profile text ("-" for stdin)`)
	extractCmd.Flags().StringVar(&extractHTML, "html", "", "Path to captured profile HTML (optional)")
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Profile URL to capture and extract (mutually exclusive with --input)")
	extractCmd.Flags().StringVarP(&extractLocale, "locale", "l", "", "Capture locale: en, ja, or empty for the merged default")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file (default stdout)")
	extractCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Force headless browser rendering for --url (requires Chrome)")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate the output against the profile JSON schema")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print strategy progress to stderr")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key enabling the LLM enhancement strategy (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run persistence
	extractCmd.Flags().StringVar(&extractDBURL, "db-url", "", "PostgreSQL connection URL for recording the run (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if extractConfigPath != "" {
		loadedCfg, err := config.LoadConfig(extractConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if extractVerbose {
			_, _ = fmt.Fprintf(os.Stderr, "Loaded config from: %s\n", extractConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("input") {
		cfg.Profile = extractInput
	}
	if cmd.Flags().Changed("url") {
		cfg.ProfileURL = extractURL
	}
	if cmd.Flags().Changed("locale") {
		cfg.Locale = extractLocale
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = extractAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = extractUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = extractVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = extractDBURL
	}

	// Step 3: Validate input selection
	if cfg.Profile == "" && cfg.ProfileURL == "" && extractHTML == "" {
		return fmt.Errorf("one of --input, --html, or --url must be provided (via flag or config)")
	}
	if cfg.Profile != "" && cfg.ProfileURL != "" {
		return fmt.Errorf("--input and --url are mutually exclusive; provide only one")
	}

	// Step 4: API key handling (optional; without it the LLM strategy is skipped)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Step 5: Acquire the capture
	var text, html string
	switch {
	case cfg.ProfileURL != "":
		result, err := capture.Page(ctx, cfg.ProfileURL, &capture.Options{
			Timeout:    capture.DefaultTimeout,
			UserAgent:  capture.DefaultUserAgent,
			UseBrowser: cfg.UseBrowser,
			Verbose:    cfg.Verbose,
		})
		if err != nil {
			return fmt.Errorf("failed to capture %s: %w", cfg.ProfileURL, err)
		}
		text = result.Text
		html = result.HTML
	case cfg.Profile != "":
		data, err := readInput(cfg.Profile)
		if err != nil {
			return fmt.Errorf("failed to read profile text: %w", err)
		}
		text = string(data)
	}
	if extractHTML != "" {
		data, err := os.ReadFile(extractHTML)
		if err != nil {
			return fmt.Errorf("failed to read profile HTML: %w", err)
		}
		html = string(data)
	}

	// Step 6: Run the pipeline
	company, date, education := cfg.WindowsOrDefault()
	opts := pipeline.RunOptions{
		Locale:  cfg.Locale,
		Windows: associate.Windows{Company: company, Date: date, Education: education},
		Merge:   merge.Options{TitleSimilarity: cfg.TitleSimilarity},
		APIKey:  cfg.APIKey,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Strategy, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, strategy.Input{Text: text, HTML: html}, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintOutcomes(result.Outcomes)
		printer.PrintProfile(result.Profile)
	}

	output, err := json.MarshalIndent(result.Profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	// Step 7: Optional schema validation
	if extractValidate {
		if err := schemas.ValidateProfileJSON(output); err != nil {
			return err
		}
	}

	// Step 8: Optional run persistence
	if cfg.DatabaseURL != "" {
		if err := persistRun(ctx, cfg, text, html, result); err != nil {
			return err
		}
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, append(output, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if cfg.Verbose {
			_, _ = fmt.Fprintf(os.Stderr, "Wrote profile to: %s\n", extractOut)
		}
		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, string(output))
	return nil
}

// persistRun records the extraction and its artifacts.
func persistRun(ctx context.Context, cfg config.Config, text, html string, result *pipeline.Result) error {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	runID, err := database.CreateRun(ctx, cfg.ProfileURL, cfg.Locale, len(text))
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	if text != "" {
		if err := database.SaveTextArtifact(ctx, runID, db.StepCaptureText, text); err != nil {
			return fmt.Errorf("failed to save text artifact: %w", err)
		}
	}
	if html != "" {
		if err := database.SaveTextArtifact(ctx, runID, db.StepCaptureHTML, html); err != nil {
			return fmt.Errorf("failed to save html artifact: %w", err)
		}
	}
	if err := database.SaveProfile(ctx, runID, result.Profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if err := database.CompleteRun(ctx, runID, db.StatusCompleted); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stderr, "Recorded run: %s\n", runID)
	}
	return nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
