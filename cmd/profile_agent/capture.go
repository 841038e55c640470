package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-extractor/internal/capture"
)

var captureCmd = &cobra.Command{
	Use:   "capture <url>",
	Short: "Capture the visible text of a profile page",
	Long: `Renders a profile page and prints its visible text, one line per
rendered block. The output is the exact input the extract command expects,
so captures can be stored and re-extracted offline.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

var (
	captureHTMLOut    string
	captureTextOut    string
	captureUseBrowser bool
	captureVerbose    bool
)

func init() {
	captureCmd.Flags().StringVar(&captureHTMLOut, "html-out", "", "Also write the rendered HTML to this file")
	captureCmd.Flags().StringVarP(&captureTextOut, "out", "o", "", "Output file for the visible text (default stdout)")
	captureCmd.Flags().BoolVar(&captureUseBrowser, "use-browser", false, "Force headless browser rendering (requires Chrome)")
	captureCmd.Flags().BoolVarP(&captureVerbose, "verbose", "v", false, "Print capture progress")

	rootCmd.AddCommand(captureCmd)
}

func runCapture(_ *cobra.Command, args []string) error {
	url := args[0]

	result, err := capture.Page(context.Background(), url, &capture.Options{
		Timeout:    capture.DefaultTimeout,
		UserAgent:  capture.DefaultUserAgent,
		UseBrowser: captureUseBrowser,
		Verbose:    captureVerbose,
	})
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", url, err)
	}

	if captureHTMLOut != "" {
		if err := os.WriteFile(captureHTMLOut, []byte(result.HTML), 0644); err != nil {
			return fmt.Errorf("failed to write HTML: %w", err)
		}
	}

	if captureTextOut != "" {
		if err := os.WriteFile(captureTextOut, []byte(result.Text+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write text: %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, result.Text)
	return nil
}
