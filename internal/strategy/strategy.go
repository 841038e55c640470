// Package strategy defines the extraction strategies that turn one captured
// profile page into a draft profile. Strategies are independent: each can
// succeed, fail, or report itself unavailable, and the pipeline merges
// whatever subset produced output.
package strategy

import (
	"context"
	"errors"

	"github.com/jonathan/profile-extractor/internal/types"
)

// Name identifies an extraction strategy. The merge trust order is expressed
// as an ordered list of names.
type Name string

// Strategy name constants, in default trust order.
const (
	// NameStructured extracts from captured markup via structural hints.
	NameStructured Name = "structured"
	// NameTextFallback extracts from visible text alone.
	NameTextFallback Name = "text_fallback"
	// NameEnhancement refines the heuristic result with an LLM.
	NameEnhancement Name = "enhancement"
)

// ErrUnavailable signals that a strategy cannot run with the given input or
// configuration. The pipeline treats it as a skip, not a failure.
var ErrUnavailable = errors.New("strategy unavailable")

// Input carries one captured profile page.
type Input struct {
	Text string // visible text capture, required by most strategies
	HTML string // outerHTML capture, optional
}

// Strategy extracts a draft profile from a captured page.
type Strategy interface {
	// Name returns the strategy's identity for trust ordering and logging.
	Name() Name
	// Extract produces a sanitized draft profile. It returns an error
	// wrapping ErrUnavailable when the strategy cannot run at all.
	Extract(ctx context.Context, in Input) (*types.Profile, error)
}
