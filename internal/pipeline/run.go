// Package pipeline provides the high-level orchestration for profile
// extraction: it fans the captured page out to every configured strategy,
// collects whatever subset produced output, and merges the results in trust
// order.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/profile-extractor/internal/associate"
	"github.com/jonathan/profile-extractor/internal/classify"
	"github.com/jonathan/profile-extractor/internal/llm"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/merge"
	"github.com/jonathan/profile-extractor/internal/normalize"
	"github.com/jonathan/profile-extractor/internal/strategy"
	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/jonathan/profile-extractor/internal/validation"
)

// ProgressEvent represents a progress update during extraction
type ProgressEvent struct {
	Strategy string `json:"strategy"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when extraction progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for one extraction run
type RunOptions struct {
	Locale     string            // "en", "ja", or "" for the merged default
	Windows    associate.Windows // proximity windows, zero value replaced by defaults
	Merge      merge.Options     // reconciliation constants, zero value replaced by defaults
	TrustOrder []strategy.Name   // merge precedence, most trusted first
	APIKey     string            // enables the enhancement strategy when set
	LLMClient  llm.Client        // overrides APIKey when set; caller keeps ownership
	OnProgress ProgressCallback
}

// DefaultTrustOrder is the merge precedence used when RunOptions does not
// override it: markup beats flat text, and the model only fills gaps.
func DefaultTrustOrder() []strategy.Name {
	return []strategy.Name{strategy.NameStructured, strategy.NameTextFallback, strategy.NameEnhancement}
}

// Outcome records what one strategy produced during a run.
type Outcome struct {
	Strategy strategy.Name
	Profile  *types.Profile // nil when the strategy was skipped or failed
	Err      error          // ErrUnavailable wrap, or the extraction failure
}

// Result is the output of one extraction run.
type Result struct {
	Profile  *types.Profile
	Outcomes []Outcome
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, name strategy.Name, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Strategy: string(name),
			Message:  message,
			Content:  content,
		})
	}
}

// Run extracts a profile from one captured page. Strategies execute
// concurrently; each may succeed, report itself unavailable, or fail, and
// none of those outcomes aborts the run. When every strategy comes back
// empty the result is an empty validated profile rather than an error, so
// callers always receive a well-formed document.
func Run(ctx context.Context, in strategy.Input, opts RunOptions) (*Result, error) {
	loc := locale.ByName(opts.Locale)
	if opts.Windows == (associate.Windows{}) {
		opts.Windows = associate.DefaultWindows()
	}
	if len(opts.TrustOrder) == 0 {
		opts.TrustOrder = DefaultTrustOrder()
	}

	client := opts.LLMClient
	if client == nil && opts.APIKey != "" {
		if c, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey); err == nil {
			client = c
			defer c.Close()
		}
	}

	strategies := []strategy.Strategy{
		strategy.NewStructured(loc, opts.Windows),
		strategy.NewTextFallback(loc, opts.Windows),
		strategy.NewEnhancement(client, loc, opts.Windows),
	}

	outcomes := make([]Outcome, len(strategies))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		g.Go(func() error {
			p, err := s.Extract(gCtx, in)

			mu.Lock()
			outcomes[i] = Outcome{Strategy: s.Name(), Profile: p, Err: err}
			mu.Unlock()

			switch {
			case err == nil:
				emitProgress(&opts, s.Name(), "extracted candidate profile", nil)
			case errors.Is(err, strategy.ErrUnavailable):
				emitProgress(&opts, s.Name(), "skipped: "+err.Error(), nil)
			case gCtx.Err() != nil:
				// Cancellation is the caller's signal, not a strategy fault.
				return err
			default:
				emitProgress(&opts, s.Name(), "failed: "+err.Error(), nil)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[strategy.Name]*types.Profile, len(outcomes))
	for _, o := range outcomes {
		if o.Profile != nil {
			byName[o.Strategy] = o.Profile
		}
	}

	ordered := make([]*types.Profile, 0, len(byName))
	for _, name := range opts.TrustOrder {
		if p, ok := byName[name]; ok {
			ordered = append(ordered, p)
		}
	}

	result := &Result{Outcomes: outcomes}
	merged, err := merge.Profiles(ordered, opts.Merge)
	if err != nil {
		// Every strategy came back empty. Still return a valid document.
		result.Profile = validation.Profile(nil)
		return result, nil
	}
	result.Profile = merged

	emitProgress(&opts, "", "merged candidate profiles", result.Profile)
	return result, nil
}

// NormalizeAndClassify runs just the line-level front half of the pipeline.
// It exists for debugging captures: the output shows exactly what the
// associator would see.
func NormalizeAndClassify(raw string, localeName string) []types.ClassifiedLine {
	loc := locale.ByName(localeName)
	return classify.Classify(normalize.Lines(raw, loc), loc)
}
