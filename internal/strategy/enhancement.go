package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/profile-extractor/internal/associate"
	"github.com/jonathan/profile-extractor/internal/llm"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/jonathan/profile-extractor/internal/validation"
)

// DefaultEnhancementTimeout bounds one model round trip so a slow provider
// never stalls the merge.
const DefaultEnhancementTimeout = 60 * time.Second

// Enhancement refines the heuristic draft with an LLM. Provider failures of
// any kind surface as ErrUnavailable: enhancement is best-effort and the
// pipeline always has the heuristic result to fall back on.
type Enhancement struct {
	client  llm.Client
	loc     *locale.Table
	win     associate.Windows
	timeout time.Duration
}

// NewEnhancement builds the LLM strategy. The client may be nil, in which
// case the strategy reports itself unavailable at extraction time.
func NewEnhancement(client llm.Client, loc *locale.Table, win associate.Windows) *Enhancement {
	if loc == nil {
		loc = locale.Default()
	}
	return &Enhancement{client: client, loc: loc, win: win, timeout: DefaultEnhancementTimeout}
}

// WithTimeout overrides the per-call deadline. A zero duration disables it.
func (s *Enhancement) WithTimeout(d time.Duration) *Enhancement {
	s.timeout = d
	return s
}

// Name implements Strategy.
func (s *Enhancement) Name() Name { return NameEnhancement }

// Extract implements Strategy.
func (s *Enhancement) Extract(ctx context.Context, in Input) (*types.Profile, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: no LLM client configured", ErrUnavailable)
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: no text capture", ErrUnavailable)
	}

	draft := heuristicProfile(in.Text, s.loc, s.win)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	p, err := llm.ExtractProfile(ctx, s.client, in.Text, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return validation.Profile(p), nil
}
