package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/profile-extractor/internal/associate"
	"github.com/jonathan/profile-extractor/internal/locale"
	"github.com/jonathan/profile-extractor/internal/types"
)

// TextFallback extracts a profile from the visible text capture alone. It is
// the strategy of last resort and needs nothing but text, so it is always
// available when a capture exists.
type TextFallback struct {
	loc *locale.Table
	win associate.Windows
}

// NewTextFallback builds the text strategy. A nil locale falls back to the
// merged default table.
func NewTextFallback(loc *locale.Table, win associate.Windows) *TextFallback {
	if loc == nil {
		loc = locale.Default()
	}
	return &TextFallback{loc: loc, win: win}
}

// Name implements Strategy.
func (s *TextFallback) Name() Name { return NameTextFallback }

// Extract implements Strategy.
func (s *TextFallback) Extract(ctx context.Context, in Input) (*types.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: no text capture", ErrUnavailable)
	}
	return heuristicProfile(in.Text, s.loc, s.win), nil
}
