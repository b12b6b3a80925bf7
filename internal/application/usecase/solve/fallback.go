package solve

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

const DefaultFallbackDelay = 1500 * time.Millisecond

var ErrFallbackFailed = errors.New("failed to generate solution")

// FallbackSynthesizer returns a canned record for a mode when the provider
// cannot be reached. It never does I/O; the delay only imitates model latency.
type FallbackSynthesizer struct {
	delay     time.Duration
	templates map[solution.Mode]solution.Solution
}

func NewFallbackSynthesizer(delay time.Duration) *FallbackSynthesizer {
	if delay < 0 {
		delay = 0
	}
	return &FallbackSynthesizer{
		delay:     delay,
		templates: fallbackTemplates,
	}
}

func (f *FallbackSynthesizer) Synthesize(ctx context.Context, problem string, mode solution.Mode) (*solution.Solution, error) {
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFallbackFailed, ctx.Err())
		case <-timer.C:
		}
	}

	tmpl, ok := f.templates[mode]
	if !ok {
		tmpl = f.templates[solution.ModeSolver]
	}
	s := tmpl.Clone()
	s.Solution = strings.ReplaceAll(s.Solution, problemPlaceholder, problem)
	return s, nil
}
