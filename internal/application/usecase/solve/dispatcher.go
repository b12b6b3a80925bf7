package solve

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

var tracer = otel.Tracer("solve_usecase")

var ErrEmptyAnswer = errors.New("provider returned no solution")

// Dispatcher sends one mode-specific prompt to the model provider. It makes
// a single attempt and returns the provider error untouched on failure.
type Dispatcher struct {
	llm    service.LLMService
	logger logger.Logger
}

func NewDispatcher(llm service.LLMService, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		llm:    llm,
		logger: log,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, problem string, mode solution.Mode) (*solution.Solution, error) {
	ctx, span := tracer.Start(ctx, "Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("mode", mode.String()))

	l := d.logger.With(zap.String("mode", mode.String()))
	prompt := promptFor(mode, problem)

	switch mode {
	case solution.ModeCode, solution.ModeExplain:
		text, err := d.llm.GenerateText(ctx, prompt)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		l.Debug("Text answer received", zap.Int("length", len(text)))
		return wrapText(mode, text), nil
	default:
		s, err := d.llm.GenerateSolution(ctx, prompt)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if s == nil {
			span.RecordError(ErrEmptyAnswer)
			return nil, ErrEmptyAnswer
		}
		if err := s.Validate(); err != nil {
			err = fmt.Errorf("provider returned an invalid solution: %w", err)
			span.RecordError(err)
			return nil, err
		}
		l.Debug("Structured answer received", zap.String("category", string(s.Category)))
		return s, nil
	}
}
