package solve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/apperror"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

const TypeStructured = "structured"

// SolveUseCase backs the stateless solve endpoint. It has no fallback:
// failures go back to the caller.
type SolveUseCase struct {
	llm       service.LLMService
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewSolveUseCase(llm service.LLMService, pub service.EventPublisher, log logger.Logger) *SolveUseCase {
	return &SolveUseCase{
		llm:       llm,
		publisher: pub,
		logger:    log,
	}
}

type SolveInput struct {
	Problem string
	Type    string
}

// SolveOutput carries Structured when the input type was "structured" and
// Text otherwise.
type SolveOutput struct {
	Structured *solution.Solution
	Text       string
}

func (uc *SolveUseCase) Execute(ctx context.Context, input SolveInput) (*SolveOutput, error) {
	ctx, span := tracer.Start(ctx, "Solve")
	defer span.End()

	if strings.TrimSpace(input.Problem) == "" {
		return nil, apperror.NewInvalidInput("problem must not be empty", nil)
	}

	structured := input.Type == TypeStructured
	mode := "text"
	if structured {
		mode = TypeStructured
	}

	out, err := uc.generate(ctx, input.Problem, structured)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Solve endpoint generation failed", err, zap.String("type", input.Type))
		uc.publish(ctx, mode, stats.SourceError, IsCreditsError(err))
		return nil, apperror.NewInternal("failed to solve problem", err)
	}

	uc.publish(ctx, mode, stats.SourceAI, false)
	return out, nil
}

func (uc *SolveUseCase) generate(ctx context.Context, problem string, structured bool) (*SolveOutput, error) {
	if !structured {
		text, err := uc.llm.GenerateText(ctx, textPrompt(problem))
		if err != nil {
			return nil, err
		}
		return &SolveOutput{Text: text}, nil
	}

	s, err := uc.llm.GenerateSolution(ctx, structuredPrompt(problem))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrEmptyAnswer
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("provider returned an invalid solution: %w", err)
	}
	return &SolveOutput{Structured: s}, nil
}

func (uc *SolveUseCase) publish(ctx context.Context, mode, source string, creditsExhausted bool) {
	evt := stats.SolveEvent{
		SessionID:        uuid.Nil,
		Mode:             mode,
		Source:           source,
		CreditsExhausted: creditsExhausted,
		At:               time.Now().UTC(),
	}
	if err := uc.publisher.PublishSolveEvent(ctx, evt); err != nil {
		uc.logger.Warn("Failed to publish solve event", zap.Error(err))
	}
}
