package service

import (
	"context"

	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
)

type EventPublisher interface {
	PublishSolveEvent(ctx context.Context, evt stats.SolveEvent) error
}
