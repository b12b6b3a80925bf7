package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/apperror"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

type StatsUseCase struct {
	repo   stats.Repository
	logger logger.Logger
}

func NewStatsUseCase(repo stats.Repository, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{repo: repo, logger: log}
}

// Record counts one solve event under "<mode>:<source>".
func (uc *StatsUseCase) Record(ctx context.Context, evt stats.SolveEvent) error {
	if evt.Mode == "" || evt.Source == "" {
		uc.logger.Warn("Skipping incomplete solve event", zap.String("mode", evt.Mode), zap.String("source", evt.Source))
		return nil
	}
	return uc.repo.Increment(ctx, evt.Key())
}

type StatsOutput struct {
	ByMode map[string]map[string]int64
	Total  int64
}

func (uc *StatsUseCase) Get(ctx context.Context) (*StatsOutput, error) {
	counts, err := uc.repo.Counts(ctx)
	if err != nil {
		uc.logger.Error("Failed to read solve counters", err)
		return nil, apperror.NewInternal("failed to read stats", err)
	}

	out := &StatsOutput{ByMode: make(map[string]map[string]int64)}
	for key, n := range counts {
		mode, source, ok := stats.SplitKey(key)
		if !ok {
			continue
		}
		if out.ByMode[mode] == nil {
			out.ByMode[mode] = make(map[string]int64)
		}
		out.ByMode[mode][source] += n
		out.Total += n
	}
	return out, nil
}
