package llm

import (
	"context"

	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

type offlineAdapter struct {
	reason error
}

// NewOfflineAdapter fails every call with reason, which sends each request
// down the fallback path without touching the network.
func NewOfflineAdapter(reason error) service.LLMService {
	return &offlineAdapter{reason: reason}
}

func (a *offlineAdapter) GenerateText(context.Context, string) (string, error) {
	return "", a.reason
}

func (a *offlineAdapter) GenerateSolution(context.Context, string) (*solution.Solution, error) {
	return nil, a.reason
}
