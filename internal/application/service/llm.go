package service

import (
	"context"

	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

// LLMService is the narrow capability the dispatcher needs from a model
// provider: free text, or an object that conforms to the solution schema.
type LLMService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateSolution(ctx context.Context, prompt string) (*solution.Solution, error)
}
