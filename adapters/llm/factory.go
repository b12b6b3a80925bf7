package llm

import (
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

// NewFromConfig builds the configured provider. Without an API key the
// service still runs, answering every request from the fallback table.
func NewFromConfig(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	adapter, err := NewLLMAdapter(cfg, log)
	if errors.Is(err, ErrNoAPIKey) {
		log.Warn("No LLM API key configured, running in demonstration mode", zap.String("provider", cfg.LLM.Provider))
		return NewOfflineAdapter(err), nil
	}
	return adapter, err
}
