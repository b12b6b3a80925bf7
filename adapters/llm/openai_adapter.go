package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

const systemPrompt = "You are an expert problem-solving assistant. Give precise, actionable answers."

var ErrNoAPIKey = errors.New("llm api key is not configured")

type openAIAdapter struct {
	client   *openai.Client
	provider string
	model    string
	schema   jsonschema.Definition
	log      logger.Logger
}

// NewLLMAdapter talks to any OpenAI-compatible chat completions endpoint:
// xAI, OpenAI or a local Ollama.
func NewLLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	apiKey := cfg.LLM.APIKey
	if apiKey == "" {
		if cfg.LLM.Provider != config.ProviderOllama {
			return nil, fmt.Errorf("%s: %w", cfg.LLM.Provider, ErrNoAPIKey)
		}
		apiKey = "dummy-key"
	}
	if cfg.LLM.BaseURL == "" {
		return nil, fmt.Errorf("%s base url is not configured", cfg.LLM.Provider)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.LLM.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.LLM.Timeout}

	log.Info("LLM Adapter initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("base_url", clientCfg.BaseURL),
		zap.String("model", cfg.LLM.Model),
	)
	return &openAIAdapter{
		client:   openai.NewClientWithConfig(clientCfg),
		provider: cfg.LLM.Provider,
		model:    cfg.LLM.Model,
		schema:   SolutionSchema(),
		log:      log,
	}, nil
}

func (a *openAIAdapter) GenerateText(ctx context.Context, prompt string) (string, error) {
	return a.complete(ctx, a.request(prompt))
}

func (a *openAIAdapter) GenerateSolution(ctx context.Context, prompt string) (*solution.Solution, error) {
	req := a.request(prompt)
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   "problem_solution",
			Schema: &a.schema,
			Strict: true,
		},
	}

	content, err := a.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var s solution.Solution
	if err := json.Unmarshal([]byte(extractJSON(content)), &s); err != nil {
		a.log.Warn("Model returned non-JSON structured output", zap.String("provider", a.provider), zap.Int("length", len(content)))
		return nil, fmt.Errorf("%s returned malformed solution JSON: %w", a.provider, err)
	}
	return &s, nil
}

func (a *openAIAdapter) request(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Stream: false,
	}
}

func (a *openAIAdapter) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s chat completion request failed: %w", a.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no chat choices", a.provider)
	}

	return resp.Choices[0].Message.Content, nil
}

// extractJSON strips a markdown code fence some local models wrap around
// JSON even when a response format is requested.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
