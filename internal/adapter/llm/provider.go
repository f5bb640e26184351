package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o"
)

// NewModel builds the langchaingo model selected by cfg.Provider.
// A missing credential is reported as a configuration error without touching the network.
func NewModel(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (llms.Model, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, domain.NewConfigurationError("gemini provider requires an API key (APP_LLM_API_KEY or GEMINI_API_KEY)")
		}
		model := ModelName(cfg)
		logger.Info("Initializing Gemini model", zap.String("model", model))
		m, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return m, nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, domain.NewConfigurationError("openai provider requires an API key (APP_LLM_API_KEY or OPENAI_API_KEY)")
		}
		model := ModelName(cfg)
		logger.Info("Initializing OpenAI model", zap.String("model", model))
		m, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(model),
			openai.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return m, nil

	case ProviderOllama:
		if cfg.Model == "" || cfg.ServerURL == "" {
			return nil, domain.NewConfigurationError("ollama provider requires llm.model and llm.server_url")
		}
		logger.Info("Initializing Ollama model", zap.String("model", cfg.Model), zap.String("server", cfg.ServerURL))
		m, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return m, nil

	default:
		return nil, domain.NewConfigurationError(fmt.Sprintf("unknown llm provider %q", cfg.Provider))
	}
}

// ModelName returns the configured model or the provider default.
func ModelName(cfg config.LLMConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOpenAI:
		return DefaultOpenAIModel
	}
	return ""
}
