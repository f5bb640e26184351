package llm

import (
	"context"
	"testing"
	"time"

	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewModel_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LLMConfig
	}{
		{"gemini without key", config.LLMConfig{Provider: "gemini"}},
		{"openai without key", config.LLMConfig{Provider: "openai"}},
		{"ollama without model", config.LLMConfig{Provider: "ollama", ServerURL: "http://localhost:11434"}},
		{"unknown provider", config.LLMConfig{Provider: "claude-on-a-toaster", APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewModel(context.Background(), tt.cfg, zap.NewNop())
			assert.Nil(t, m)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigurationSentinel)
		})
	}
}

func TestNewModel_BuildsClientsWithoutNetwork(t *testing.T) {
	m, err := NewModel(context.Background(), config.LLMConfig{Provider: "openai", APIKey: "sk-test", Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, m)

	m, err = NewModel(context.Background(), config.LLMConfig{Provider: "Ollama", Model: "llama3", ServerURL: "http://localhost:11434"}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", ModelName(config.LLMConfig{Provider: "gemini"}))
	assert.Equal(t, "gpt-4o", ModelName(config.LLMConfig{Provider: "openai"}))
	assert.Equal(t, "gpt-4o-mini", ModelName(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"}))
	assert.Equal(t, "", ModelName(config.LLMConfig{Provider: "ollama"}))
}
