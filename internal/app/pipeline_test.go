package app

import (
	"context"
	"testing"

	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPipeline_UnconfiguredBackend(t *testing.T) {
	cfg := &config.Config{
		LLM:    config.LLMConfig{Provider: "gemini"},
		Ingest: config.IngestConfig{DefaultLanguage: "eng"},
	}

	p, err := NewPipeline(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Generator.Generate(context.Background(), "some lesson text", 3)
	assert.Equal(t, domain.ErrConfiguration, domain.CodeOf(err))

	_, err = p.Resolver.Resolve(context.Background(), "2+2?", []string{"3", "4"})
	assert.Equal(t, domain.ErrConfiguration, domain.CodeOf(err))
}

func TestNewPipeline_ExtractorVariants(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "none"}}

	p, err := NewPipeline(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)

	text, err := p.Extractor.Extract(context.Background(), domain.RawDocument{
		Data:      []byte("Photosynthesis converts light energy into chemical energy."),
		MediaType: "text/plain; charset=utf-8",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Photosynthesis")

	_, err = p.Extractor.Extract(context.Background(), domain.RawDocument{Data: []byte{0x89, 'P', 'N', 'G'}, MediaType: "image/png"})
	assert.Equal(t, domain.ErrUnsupportedMediaKind, domain.CodeOf(err))
}
