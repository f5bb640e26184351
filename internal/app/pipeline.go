package app

import (
	"context"
	"time"

	"lms-quiz/internal/adapter/extractor"
	"lms-quiz/internal/adapter/llm"
	"lms-quiz/internal/adapter/quizgen"
	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"

	"go.uber.org/zap"
)

// Pipeline holds the ingestion collaborators built from configuration.
type Pipeline struct {
	Extractor domain.TextExtractor
	Generator domain.QuestionGenerator
	Resolver  domain.AnswerResolver

	closers []func() error
}

// NewPipeline builds the extractor, generator and resolver. cache may be nil.
// A misconfigured LLM backend is not fatal: generation then fails with CONFIGURATION_ERROR.
func NewPipeline(ctx context.Context, cfg *config.Config, cache domain.Cache, logger *zap.Logger) (*Pipeline, error) {
	p := &Pipeline{}

	model, err := llm.NewModel(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Warn("LLM backend not configured, imports will be rejected", zap.Error(err))
		model = nil
	}

	var generator domain.QuestionGenerator = quizgen.NewLLMQuestionGenerator(model, cfg.LLM.Timeout, cfg.LLM.MaxInputChars, logger)
	if cache != nil && model != nil {
		ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Generation, 24*time.Hour)
		backend := cfg.LLM.Provider + ":" + llm.ModelName(cfg.LLM)
		generator = quizgen.NewCachedQuestionGenerator(generator, cache, ttl, backend, logger)
	}
	p.Generator = generator
	p.Resolver = quizgen.NewLLMAnswerResolver(model, cfg.LLM.Timeout, logger)

	variants := map[domain.MediaKind]extractor.Variant{
		domain.MediaKindDocument: extractor.NewPDFExtractor(),
		domain.MediaKindText:     extractor.NewPlainTextExtractor(),
	}
	if cfg.OCR.Enabled {
		client, err := extractor.NewVisionClient(ctx, cfg.OCR.CredentialsFile)
		if err != nil {
			return nil, err
		}
		ocr := extractor.NewVisionOCR(client, cfg.OCR.Timeout)
		p.closers = append(p.closers, ocr.Close)
		variants[domain.MediaKindImage] = ocr
		logger.Info("Cloud Vision OCR enabled")
	}
	p.Extractor = extractor.NewDispatcher(variants, cfg.Ingest.DefaultLanguage, logger)

	return p, nil
}

// Close releases backend clients.
func (p *Pipeline) Close() {
	for _, c := range p.closers {
		_ = c()
	}
}
