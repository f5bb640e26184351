package quizgen

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lms-quiz/internal/cache"
	"lms-quiz/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultGenerationTTL = 24 * time.Hour

// CachedQuestionGenerator memoizes successful generations per (text, maxQuestions, backend).
// Concurrent identical requests share one backend call. Cache failures only log.
type CachedQuestionGenerator struct {
	next    domain.QuestionGenerator
	cache   domain.Cache
	ttl     time.Duration
	backend string
	logger  *zap.Logger
	sfGroup singleflight.Group
}

// NewCachedQuestionGenerator wraps next. backend distinguishes entries written by
// different providers or models, e.g. "gemini/gemini-2.0-flash".
func NewCachedQuestionGenerator(next domain.QuestionGenerator, c domain.Cache, ttl time.Duration, backend string, logger *zap.Logger) *CachedQuestionGenerator {
	if ttl <= 0 {
		ttl = DefaultGenerationTTL
	}
	return &CachedQuestionGenerator{
		next:    next,
		cache:   c,
		ttl:     ttl,
		backend: backend,
		logger:  logger,
	}
}

func (g *CachedQuestionGenerator) Generate(ctx context.Context, text string, maxQuestions int) ([]domain.GeneratedQuestion, error) {
	cacheKey := cache.GenerateCacheKey("quizgen", "generation", cache.ContentDigest(text), strconv.Itoa(maxQuestions), g.backend)

	if cached, ok := g.lookup(ctx, cacheKey); ok {
		return cached, nil
	}

	// The shared call must not inherit one caller's cancellation; the wrapped
	// generator bounds it with its own timeout.
	shareCtx := context.WithoutCancel(ctx)
	ch := g.sfGroup.DoChan(cacheKey, func() (interface{}, error) {
		questions, err := g.next.Generate(shareCtx, text, maxQuestions)
		if err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			g.store(shareCtx, cacheKey, questions)
		}
		return questions, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		g.logger.Debug("Generation shared with concurrent request", zap.String("cache_key", cacheKey))
	}

	questions, ok := res.Val.([]domain.GeneratedQuestion)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight for generation: %T", res.Val)
	}
	// Callers own their slice.
	out := make([]domain.GeneratedQuestion, len(questions))
	copy(out, questions)
	return out, nil
}

func (g *CachedQuestionGenerator) lookup(ctx context.Context, key string) ([]domain.GeneratedQuestion, bool) {
	if g.cache == nil {
		return nil, false
	}
	data, err := g.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			g.logger.Warn("Failed to read generation cache", zap.Error(err), zap.String("cache_key", key))
		}
		return nil, false
	}

	var questions []domain.GeneratedQuestion
	if err := gob.NewDecoder(bytes.NewReader([]byte(data))).Decode(&questions); err != nil || len(questions) == 0 {
		g.logger.Warn("Discarding undecodable generation cache entry", zap.Error(err), zap.String("cache_key", key))
		_ = g.cache.Delete(ctx, key)
		return nil, false
	}

	g.logger.Debug("Generation cache hit", zap.String("cache_key", key), zap.Int("questions", len(questions)))
	return questions, true
}

func (g *CachedQuestionGenerator) store(ctx context.Context, key string, questions []domain.GeneratedQuestion) {
	if g.cache == nil {
		return
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(questions); err != nil {
		g.logger.Warn("Failed to encode generation for cache", zap.Error(err))
		return
	}
	if err := g.cache.Set(ctx, key, buf.String(), g.ttl); err != nil {
		g.logger.Warn("Failed to write generation cache", zap.Error(err), zap.String("cache_key", key))
	}
}

var _ domain.QuestionGenerator = (*CachedQuestionGenerator)(nil)
