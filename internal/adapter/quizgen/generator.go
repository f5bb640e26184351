package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	DefaultTimeout       = 60 * time.Second
	DefaultMaxInputChars = 15000

	generationTemperature = 0.2
)

const generationPrompt = `You write multiple-choice quiz questions for a course lesson.
Read the study material below and write at most %d questions that test its key ideas.

Respond with a JSON array only: no prose, no markdown fences. Each element is an object:
{"content": "question text", "options": ["option 1", "option 2", "option 3", "option 4"], "answer": "exact text of the correct option"}

Rules:
1. Each question has between 2 and 6 options with distinct text.
2. "answer" repeats one option verbatim. Leave it out if unsure.
3. Use the same language as the material.

Material:
"""
%s
"""`

// LLMQuestionGenerator implements domain.QuestionGenerator on any langchaingo model.
type LLMQuestionGenerator struct {
	model         llms.Model
	logger        *zap.Logger
	timeout       time.Duration
	maxInputChars int
}

// NewLLMQuestionGenerator accepts a nil model; Generate then reports a configuration error.
func NewLLMQuestionGenerator(model llms.Model, timeout time.Duration, maxInputChars int, logger *zap.Logger) *LLMQuestionGenerator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	return &LLMQuestionGenerator{
		model:         model,
		logger:        logger,
		timeout:       timeout,
		maxInputChars: maxInputChars,
	}
}

// Generate asks the model for up to maxQuestions candidates built from text.
// The result never holds more than maxQuestions items and may be empty.
func (g *LLMQuestionGenerator) Generate(ctx context.Context, text string, maxQuestions int) ([]domain.GeneratedQuestion, error) {
	if g.model == nil {
		return nil, domain.NewConfigurationError("generation backend is not configured")
	}
	if maxQuestions <= 0 {
		return []domain.GeneratedQuestion{}, nil
	}

	prompt := fmt.Sprintf(generationPrompt, maxQuestions, truncateRunes(text, g.maxInputChars))

	raw, err := callModel(ctx, g.model, prompt, g.timeout,
		llms.WithTemperature(generationTemperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		g.logger.Error("Question generation call failed", zap.Error(err), zap.Duration("timeout", g.timeout))
		return nil, domain.NewGenerationBackendError(err)
	}

	candidates, strategy := ParseCandidates(raw)
	if len(candidates) > maxQuestions {
		candidates = candidates[:maxQuestions]
	}

	g.logger.Info("Parsed generated questions",
		zap.String("strategy", strategy),
		zap.Int("candidates", len(candidates)),
		zap.Int("max_questions", maxQuestions))
	if strategy == "none" {
		g.logger.Warn("Model response contained no question array", zap.String("response_head", truncateRunes(raw, 200)))
	}

	return candidates, nil
}

// callModel runs one single-prompt completion under its own timeout.
func callModel(ctx context.Context, model llms.Model, prompt string, timeout time.Duration, opts ...llms.CallOption) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := llms.GenerateFromSinglePrompt(callCtx, model, prompt, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("LLM request timed out after %s: %w", timeout, err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return resp, nil
}

// truncateRunes keeps the first n characters of s without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

var _ domain.QuestionGenerator = (*LLMQuestionGenerator)(nil)
