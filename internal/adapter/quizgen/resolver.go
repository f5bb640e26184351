package quizgen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lms-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const resolvePrompt = `Answer the multiple-choice question below.
Reply with the exact text of the single correct option and nothing else: no letter, no explanation.

Question: %s
Options:
%s`

// LLMAnswerResolver implements domain.AnswerResolver on any langchaingo model.
type LLMAnswerResolver struct {
	model   llms.Model
	logger  *zap.Logger
	timeout time.Duration
}

func NewLLMAnswerResolver(model llms.Model, timeout time.Duration, logger *zap.Logger) *LLMAnswerResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LLMAnswerResolver{model: model, logger: logger, timeout: timeout}
}

// Resolve returns the model's pick for the correct option, trimmed.
// The reply is not checked against options here; normalization does that.
func (r *LLMAnswerResolver) Resolve(ctx context.Context, content string, options []string) (string, error) {
	if r.model == nil {
		return "", domain.NewConfigurationError("generation backend is not configured")
	}
	content = strings.TrimSpace(content)
	if content == "" || len(options) < 2 {
		return "", domain.NewInvalidInputError("question needs content and at least 2 options")
	}

	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "%s. %s\n", optionLabel(i), o)
	}
	prompt := fmt.Sprintf(resolvePrompt, content, b.String())

	raw, err := callModel(ctx, r.model, prompt, r.timeout, llms.WithTemperature(0))
	if err != nil {
		r.logger.Warn("Answer resolution call failed", zap.Error(err))
		return "", domain.NewGenerationBackendError(err)
	}

	return cleanReply(raw, options), nil
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// cleanReply trims the reply and undoes the two habits models show despite the
// prompt: answering with the bare label ("B") or echoing the label ("B. Paris").
func cleanReply(raw string, options []string) string {
	reply := strings.Trim(strings.TrimSpace(raw), "\"'`")
	reply = strings.TrimSpace(reply)

	for _, o := range options {
		if reply == strings.TrimSpace(o) {
			return reply
		}
	}
	for i, o := range options {
		label := optionLabel(i)
		if strings.EqualFold(reply, label) || strings.EqualFold(reply, label+".") {
			return strings.TrimSpace(o)
		}
		if rest, ok := strings.CutPrefix(reply, label+". "); ok && strings.TrimSpace(rest) == strings.TrimSpace(o) {
			return strings.TrimSpace(o)
		}
	}
	return reply
}

var _ domain.AnswerResolver = (*LLMAnswerResolver)(nil)
