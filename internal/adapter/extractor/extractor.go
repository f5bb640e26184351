package extractor

import (
	"context"
	"strings"
	"unicode/utf8"

	"lms-quiz/internal/domain"

	"go.uber.org/zap"
)

// Variant extracts text from one media kind.
type Variant interface {
	Extract(ctx context.Context, data []byte, languageHint string) (string, error)
}

// Dispatcher implements domain.TextExtractor by selecting a Variant per media kind.
type Dispatcher struct {
	variants        map[domain.MediaKind]Variant
	defaultLanguage string
	logger          *zap.Logger
}

// NewDispatcher registers the given variants. A kind without a variant is unsupported.
func NewDispatcher(variants map[domain.MediaKind]Variant, defaultLanguage string, logger *zap.Logger) *Dispatcher {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguageHint
	}
	registered := make(map[domain.MediaKind]Variant, len(variants))
	for k, v := range variants {
		if v != nil {
			registered[k] = v
		}
	}
	return &Dispatcher{variants: registered, defaultLanguage: defaultLanguage, logger: logger}
}

// Extract returns the trimmed text of doc. Text shorter than domain.MinContentChars
// characters is reported as insufficient content.
func (d *Dispatcher) Extract(ctx context.Context, doc domain.RawDocument) (string, error) {
	kind := domain.MediaKindOf(doc.MediaType)
	variant, ok := d.variants[kind]
	if !ok {
		return "", domain.NewUnsupportedMediaKindError(doc.MediaType)
	}

	lang := strings.TrimSpace(doc.LanguageHint)
	if lang == "" {
		lang = d.defaultLanguage
	}

	text, err := variant.Extract(ctx, doc.Data, lang)
	if err != nil {
		d.logger.Warn("Text extraction failed",
			zap.String("media_type", doc.MediaType),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return "", err
	}

	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n < domain.MinContentChars {
		return "", domain.NewInsufficientContentError(n)
	}

	d.logger.Info("Extracted text",
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(doc.Data)),
		zap.Int("chars", n))
	return text, nil
}

// Supports reports whether a variant is registered for kind.
func (d *Dispatcher) Supports(kind domain.MediaKind) bool {
	_, ok := d.variants[kind]
	return ok
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ domain.TextExtractor = (*Dispatcher)(nil)
