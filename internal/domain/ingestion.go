package domain

import (
	"context"
	"strings"
)

// MinContentChars is the smallest trimmed text length worth sending to the generator.
const MinContentChars = 20

// DefaultLanguageHint is used for OCR when the caller gives none.
const DefaultLanguageHint = "vie+eng"

// MediaKind is the extraction variant selected for a document.
type MediaKind string

const (
	MediaKindUnknown  MediaKind = ""
	MediaKindDocument MediaKind = "document"
	MediaKindImage    MediaKind = "image"
	MediaKindText     MediaKind = "text"
)

// MediaKindOf maps a declared media type to its extraction variant.
// Parameters such as "; charset=utf-8" are ignored.
func MediaKindOf(mediaType string) MediaKind {
	mt, _, _ := strings.Cut(mediaType, ";")
	mt = strings.ToLower(strings.TrimSpace(mt))
	switch {
	case mt == "application/pdf":
		return MediaKindDocument
	case strings.HasPrefix(mt, "image/") && len(mt) > len("image/"):
		return MediaKindImage
	case mt == "text/plain", mt == "text/markdown":
		return MediaKindText
	default:
		return MediaKindUnknown
	}
}

// RawDocument is an uploaded file as received. It is never persisted.
type RawDocument struct {
	Data         []byte
	MediaType    string
	LanguageHint string
}

// GeneratedQuestion is a candidate produced by the generator.
// An empty Answer means the model supplied none.
type GeneratedQuestion struct {
	Content string
	Options []string
	Answer  string
}

// Resolution is the outcome of asking the resolver for one question's answer.
// A failed resolution carries Err and an empty Answer.
type Resolution struct {
	Answer string
	Err    error
}

// Ok reports whether the resolver produced a usable answer.
func (r Resolution) Ok() bool {
	return r.Err == nil && strings.TrimSpace(r.Answer) != ""
}

// IngestRequest is the input of one ingestion run.
type IngestRequest struct {
	Document     RawDocument
	Target       Target
	MaxQuestions int
}

// IngestResult reports what a successful ingestion persisted.
type IngestResult struct {
	InsertedCount int
	Records       []*Quiz
}

// TextExtractor turns raw document bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc RawDocument) (string, error)
}

// QuestionGenerator asks a generative backend for quiz candidates.
type QuestionGenerator interface {
	Generate(ctx context.Context, text string, maxQuestions int) ([]GeneratedQuestion, error)
}

// AnswerResolver asks a generative backend for the correct option of one question.
type AnswerResolver interface {
	Resolve(ctx context.Context, content string, options []string) (string, error)
}

// TargetValidator checks that the course and lesson of a target exist.
type TargetValidator interface {
	CourseExists(ctx context.Context, courseID string) (bool, error)
	LessonExists(ctx context.Context, lessonID string) (bool, error)
}

// IngestionService runs the whole document-to-quizzes pipeline.
type IngestionService interface {
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}
