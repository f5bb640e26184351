package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"

	// Quiz specific errors
	ErrQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"
	ErrInvalidQuiz  ErrorCode = "INVALID_QUIZ"

	// Ingestion errors
	ErrConfiguration        ErrorCode = "CONFIGURATION_ERROR"
	ErrUnsupportedMediaKind ErrorCode = "UNSUPPORTED_MEDIA_KIND"
	ErrInsufficientContent  ErrorCode = "INSUFFICIENT_CONTENT"
	ErrTargetNotFound       ErrorCode = "TARGET_NOT_FOUND"
	ErrGenerationBackend    ErrorCode = "GENERATION_BACKEND_ERROR"
	ErrNoValidQuestions     ErrorCode = "NO_VALID_QUESTIONS"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports a match when target is a DomainError carrying the same code,
// so callers can write errors.Is(err, domain.ErrNoValidQuestionsSentinel).
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrConfigurationSentinel        = &DomainError{Code: ErrConfiguration}
	ErrUnsupportedMediaKindSentinel = &DomainError{Code: ErrUnsupportedMediaKind}
	ErrInsufficientContentSentinel  = &DomainError{Code: ErrInsufficientContent}
	ErrTargetNotFoundSentinel       = &DomainError{Code: ErrTargetNotFound}
	ErrGenerationBackendSentinel    = &DomainError{Code: ErrGenerationBackend}
	ErrNoValidQuestionsSentinel     = &DomainError{Code: ErrNoValidQuestions}
	ErrQuizNotFoundSentinel         = &DomainError{Code: ErrQuizNotFound}
)

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(ErrForbidden, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewInvalidQuizError(message string) *DomainError {
	return NewError(ErrInvalidQuiz, message, nil)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(ErrConfiguration, message, nil)
}

func NewUnsupportedMediaKindError(mediaType string) *DomainError {
	return NewError(ErrUnsupportedMediaKind, fmt.Sprintf("Unsupported media type: %q", mediaType), nil)
}

func NewInsufficientContentError(length int) *DomainError {
	return NewError(ErrInsufficientContent, fmt.Sprintf("Extracted text too short (%d characters)", length), nil)
}

func NewTargetNotFoundError(kind, id string) *DomainError {
	return NewError(ErrTargetNotFound, fmt.Sprintf("%s not found: %s", kind, id), nil)
}

func NewGenerationBackendError(err error) *DomainError {
	return NewError(ErrGenerationBackend, "Generation backend failed", err)
}

func NewNoValidQuestionsError() *DomainError {
	return NewError(ErrNoValidQuestions, "No valid questions could be generated from the document", nil)
}
