package domain

import "context"

// QuizService defines the quiz management operations around ingestion
type QuizService interface {
	ListQuizzes(ctx context.Context, filter QuizFilter) (*QuizPage, error)
	GetQuiz(ctx context.Context, id string) (*Quiz, error)
	CreateQuiz(ctx context.Context, target Target, payload QuizPayload) (*Quiz, error)
	UpdateQuiz(ctx context.Context, id string, patch QuizPatch) (*Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
	SubmitAnswer(ctx context.Context, req SubmitRequest) (*Submission, error)
	LessonStats(ctx context.Context, lessonID string) (*LessonQuizStats, error)
}

// QuizPatch carries a partial update. Nil fields are left unchanged.
type QuizPatch struct {
	Question       *string
	ImageURL       *string
	Options        []OptionInput
	CorrectAnswers []string
}

// SubmitRequest is a student's answer to one quiz.
type SubmitRequest struct {
	QuizID          string
	StudentID       string
	Selected        []string
	DurationSeconds *int
}
