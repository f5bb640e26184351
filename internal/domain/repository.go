package domain

import "context"

// QuizRepository defines quiz persistence
type QuizRepository interface {
	// BulkInsert persists all quizzes in one unit of work; either all are stored or none.
	BulkInsert(ctx context.Context, quizzes []*Quiz) error
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	List(ctx context.Context, filter QuizFilter) ([]*Quiz, int, error)
	Update(ctx context.Context, quiz *Quiz) error
	Delete(ctx context.Context, id string) error
	CountByLesson(ctx context.Context, lessonID string) (int, error)
}

// SubmissionRepository defines quiz submission persistence
type SubmissionRepository interface {
	Create(ctx context.Context, submission *Submission) error
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
