package repository

import (
	"context"
	"fmt"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/repository/models"
	"lms-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

type SubmissionDatabaseAdapter struct {
	db *sqlx.DB
}

func NewSubmissionDatabaseAdapter(db *sqlx.DB) domain.SubmissionRepository {
	return &SubmissionDatabaseAdapter{db: db}
}

// Create stores a graded submission and fills in its ID and CreatedAt.
func (a *SubmissionDatabaseAdapter) Create(ctx context.Context, s *domain.Submission) error {
	if s == nil {
		return fmt.Errorf("cannot save nil submission")
	}

	row := models.Submission{
		ID:                     util.NewULID(),
		StudentID:              s.StudentID,
		QuizID:                 s.QuizID,
		Selected:               models.StringSlice(s.Selected),
		IsCorrect:              s.IsCorrect,
		DurationSeconds:        util.IntPtrToNullInt64(s.DurationSeconds),
		CorrectAnswersSnapshot: models.StringSlice(s.CorrectAnswersSnapshot),
		CreatedAt:              time.Now(),
	}

	isCorrect := 0
	if row.IsCorrect {
		isCorrect = 1
	}

	query := `INSERT INTO quiz_submissions (
		id, student_id, quiz_id, selected, is_correct,
		duration_seconds, correct_answers_snapshot, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		row.ID,
		row.StudentID,
		row.QuizID,
		row.Selected,
		isCorrect,
		row.DurationSeconds,
		row.CorrectAnswersSnapshot,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	s.ID = row.ID
	s.CreatedAt = row.CreatedAt
	return nil
}

var _ domain.SubmissionRepository = (*SubmissionDatabaseAdapter)(nil)
