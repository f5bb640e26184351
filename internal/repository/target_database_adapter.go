package repository

import (
	"context"
	"fmt"

	"lms-quiz/internal/domain"

	"github.com/jmoiron/sqlx"
)

// TargetDatabaseAdapter checks course and lesson existence against the LMS tables.
// It only reads; courses and lessons are owned elsewhere.
type TargetDatabaseAdapter struct {
	db *sqlx.DB
}

func NewTargetDatabaseAdapter(db *sqlx.DB) domain.TargetValidator {
	return &TargetDatabaseAdapter{db: db}
}

func (a *TargetDatabaseAdapter) CourseExists(ctx context.Context, courseID string) (bool, error) {
	return a.exists(ctx, `SELECT COUNT(1) FROM courses WHERE id = :1`, courseID)
}

func (a *TargetDatabaseAdapter) LessonExists(ctx context.Context, lessonID string) (bool, error) {
	return a.exists(ctx, `SELECT COUNT(1) FROM lessons WHERE id = :1`, lessonID)
}

func (a *TargetDatabaseAdapter) exists(ctx context.Context, query, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var n int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &n, query, id); err != nil {
		return false, fmt.Errorf("failed to check existence of %s: %w", id, err)
	}
	return n > 0, nil
}

var _ domain.TargetValidator = (*TargetDatabaseAdapter)(nil)
