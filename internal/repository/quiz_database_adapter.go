package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/repository/models"
	"lms-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const quizColumns = `id "id",
		course_id "course_id",
		lesson_id "lesson_id",
		question "question",
		image_url "image_url",
		options "options",
		correct_answers "correct_answers",
		created_at "created_at",
		updated_at "updated_at"`

const insertQuizQuery = `INSERT INTO quizzes (
		id, course_id, lesson_id, question, image_url,
		options, correct_answers, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db  *sqlx.DB
	txm domain.TransactionManager
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB, txm domain.TransactionManager) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db, txm: txm}
}

// BulkInsert validates every quiz and inserts them in a single transaction.
// IDs and timestamps are written back to the quizzes only after commit.
func (a *QuizDatabaseAdapter) BulkInsert(ctx context.Context, quizzes []*domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	for i, q := range quizzes {
		if q == nil {
			return fmt.Errorf("cannot insert nil quiz at index %d", i)
		}
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz %d failed validation: %w", i, err)
		}
	}

	now := time.Now()
	rows := make([]*models.Quiz, len(quizzes))
	for i, q := range quizzes {
		rows[i] = toModelQuiz(q)
		rows[i].ID = util.NewULID()
		rows[i].CreatedAt = now
		rows[i].UpdatedAt = now
	}

	err := a.txm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, a.db)
		for _, row := range rows {
			if err := insertQuiz(txCtx, exec, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to bulk insert %d quizzes: %w", len(quizzes), err)
	}

	for i, q := range quizzes {
		q.ID = rows[i].ID
		q.CreatedAt = now
		q.UpdatedAt = now
	}
	return nil
}

// Create inserts a single quiz.
func (a *QuizDatabaseAdapter) Create(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	row := toModelQuiz(quiz)
	row.ID = util.NewULID()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt

	if err := insertQuiz(ctx, GetExecutor(ctx, a.db), row); err != nil {
		return err
	}

	quiz.ID = row.ID
	quiz.CreatedAt = row.CreatedAt
	quiz.UpdatedAt = row.UpdatedAt
	return nil
}

func insertQuiz(ctx context.Context, exec DBTX, row *models.Quiz) error {
	_, err := exec.ExecContext(ctx, insertQuizQuery,
		row.ID,
		row.CourseID,
		row.LessonID,
		row.Question,
		row.ImageURL,
		row.Options,
		row.CorrectAnswers,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the quiz does not exist.
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = :1`

	if err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

// List returns one page of quizzes, newest first, and the total matching count.
func (a *QuizDatabaseAdapter) List(ctx context.Context, filter domain.QuizFilter) ([]*domain.Quiz, int, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		conds = append(conds, fmt.Sprintf("course_id = :%d", len(args)))
	}
	if filter.LessonID != "" {
		args = append(args, filter.LessonID)
		conds = append(conds, fmt.Sprintf("lesson_id = :%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
		conds = append(conds, fmt.Sprintf(`LOWER(question) LIKE :%d ESCAPE '\'`, len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	exec := GetExecutor(ctx, a.db)

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM quizzes`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	pageArgs := append(append([]interface{}{}, args...), (page-1)*limit, limit)
	query := fmt.Sprintf(`SELECT %s FROM quizzes%s ORDER BY created_at DESC OFFSET :%d ROWS FETCH NEXT :%d ROWS ONLY`,
		quizColumns, where, len(args)+1, len(args)+2)

	var rows []models.Quiz
	if err := exec.SelectContext(ctx, &rows, query, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, total, nil
}

// Update rewrites the mutable columns of an existing quiz.
func (a *QuizDatabaseAdapter) Update(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot update nil quiz")
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	row := toModelQuiz(quiz)
	row.UpdatedAt = time.Now()

	query := `UPDATE quizzes SET
		question = :1,
		image_url = :2,
		options = :3,
		correct_answers = :4,
		updated_at = :5
	WHERE id = :6`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		row.Question,
		row.ImageURL,
		row.Options,
		row.CorrectAnswers,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}

	quiz.UpdatedAt = row.UpdatedAt
	return nil
}

func (a *QuizDatabaseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM quizzes WHERE id = :1`, id); err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	return nil
}

func (a *QuizDatabaseAdapter) CountByLesson(ctx context.Context, lessonID string) (int, error) {
	var total int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &total, `SELECT COUNT(*) FROM quizzes WHERE lesson_id = :1`, lessonID); err != nil {
		return 0, fmt.Errorf("failed to count quizzes for lesson %s: %w", lessonID, err)
	}
	return total, nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	opts := make(models.OptionSlice, len(q.Options))
	for i, o := range q.Options {
		opts[i] = models.Option{Text: o.Text, ImageURL: o.ImageURL}
	}
	return &models.Quiz{
		ID:             q.ID,
		CourseID:       q.CourseID,
		LessonID:       q.LessonID,
		Question:       q.Question,
		ImageURL:       util.StringToNullString(q.ImageURL),
		Options:        opts,
		CorrectAnswers: models.StringSlice(q.CorrectAnswers),
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	opts := make([]domain.QuizOption, len(m.Options))
	for i, o := range m.Options {
		opts[i] = domain.QuizOption{Text: o.Text, ImageURL: o.ImageURL}
	}
	return &domain.Quiz{
		ID:             m.ID,
		CourseID:       m.CourseID,
		LessonID:       m.LessonID,
		Question:       m.Question,
		ImageURL:       m.ImageURL.String,
		Options:        opts,
		CorrectAnswers: []string(m.CorrectAnswers),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)
