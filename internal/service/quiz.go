package service

import (
	"context"
	"strings"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// quizService implements domain.QuizService
type quizService struct {
	repo        domain.QuizRepository
	submissions domain.SubmissionRepository
	targets     domain.TargetValidator
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	submissions domain.SubmissionRepository,
	targets domain.TargetValidator,
) domain.QuizService {
	return &quizService{
		repo:        repo,
		submissions: submissions,
		targets:     targets,
	}
}

// ListQuizzes implements domain.QuizService
func (s *quizService) ListQuizzes(ctx context.Context, filter domain.QuizFilter) (*domain.QuizPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	if items == nil {
		items = []*domain.Quiz{}
	}

	return &domain.QuizPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

// GetQuiz implements domain.QuizService
func (s *quizService) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return quiz, nil
}

// CreateQuiz normalizes an instructor-authored payload and stores it.
func (s *quizService) CreateQuiz(ctx context.Context, target domain.Target, payload domain.QuizPayload) (*domain.Quiz, error) {
	if err := checkTarget(ctx, s.targets, target); err != nil {
		return nil, err
	}

	normalized := domain.NormalizeQuizPayload(payload)
	if err := invalidReason(normalized); err != nil {
		return nil, err
	}

	quiz := domain.NewQuiz(target, normalized)
	if err := s.repo.Create(ctx, quiz); err != nil {
		if domain.CodeOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to create quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("lesson_id", quiz.LessonID))
	return quiz, nil
}

// UpdateQuiz merges patch into the stored quiz and re-normalizes the result.
func (s *quizService) UpdateQuiz(ctx context.Context, id string, patch domain.QuizPatch) (*domain.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := domain.NormalizedQuiz{
		Question:       quiz.Question,
		ImageURL:       quiz.ImageURL,
		Options:        quiz.Options,
		CorrectAnswers: quiz.CorrectAnswers,
	}.Payload()
	if patch.Question != nil {
		payload.Question = *patch.Question
	}
	if patch.ImageURL != nil {
		payload.ImageURL = *patch.ImageURL
	}
	if patch.Options != nil {
		payload.Options = patch.Options
	}
	if patch.CorrectAnswers != nil {
		payload.CorrectAnswers = patch.CorrectAnswers
	}

	normalized := domain.NormalizeQuizPayload(payload)
	if err := invalidReason(normalized); err != nil {
		return nil, err
	}

	quiz.Question = normalized.Question
	quiz.ImageURL = normalized.ImageURL
	quiz.Options = normalized.Options
	quiz.CorrectAnswers = normalized.CorrectAnswers
	quiz.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, quiz); err != nil {
		if domain.CodeOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to update quiz", err)
	}
	return quiz, nil
}

// DeleteQuiz implements domain.QuizService
func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	if _, err := s.GetQuiz(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	logger.Get().Info("Quiz deleted", zap.String("quiz_id", id))
	return nil
}

// SubmitAnswer grades a selection against the quiz's correct answers and records it.
// The selection is correct only when it equals the set of correct answers.
func (s *quizService) SubmitAnswer(ctx context.Context, req domain.SubmitRequest) (*domain.Submission, error) {
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, domain.NewUnauthorizedError("Student identity is required")
	}
	if len(req.Selected) == 0 {
		return nil, domain.NewInvalidInputError("At least one option must be selected")
	}
	if req.DurationSeconds != nil && *req.DurationSeconds < 0 {
		return nil, domain.NewInvalidInputError("Duration must not be negative")
	}

	quiz, err := s.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(req.Selected))
	seen := make(map[string]struct{}, len(req.Selected))
	for _, sel := range req.Selected {
		sel = strings.TrimSpace(sel)
		if _, dup := seen[sel]; dup || sel == "" {
			continue
		}
		seen[sel] = struct{}{}
		selected = append(selected, sel)
	}
	if len(selected) == 0 {
		return nil, domain.NewInvalidInputError("At least one option must be selected")
	}

	snapshot := make([]string, len(quiz.CorrectAnswers))
	copy(snapshot, quiz.CorrectAnswers)

	submission := &domain.Submission{
		StudentID:              req.StudentID,
		QuizID:                 quiz.ID,
		Selected:               selected,
		IsCorrect:              quiz.IsCorrectSelection(selected),
		DurationSeconds:        req.DurationSeconds,
		CorrectAnswersSnapshot: snapshot,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, domain.NewInternalError("Failed to save submission", err)
	}
	return submission, nil
}

// LessonStats implements domain.QuizService
func (s *quizService) LessonStats(ctx context.Context, lessonID string) (*domain.LessonQuizStats, error) {
	total, err := s.repo.CountByLesson(ctx, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count quizzes", err)
	}
	return &domain.LessonQuizStats{LessonID: lessonID, Total: total}, nil
}

// invalidReason explains why a normalized quiz cannot be stored, or returns nil.
func invalidReason(n domain.NormalizedQuiz) error {
	switch {
	case n.Question == "":
		return domain.NewInvalidQuizError("question is required")
	case len(n.Options) < 2:
		return domain.NewInvalidQuizError("at least 2 distinct non-empty options are required")
	case len(n.CorrectAnswers) < 1:
		return domain.NewInvalidQuizError("at least 1 correct answer matching an option is required")
	}
	return nil
}

// checkTarget looks up the course and the lesson concurrently.
func checkTarget(ctx context.Context, targets domain.TargetValidator, target domain.Target) error {
	var courseOK, lessonOK bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ok, err := targets.CourseExists(gctx, target.CourseID)
		courseOK = ok
		return err
	})
	g.Go(func() error {
		ok, err := targets.LessonExists(gctx, target.LessonID)
		lessonOK = ok
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.NewInternalError("Failed to look up target", err)
	}
	if !courseOK {
		return domain.NewTargetNotFoundError("course", target.CourseID)
	}
	if !lessonOK {
		return domain.NewTargetNotFoundError("lesson", target.LessonID)
	}
	return nil
}

var _ domain.QuizService = (*quizService)(nil)
