package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}

func storedQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:             "01J9Z7Q8F5V2C3M4N5P6Q7R8S9",
		CourseID:       "course-1",
		LessonID:       "lesson-1",
		Question:       "Which are primary colors?",
		Options:        []domain.QuizOption{{Text: "Red"}, {Text: "Green"}, {Text: "Blue"}, {Text: "Purple"}},
		CorrectAnswers: []string{"Red", "Blue"},
		CreatedAt:      time.Now().Add(-time.Hour),
		UpdatedAt:      time.Now().Add(-time.Hour),
	}
}

type quizMocks struct {
	repo        *MockQuizRepository
	submissions *MockSubmissionRepository
	targets     *MockTargetValidator
}

func newQuizFixture() (domain.QuizService, *quizMocks) {
	m := &quizMocks{
		repo:        new(MockQuizRepository),
		submissions: new(MockSubmissionRepository),
		targets:     new(MockTargetValidator),
	}
	return NewQuizService(m.repo, m.submissions, m.targets), m
}

func TestQuizService_ListQuizzes(t *testing.T) {
	svc, m := newQuizFixture()
	m.repo.On("List", mock.Anything, domain.QuizFilter{LessonID: "lesson-1", Search: "color", Page: 2, Limit: 20}).
		Return([]*domain.Quiz{storedQuiz()}, 41, nil)

	page, err := svc.ListQuizzes(context.Background(), domain.QuizFilter{LessonID: "lesson-1", Search: "  color ", Page: 2})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
}

func TestQuizService_ListQuizzes_ClampsPaging(t *testing.T) {
	svc, m := newQuizFixture()
	m.repo.On("List", mock.Anything, domain.QuizFilter{Page: 1, Limit: 100}).Return(nil, 0, nil)

	page, err := svc.ListQuizzes(context.Background(), domain.QuizFilter{Page: -1, Limit: 5000})

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Pages)
}

func TestQuizService_GetQuiz(t *testing.T) {
	svc, m := newQuizFixture()
	m.repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)
	m.repo.On("GetByID", mock.Anything, "broken").Return(nil, errors.New("db down"))

	_, err := svc.GetQuiz(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrQuizNotFoundSentinel)

	_, err = svc.GetQuiz(context.Background(), "broken")
	assert.Equal(t, domain.ErrInternal, domain.CodeOf(err))
}

func TestQuizService_CreateQuiz(t *testing.T) {
	svc, m := newQuizFixture()
	m.targets.On("CourseExists", mock.Anything, "course-1").Return(true, nil)
	m.targets.On("LessonExists", mock.Anything, "lesson-1").Return(true, nil)
	m.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Quiz")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Quiz).ID = "new-id" }).
		Return(nil)

	payload := domain.QuizPayload{
		Content: "  Capital of Vietnam? ",
		Options: []domain.OptionInput{{Text: "Hanoi"}, {Text: " Hue "}, {Text: "Hanoi"}, {Text: ""}},
		Answer:  "Hanoi",
	}
	quiz, err := svc.CreateQuiz(context.Background(), domain.Target{CourseID: "course-1", LessonID: "lesson-1"}, payload)

	require.NoError(t, err)
	assert.Equal(t, "new-id", quiz.ID)
	assert.Equal(t, "Capital of Vietnam?", quiz.Question)
	assert.Equal(t, []domain.QuizOption{{Text: "Hanoi"}, {Text: "Hue"}}, quiz.Options)
	assert.Equal(t, []string{"Hanoi"}, quiz.CorrectAnswers)
}

func TestQuizService_CreateQuiz_Invalid(t *testing.T) {
	svc, m := newQuizFixture()
	m.targets.On("CourseExists", mock.Anything, "course-1").Return(true, nil)
	m.targets.On("LessonExists", mock.Anything, "lesson-1").Return(true, nil)

	payload := domain.QuizPayload{
		Question:       "Pick one",
		Options:        []domain.OptionInput{{Text: "A"}, {Text: "B"}},
		CorrectAnswers: []string{"C"},
	}
	_, err := svc.CreateQuiz(context.Background(), domain.Target{CourseID: "course-1", LessonID: "lesson-1"}, payload)

	assert.Equal(t, domain.ErrInvalidQuiz, domain.CodeOf(err))
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_CreateQuiz_TargetMissing(t *testing.T) {
	svc, m := newQuizFixture()
	m.targets.On("CourseExists", mock.Anything, "course-x").Return(false, nil)
	m.targets.On("LessonExists", mock.Anything, "lesson-1").Return(true, nil)

	_, err := svc.CreateQuiz(context.Background(), domain.Target{CourseID: "course-x", LessonID: "lesson-1"}, domain.QuizPayload{})

	assert.ErrorIs(t, err, domain.ErrTargetNotFoundSentinel)
}

func TestQuizService_UpdateQuiz(t *testing.T) {
	svc, m := newQuizFixture()
	existing := storedQuiz()
	m.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	m.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Quiz")).Return(nil)

	question := " Which are warm colors? "
	quiz, err := svc.UpdateQuiz(context.Background(), existing.ID, domain.QuizPatch{
		Question:       &question,
		CorrectAnswers: []string{"Red", "Purple", "Orange"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Which are warm colors?", quiz.Question)
	assert.Len(t, quiz.Options, 4)
	assert.Equal(t, []string{"Red", "Purple"}, quiz.CorrectAnswers)
	assert.WithinDuration(t, time.Now(), quiz.UpdatedAt, time.Second)
}

func TestQuizService_UpdateQuiz_OptionsDropStaleAnswers(t *testing.T) {
	svc, m := newQuizFixture()
	existing := storedQuiz()
	m.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := svc.UpdateQuiz(context.Background(), existing.ID, domain.QuizPatch{
		Options: []domain.OptionInput{{Text: "Cyan"}, {Text: "Magenta"}},
	})

	assert.Equal(t, domain.ErrInvalidQuiz, domain.CodeOf(err))
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestQuizService_DeleteQuiz(t *testing.T) {
	svc, m := newQuizFixture()
	m.repo.On("GetByID", mock.Anything, "gone").Return(nil, nil)
	m.repo.On("GetByID", mock.Anything, "present").Return(storedQuiz(), nil)
	m.repo.On("Delete", mock.Anything, "present").Return(nil)

	assert.ErrorIs(t, svc.DeleteQuiz(context.Background(), "gone"), domain.ErrQuizNotFoundSentinel)
	assert.NoError(t, svc.DeleteQuiz(context.Background(), "present"))
	m.repo.AssertCalled(t, "Delete", mock.Anything, "present")
}

func TestQuizService_SubmitAnswer(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact set", []string{"Blue", "Red"}, true},
		{"duplicates and padding", []string{" Red", "Blue ", "Red"}, true},
		{"subset", []string{"Red"}, false},
		{"superset", []string{"Red", "Blue", "Green"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newQuizFixture()
			quiz := storedQuiz()
			m.repo.On("GetByID", mock.Anything, quiz.ID).Return(quiz, nil)
			m.submissions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)

			duration := 12
			sub, err := svc.SubmitAnswer(context.Background(), domain.SubmitRequest{
				QuizID:          quiz.ID,
				StudentID:       "student-1",
				Selected:        tt.selected,
				DurationSeconds: &duration,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, sub.IsCorrect)
			assert.Equal(t, []string{"Red", "Blue"}, sub.CorrectAnswersSnapshot)
			assert.Equal(t, "student-1", sub.StudentID)
			assert.Equal(t, 12, *sub.DurationSeconds)
		})
	}
}

func TestQuizService_SubmitAnswer_Rejects(t *testing.T) {
	svc, m := newQuizFixture()
	m.repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.SubmitAnswer(context.Background(), domain.SubmitRequest{QuizID: "q", StudentID: "s"})
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))

	_, err = svc.SubmitAnswer(context.Background(), domain.SubmitRequest{QuizID: "q", Selected: []string{"a"}})
	assert.Equal(t, domain.ErrUnauthorized, domain.CodeOf(err))

	_, err = svc.SubmitAnswer(context.Background(), domain.SubmitRequest{QuizID: "missing", StudentID: "s", Selected: []string{"a"}})
	assert.ErrorIs(t, err, domain.ErrQuizNotFoundSentinel)

	m.repo.On("GetByID", mock.Anything, "blank").Return(storedQuiz(), nil)
	_, err = svc.SubmitAnswer(context.Background(), domain.SubmitRequest{QuizID: "blank", StudentID: "s", Selected: []string{" ", ""}})
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
	m.submissions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_LessonStats(t *testing.T) {
	svc, m := newQuizFixture()
	m.repo.On("CountByLesson", mock.Anything, "lesson-1").Return(7, nil)

	stats, err := svc.LessonStats(context.Background(), "lesson-1")

	require.NoError(t, err)
	assert.Equal(t, &domain.LessonQuizStats{LessonID: "lesson-1", Total: 7}, stats)
}
