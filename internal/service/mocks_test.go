package service

import (
	"context"

	"lms-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) BulkInsert(ctx context.Context, quizzes []*domain.Quiz) error {
	args := m.Called(ctx, quizzes)
	return args.Error(0)
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context, filter domain.QuizFilter) ([]*domain.Quiz, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Quiz), args.Int(1), args.Error(2)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) CountByLesson(ctx context.Context, lessonID string) (int, error) {
	args := m.Called(ctx, lessonID)
	return args.Int(0), args.Error(1)
}

// --- MockSubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// --- MockTargetValidator ---
type MockTargetValidator struct {
	mock.Mock
}

func (m *MockTargetValidator) CourseExists(ctx context.Context, courseID string) (bool, error) {
	args := m.Called(ctx, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTargetValidator) LessonExists(ctx context.Context, lessonID string) (bool, error) {
	args := m.Called(ctx, lessonID)
	return args.Bool(0), args.Error(1)
}

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, doc domain.RawDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, text string, maxQuestions int) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, text, maxQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}

// --- MockAnswerResolver ---
type MockAnswerResolver struct {
	mock.Mock
}

func (m *MockAnswerResolver) Resolve(ctx context.Context, content string, options []string) (string, error) {
	args := m.Called(ctx, content, options)
	return args.String(0), args.Error(1)
}
