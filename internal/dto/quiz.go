package dto

import (
	"time"

	"lms-quiz/internal/domain"
)

// ImportQuizzesRequest is the multipart form accompanying an uploaded document.
type ImportQuizzesRequest struct {
	CourseID     string `form:"course_id" validate:"required,max=64"`
	LessonID     string `form:"lesson_id" validate:"required,max=64"`
	MaxQuestions int    `form:"max_questions" validate:"omitempty,min=1,max=50"`
	Lang         string `form:"lang" validate:"omitempty,max=64"`
}

// ImportQuizzesResponse reports the quizzes created from a document.
type ImportQuizzesResponse struct {
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Items   []QuizResponse `json:"items"`
}

// ListQuizzesQuery holds the listing filters and paging.
type ListQuizzesQuery struct {
	CourseID string `query:"course_id" validate:"omitempty,max=64"`
	LessonID string `query:"lesson_id" validate:"omitempty,max=64"`
	Q        string `query:"q" validate:"omitempty,max=200"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// QuizOptionResponse is one option of a quiz
type QuizOptionResponse struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// QuizResponse represents a quiz in the API response
type QuizResponse struct {
	ID             string               `json:"id"`
	CourseID       string               `json:"course_id"`
	LessonID       string               `json:"lesson_id"`
	Question       string               `json:"question"`
	ImageURL       string               `json:"image_url,omitempty"`
	Options        []QuizOptionResponse `json:"options"`
	CorrectAnswers []string             `json:"correct_answers"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// QuizEnvelope wraps a single quiz.
type QuizEnvelope struct {
	Quiz QuizResponse `json:"quiz"`
}

// ListQuizzesResponse is one page of quizzes.
type ListQuizzesResponse struct {
	Items []QuizResponse `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// CreateQuizRequest is an instructor-authored quiz. Options may be plain strings or
// {text, imageUrl} objects; either correct_answers or answer names the right option(s).
type CreateQuizRequest struct {
	CourseID       string               `json:"course_id" validate:"required,max=64"`
	LessonID       string               `json:"lesson_id" validate:"required,max=64"`
	Question       string               `json:"question" validate:"required_without=Content,max=4000"`
	Content        string               `json:"content" validate:"max=4000"`
	ImageURL       string               `json:"image_url" validate:"omitempty,url"`
	Options        []domain.OptionInput `json:"options" validate:"required,min=2,max=20"`
	CorrectAnswers []string             `json:"correct_answers" validate:"omitempty,max=20"`
	Answer         string               `json:"answer" validate:"max=1000"`
}

// Payload converts the request to the loose quiz shape the normalizer accepts.
func (r CreateQuizRequest) Payload() domain.QuizPayload {
	return domain.QuizPayload{
		Question:       r.Question,
		Content:        r.Content,
		ImageURL:       r.ImageURL,
		Options:        r.Options,
		CorrectAnswers: r.CorrectAnswers,
		Answer:         r.Answer,
	}
}

// UpdateQuizRequest is a partial update; absent fields keep their stored values.
type UpdateQuizRequest struct {
	Question       *string              `json:"question" validate:"omitempty,max=4000"`
	ImageURL       *string              `json:"image_url" validate:"omitempty,max=2048"`
	Options        []domain.OptionInput `json:"options" validate:"omitempty,min=2,max=20"`
	CorrectAnswers []string             `json:"correct_answers" validate:"omitempty,max=20"`
}

// Patch converts the request into a domain.QuizPatch.
func (r UpdateQuizRequest) Patch() domain.QuizPatch {
	return domain.QuizPatch{
		Question:       r.Question,
		ImageURL:       r.ImageURL,
		Options:        r.Options,
		CorrectAnswers: r.CorrectAnswers,
	}
}

// SubmitAnswerRequest is a student's selection for one quiz.
type SubmitAnswerRequest struct {
	Selected        []string `json:"selected" validate:"required,min=1,max=20,dive,max=1000"`
	DurationSeconds *int     `json:"duration_seconds" validate:"omitempty,min=0"`
}

// SubmissionResponse represents a graded submission
type SubmissionResponse struct {
	ID                     string    `json:"id"`
	QuizID                 string    `json:"quiz_id"`
	StudentID              string    `json:"student_id"`
	Selected               []string  `json:"selected"`
	IsCorrect              bool      `json:"is_correct"`
	DurationSeconds        *int      `json:"duration_seconds,omitempty"`
	CorrectAnswersSnapshot []string  `json:"correct_answers_snapshot"`
	CreatedAt              time.Time `json:"created_at"`
}

// SubmitAnswerResponse is returned after grading
type SubmitAnswerResponse struct {
	IsCorrect  bool               `json:"is_correct"`
	Submission SubmissionResponse `json:"submission"`
}

// LessonQuizStatsResponse is the quiz count of a lesson
type LessonQuizStatsResponse struct {
	LessonID string `json:"lesson_id"`
	Total    int    `json:"total"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// NewQuizResponse converts a domain quiz.
func NewQuizResponse(q *domain.Quiz) QuizResponse {
	options := make([]QuizOptionResponse, len(q.Options))
	for i, o := range q.Options {
		options[i] = QuizOptionResponse{Text: o.Text, ImageURL: o.ImageURL}
	}
	answers := q.CorrectAnswers
	if answers == nil {
		answers = []string{}
	}
	return QuizResponse{
		ID:             q.ID,
		CourseID:       q.CourseID,
		LessonID:       q.LessonID,
		Question:       q.Question,
		ImageURL:       q.ImageURL,
		Options:        options,
		CorrectAnswers: answers,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

// NewQuizResponses converts a slice of domain quizzes.
func NewQuizResponses(qs []*domain.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, NewQuizResponse(q))
	}
	return out
}

// NewSubmissionResponse converts a domain submission.
func NewSubmissionResponse(s *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                     s.ID,
		QuizID:                 s.QuizID,
		StudentID:              s.StudentID,
		Selected:               s.Selected,
		IsCorrect:              s.IsCorrect,
		DurationSeconds:        s.DurationSeconds,
		CorrectAnswersSnapshot: s.CorrectAnswersSnapshot,
		CreatedAt:              s.CreatedAt,
	}
}
