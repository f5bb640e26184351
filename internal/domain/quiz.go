package domain

import (
	"strings"
	"time"
)

// QuizOption is one selectable answer of a multiple-choice quiz.
type QuizOption struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Quiz represents a persisted multiple-choice quiz attached to a lesson
type Quiz struct {
	ID             string
	CourseID       string
	LessonID       string
	Question       string
	ImageURL       string
	Options        []QuizOption
	CorrectAnswers []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewQuiz builds a Quiz for the target from a normalized payload.
func NewQuiz(target Target, n NormalizedQuiz) *Quiz {
	now := time.Now()
	return &Quiz{
		CourseID:       target.CourseID,
		LessonID:       target.LessonID,
		Question:       n.Question,
		ImageURL:       n.ImageURL,
		Options:        n.Options,
		CorrectAnswers: n.CorrectAnswers,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks the persisted-record invariants.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.CourseID) == "" {
		return NewInvalidQuizError("course is required")
	}
	if strings.TrimSpace(q.LessonID) == "" {
		return NewInvalidQuizError("lesson is required")
	}
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidQuizError("question is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidQuizError("at least 2 options are required")
	}
	texts := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if strings.TrimSpace(o.Text) == "" {
			return NewInvalidQuizError("option text must not be empty")
		}
		if _, dup := texts[o.Text]; dup {
			return NewInvalidQuizError("option texts must be unique")
		}
		texts[o.Text] = struct{}{}
	}
	if len(q.CorrectAnswers) < 1 {
		return NewInvalidQuizError("at least 1 correct answer is required")
	}
	for _, a := range q.CorrectAnswers {
		if _, ok := texts[a]; !ok {
			return NewInvalidQuizError("correct answer does not match any option: " + a)
		}
	}
	return nil
}

// OptionTexts returns the text of every option in order.
func (q *Quiz) OptionTexts() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Text
	}
	return out
}

// IsCorrectSelection reports whether selected equals the set of correct answers.
// Order and duplicates in selected are ignored.
func (q *Quiz) IsCorrectSelection(selected []string) bool {
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		if s = strings.TrimSpace(s); s != "" {
			chosen[s] = struct{}{}
		}
	}
	correct := make(map[string]struct{}, len(q.CorrectAnswers))
	for _, a := range q.CorrectAnswers {
		correct[a] = struct{}{}
	}
	if len(chosen) != len(correct) {
		return false
	}
	for s := range chosen {
		if _, ok := correct[s]; !ok {
			return false
		}
	}
	return true
}

// Target identifies the course and lesson new quizzes are attached to.
type Target struct {
	CourseID string
	LessonID string
}

// QuizFilter narrows a quiz listing. Zero values mean "no filter".
type QuizFilter struct {
	CourseID string
	LessonID string
	Search   string
	Page     int
	Limit    int
}

// QuizPage is one page of a quiz listing.
type QuizPage struct {
	Items []*Quiz
	Total int
	Page  int
	Pages int
}

// Submission records a student's attempt at a quiz.
type Submission struct {
	ID                     string
	StudentID              string
	QuizID                 string
	Selected               []string
	IsCorrect              bool
	DurationSeconds        *int
	CorrectAnswersSnapshot []string
	CreatedAt              time.Time
}

// LessonQuizStats is the per-lesson quiz count.
type LessonQuizStats struct {
	LessonID string
	Total    int
}
