package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		// nil is stored as an empty JSON array
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	b, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if b == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// Option is the stored shape of one quiz option.
type Option struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// OptionSlice stores quiz options as a JSON array in a CLOB column.
type OptionSlice []Option

// Value implements the driver.Valuer interface
func (o OptionSlice) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *OptionSlice) Scan(value interface{}) error {
	b, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("OptionSlice Scan: %w", err)
	}
	if b == nil {
		*o = OptionSlice{}
		return nil
	}
	return json.Unmarshal(b, o)
}

// scanBytes returns nil for NULL, empty and "null" values.
func scanBytes(value interface{}) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New("unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

// Quiz is the row shape of the quizzes table.
type Quiz struct {
	ID             string         `db:"id"`
	CourseID       string         `db:"course_id"`
	LessonID       string         `db:"lesson_id"`
	Question       string         `db:"question"`
	ImageURL       sql.NullString `db:"image_url"`
	Options        OptionSlice    `db:"options"`
	CorrectAnswers StringSlice    `db:"correct_answers"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// Submission is the row shape of the quiz_submissions table.
type Submission struct {
	ID                     string        `db:"id"`
	StudentID              string        `db:"student_id"`
	QuizID                 string        `db:"quiz_id"`
	Selected               StringSlice   `db:"selected"`
	IsCorrect              bool          `db:"is_correct"`
	DurationSeconds        sql.NullInt64 `db:"duration_seconds"`
	CorrectAnswersSnapshot StringSlice   `db:"correct_answers_snapshot"`
	CreatedAt              time.Time     `db:"created_at"`
}
