package validation

import (
	"errors"
	"testing"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field] = e.Code
	}
	return out
}

func TestValidator_ImportRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(dto.ImportQuizzesRequest{CourseID: "c1", LessonID: "l1"}))

	fields := fieldsOf(t, v.Struct(dto.ImportQuizzesRequest{MaxQuestions: 51}))
	assert.Equal(t, "MISSING_FIELD", fields["course_id"])
	assert.Equal(t, "MISSING_FIELD", fields["lesson_id"])
	assert.Equal(t, "OUT_OF_RANGE", fields["max_questions"])
}

func TestValidator_SubmitRequest(t *testing.T) {
	v := NewValidator()
	negative := -1

	assert.NoError(t, v.Struct(dto.SubmitAnswerRequest{Selected: []string{"A"}}))

	fields := fieldsOf(t, v.Struct(dto.SubmitAnswerRequest{DurationSeconds: &negative}))
	assert.Equal(t, "MISSING_FIELD", fields["selected"])
	assert.Equal(t, "OUT_OF_RANGE", fields["duration_seconds"])
}

func TestValidator_CreateRequest(t *testing.T) {
	v := NewValidator()

	err := v.Struct(dto.CreateQuizRequest{
		CourseID: "c1",
		LessonID: "l1",
		Content:  "What is 2+2?",
		Options:  []domain.OptionInput{{Text: "3"}, {Text: "4"}},
		Answer:   "4",
	})
	assert.NoError(t, err)

	fields := fieldsOf(t, v.Struct(dto.CreateQuizRequest{
		CourseID: "c1",
		LessonID: "l1",
		ImageURL: "not a url",
		Options:  []domain.OptionInput{{Text: "only"}},
	}))
	assert.Equal(t, "MISSING_FIELD", fields["question"])
	assert.Equal(t, "INVALID_FORMAT", fields["image_url"])
	assert.Equal(t, "OUT_OF_RANGE", fields["options"])
}

func TestValidator_ValidateQuizID(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateQuizID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.Equal(t, "INVALID_FORMAT", fieldsOf(t, v.ValidateQuizID("abc"))["id"])
	assert.Equal(t, "MISSING_FIELD", fieldsOf(t, v.ValidateQuizID(" "))["id"])
}
