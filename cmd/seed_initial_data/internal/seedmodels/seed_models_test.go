package seedmodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLesson_Build(t *testing.T) {
	raw := `{
		"course_id": "course-bio",
		"lesson_id": "lesson-cells",
		"quizzes": [
			{"question": "Which organelle produces ATP?", "options": ["Nucleus", "Mitochondria", "Ribosome"], "answer": "Mitochondria"},
			{"question": "Pick the plant pigment", "options": [{"text": "Chlorophyll"}, "Keratin"], "correctAnswers": ["Chlorophyll"]},
			{"question": "Missing options", "options": ["Only one"], "answer": "A"},
			{"question": "Answer not in options", "options": ["Yes", "No"], "answer": "Maybe"}
		]
	}`

	var lesson SeedLesson
	require.NoError(t, json.Unmarshal([]byte(raw), &lesson))

	quizzes, skipped := lesson.Build()
	assert.Equal(t, 2, skipped)
	require.Len(t, quizzes, 2)

	assert.Equal(t, "course-bio", quizzes[0].CourseID)
	assert.Equal(t, "lesson-cells", quizzes[0].LessonID)
	assert.Equal(t, []string{"Mitochondria"}, quizzes[0].CorrectAnswers)
	assert.Equal(t, []string{"Chlorophyll"}, quizzes[1].CorrectAnswers)
}
