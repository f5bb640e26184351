package seedmodels

import "lms-quiz/internal/domain"

// SeedLesson is one lesson entry in the JSON seed file.
type SeedLesson struct {
	CourseID string               `json:"course_id"`
	LessonID string               `json:"lesson_id"`
	Quizzes  []domain.QuizPayload `json:"quizzes"`
}

// Build normalizes the lesson's quizzes the same way the API does.
// It returns the valid quizzes and how many entries were skipped.
func (l SeedLesson) Build() ([]*domain.Quiz, int) {
	target := domain.Target{CourseID: l.CourseID, LessonID: l.LessonID}
	quizzes := make([]*domain.Quiz, 0, len(l.Quizzes))
	skipped := 0
	for _, p := range l.Quizzes {
		n := domain.NormalizeQuizPayload(p)
		if !n.Valid() {
			skipped++
			continue
		}
		quizzes = append(quizzes, domain.NewQuiz(target, n))
	}
	return quizzes, skipped
}
