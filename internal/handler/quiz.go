package handler

import (
	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   domain.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service domain.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Lists quizzes filtered by course, lesson and question text, newest first
// @Tags quizzes
// @Produce json
// @Param course_id query string false "Course ID"
// @Param lesson_id query string false "Lesson ID"
// @Param q query string false "Search in question text"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} dto.ListQuizzesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	var q dto.ListQuizzesQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.NewInvalidInputError("Invalid query parameters")
	}
	if err := h.validator.Struct(q); err != nil {
		return err
	}

	page, err := h.service.ListQuizzes(c.UserContext(), domain.QuizFilter{
		CourseID: q.CourseID,
		LessonID: q.LessonID,
		Search:   q.Q,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.ListQuizzesResponse{
		Items: dto.NewQuizResponses(page.Items),
		Total: page.Total,
		Page:  page.Page,
		Pages: page.Pages,
	})
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns one quiz with its options and correct answers
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizEnvelope
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.QuizEnvelope{Quiz: dto.NewQuizResponse(quiz)})
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Normalizes and stores an instructor-authored quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.QuizEnvelope
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	quiz, err := h.service.CreateQuiz(c.UserContext(), domain.Target{CourseID: req.CourseID, LessonID: req.LessonID}, req.Payload())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.QuizEnvelope{Quiz: dto.NewQuizResponse(quiz)})
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Description Applies a partial update and re-normalizes the quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID (ULID)"
// @Param quiz body dto.UpdateQuizRequest true "Fields to change"
// @Success 200 {object} dto.QuizEnvelope
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	quiz, err := h.service.UpdateQuiz(c.UserContext(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.QuizEnvelope{Quiz: dto.NewQuizResponse(quiz)})
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.service.DeleteQuiz(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Quiz deleted"})
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Grades the selection against the correct answers (exact set match) and records it
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID (ULID)"
// @Param answer body dto.SubmitAnswerRequest true "Selected options"
// @Success 201 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	if userID == "" {
		return domain.NewUnauthorizedError("User not authenticated")
	}

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	submission, err := h.service.SubmitAnswer(c.UserContext(), domain.SubmitRequest{
		QuizID:          c.Params("id"),
		StudentID:       userID,
		Selected:        req.Selected,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		return err
	}

	logger.Get().Debug("Submission graded",
		zap.String("quiz_id", submission.QuizID),
		zap.String("user_id", userID),
		zap.Bool("is_correct", submission.IsCorrect))

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitAnswerResponse{
		IsCorrect:  submission.IsCorrect,
		Submission: dto.NewSubmissionResponse(submission),
	})
}

// LessonStats godoc
// @Summary Quiz count for a lesson
// @Tags lessons
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.LessonQuizStatsResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /lessons/{lessonId}/quiz-stats [get]
func (h *QuizHandler) LessonStats(c *fiber.Ctx) error {
	stats, err := h.service.LessonStats(c.UserContext(), c.Params("lessonId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.LessonQuizStatsResponse{LessonID: stats.LessonID, Total: stats.Total})
}
