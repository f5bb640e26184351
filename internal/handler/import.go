package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/dto"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler turns uploaded documents into quizzes
type ImportHandler struct {
	ingestion domain.IngestionService
	validator *validation.Validator
}

// NewImportHandler creates a new ImportHandler instance
func NewImportHandler(ingestion domain.IngestionService, validator *validation.Validator) *ImportHandler {
	return &ImportHandler{ingestion: ingestion, validator: validator}
}

// ImportQuizzes godoc
// @Summary Import quizzes from a document
// @Description Extracts text from a PDF, image or text file, generates multiple-choice questions and stores the valid ones
// @Tags quizzes
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "PDF, image or plain text"
// @Param course_id formData string true "Course ID"
// @Param lesson_id formData string true "Lesson ID"
// @Param max_questions formData int false "Maximum questions (1-50, default 10)"
// @Param lang formData string false "OCR language hint, e.g. vie+eng"
// @Success 201 {object} dto.ImportQuizzesResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes/import [post]
func (h *ImportHandler) ImportQuizzes(c *fiber.Ctx) error {
	var req dto.ImportQuizzesRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid multipart form")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	f, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("Failed to read upload", err)
	}

	mediaType := uploadMediaType(fh.Header.Get(fiber.HeaderContentType), fh.Filename, data)
	logger.Get().Info("Import requested",
		zap.String("file", fh.Filename),
		zap.String("media_type", mediaType),
		zap.Int64("size", fh.Size),
		zap.String("lesson_id", req.LessonID))

	result, err := h.ingestion.Ingest(c.UserContext(), domain.IngestRequest{
		Document: domain.RawDocument{
			Data:         data,
			MediaType:    mediaType,
			LanguageHint: req.Lang,
		},
		Target:       domain.Target{CourseID: req.CourseID, LessonID: req.LessonID},
		MaxQuestions: req.MaxQuestions,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ImportQuizzesResponse{
		Message: fmt.Sprintf("Created %d questions", result.InsertedCount),
		Count:   result.InsertedCount,
		Items:   dto.NewQuizResponses(result.Records),
	})
}

// uploadMediaType trusts the part's declared type unless it is missing or generic,
// then falls back to the file extension and finally to content sniffing.
func uploadMediaType(declared, filename string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && !strings.HasPrefix(declared, "application/octet-stream") {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
