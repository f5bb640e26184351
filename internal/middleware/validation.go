package middleware

import (
	"lms-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedQuizIDKey holds the checked :id path parameter in fiber.Ctx locals.
const ValidatedQuizIDKey = "validated_quiz_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateQuizID rejects requests whose :id path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := vm.validator.ValidateQuizID(id); err != nil {
			return err // handled by ErrorHandler
		}
		c.Locals(ValidatedQuizIDKey, id)
		return c.Next()
	}
}
