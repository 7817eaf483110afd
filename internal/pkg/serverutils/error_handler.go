package serverutils

import (
	"ai-interview-be/internal/pkg/apperror"
	"ai-interview-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed service errors into HTTP responses.
// It sits after the controllers so every returned error passes through one place.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		status := statusForKind(apperror.KindOf(err))
		if status >= fiber.StatusInternalServerError {
			log.Error("Http", "request failed", map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
			})
		}
		return c.Status(status).JSON(fiber.Map{"message": err.Error()})
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidState:
		return fiber.StatusConflict
	case apperror.KindValidation, apperror.KindMalformedFrame:
		return fiber.StatusBadRequest
	case apperror.KindCollaboratorTimeout:
		return fiber.StatusGatewayTimeout
	case apperror.KindCollaboratorFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
