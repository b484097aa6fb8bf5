package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/domain"
)

var failureStatus = map[domain.ErrorKind]int{
	domain.KindNotFound:       fiber.StatusNotFound,
	domain.KindUnavailable:    fiber.StatusUnprocessableEntity,
	domain.KindInvalidInput:   fiber.StatusBadRequest,
	domain.KindOutOfRange:     fiber.StatusBadRequest,
	domain.KindInvalidEnum:    fiber.StatusBadRequest,
	domain.KindConflict:       fiber.StatusConflict,
	domain.KindStorageFailure: fiber.StatusInternalServerError,
	domain.KindInternal:       fiber.StatusInternalServerError,
}

// StatusFor maps a failure kind to its HTTP status. Unknown kinds are 500.
func StatusFor(kind domain.ErrorKind) int {
	if status, ok := failureStatus[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func writeFailure(c *fiber.Ctx, f *domain.Failure) error {
	return c.Status(StatusFor(f.Kind)).JSON(dto.ErrorResponse{Code: string(f.Kind), Message: f.Message})
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// respond writes the value of a successful result with status, or the failure.
func respond[T any](c *fiber.Ctx, status int, r domain.Result[T]) error {
	if !r.IsSuccess() {
		return writeFailure(c, r.Failure())
	}
	return c.Status(status).JSON(r.Value())
}

// ErrorHandler renders errors that escape handlers (unknown routes, panics
// caught by recover, body limits) with the same body as domain failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := string(domain.KindInternal)
		switch fe.Code {
		case fiber.StatusNotFound:
			code = string(domain.KindNotFound)
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
			code = string(domain.KindInvalidInput)
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return writeError(c, fe.Code, code, fe.Message)
	}
	return writeError(c, fiber.StatusInternalServerError, string(domain.KindInternal), err.Error())
}
