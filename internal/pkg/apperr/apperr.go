// Package apperr defines the errors rendered to API clients.
package apperr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")

	ErrUnavailable = New(fiber.StatusServiceUnavailable, CodeUnavailable, "a dependency of the service is unavailable")
)

type Extras map[string]any

// AppError is an error with a stable code for clients. Its builders return
// modified copies so the package level sentinels are never mutated.
type AppError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     Extras
}

func New(statusCode int, errorCode string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e AppError) Msg(format string, parts ...any) *AppError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e AppError) WithExtras(extras Extras) *AppError {
	merged := make(Extras, len(e.Extras)+len(extras))
	for k, v := range e.Extras {
		merged[k] = v
	}
	for k, v := range extras {
		merged[k] = v
	}
	e.Extras = merged
	return &e
}

// NewInvalidViolations wraps validation violations into an INVALID_REQUEST.
func NewInvalidViolations(violations any) *AppError {
	return ErrInvalidReq.WithExtras(Extras{
		"violations": violations,
	})
}

// Body is the JSON body of the error.
func (e *AppError) Body() fiber.Map {
	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}
	for k, v := range e.Extras {
		body[k] = v
	}
	return body
}

// Is matches any error of the same status and code, so copies made by Msg
// and WithExtras still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.StatusCode == e.StatusCode && t.ErrorCode == e.ErrorCode
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
