package httpserver

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"xuanxin.dev/backend-next/internal/pkg/apperr"
	"xuanxin.dev/backend-next/internal/pkg/middlewares"
)

func handleCustomError(ctx *fiber.Ctx, e *apperr.AppError) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	return ctx.Status(e.StatusCode).JSON(e.Body())
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	// Use custom error handler to return JSON error responses
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		return handleCustomError(ctx, ae)
	}

	// Default 500 statuscode
	re := apperr.ErrInternalError

	var e *fiber.Error
	if errors.As(err, &e) {
		// routing and body size errors are the client's
		re = apperr.New(e.Code, "UNKNOWN_ERROR", e.Message)
		if e.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, re)
		}
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := middlewares.SentryHub(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return ctx.Status(re.StatusCode).JSON(re.Body())
}
