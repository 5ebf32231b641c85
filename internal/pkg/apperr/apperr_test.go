package apperr

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, CodeInvalidRequest, "invalid request")
	changed := e.Msg("%s", "changed")

	assert.Equal(t, "invalid request", e.Message)
	assert.Equal(t, "changed", changed.Message)
	assert.Equal(t, e.StatusCode, changed.StatusCode)
}

func TestWithExtrasDoesNotLeak(t *testing.T) {
	first := ErrInvalidReq.WithExtras(Extras{"a": 1})
	second := first.WithExtras(Extras{"b": 2})

	assert.Nil(t, ErrInvalidReq.Extras)
	assert.Equal(t, Extras{"a": 1}, first.Extras)
	assert.Equal(t, Extras{"a": 1, "b": 2}, second.Extras)
}

func TestBody(t *testing.T) {
	e := NewInvalidViolations([]string{"year"})

	assert.Equal(t, fiber.Map{
		"code":       CodeInvalidRequest,
		"message":    ErrInvalidReq.Message,
		"violations": []string{"year"},
	}, e.Body())
	assert.Equal(t, fiber.StatusNotFound, ErrNotFound.StatusCode)
	assert.Equal(t, "NOT_FOUND: gone", ErrNotFound.Msg("gone").Error())
}

func TestIsMatchesDerivedCopies(t *testing.T) {
	wrapped := errors.Wrap(ErrNotFound.Msg("unknown element %q", "aether"), "lookup")

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrInvalidReq)
	assert.ErrorIs(t, NewInvalidViolations(nil), ErrInvalidReq)
}
