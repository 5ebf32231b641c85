package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentryHub(t *testing.T) {
	var bare, attached *sentry.Hub

	app := fiber.New()
	app.Get("/bare", EnrichSentry(), func(c *fiber.Ctx) error {
		bare = SentryHub(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/attached", fibersentry.New(fibersentry.Config{}), EnrichSentry(), func(c *fiber.Ctx) error {
		attached = SentryHub(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, path := range []string{"/bare", "/attached"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode, path)
	}

	assert.Nil(t, bare)
	require.NotNil(t, attached)
}
