package rekuest

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/apperr"
)

func testApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *apperr.AppError
			if ae, ok := err.(*apperr.AppError); ok {
				e = ae
			} else {
				e = apperr.ErrInternalError
			}
			return c.Status(e.StatusCode).JSON(e.Body())
		},
	})
	app.Post("/", func(c *fiber.Ctx) error {
		var req types.AnalyzeRequest
		if err := ValidBody(c, &req); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func post(t *testing.T, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := testApp().Test(req)
	require.NoError(t, err)
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	return resp.StatusCode, buf.String()
}

func TestValidBody(t *testing.T) {
	status, _ := post(t, `{"year":1990,"month":5,"day":15,"hour":10,"gender":"male"}`)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = post(t, `{"year":1990,"month":5,"day":15,"hour":0,"gender":"女","targetYear":2024}`)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestValidBodyViolations(t *testing.T) {
	status, body := post(t, `{"year":1800,"month":2,"day":30,"hour":24,"gender":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperr.CodeInvalidRequest, gjson.Get(body, "code").String())

	tags := gjson.Get(body, "violations.#.violation").Array()
	got := make([]string, 0, len(tags))
	for _, tag := range tags {
		got = append(got, tag.String())
	}
	assert.ElementsMatch(t, []string{"gte", "lte", "caseinsensitiveoneof", "calendarday"}, got)
}

func TestValidBodyMalformed(t *testing.T) {
	status, body := post(t, `{"year":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, gjson.Get(body, "message").String(), "invalid request")
}
