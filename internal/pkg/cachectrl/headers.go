// Package cachectrl sets the HTTP caching headers of responses.
package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultMaxAge matches the chart cache lifetime.
const DefaultMaxAge = time.Hour

// OptIn marks the response cacheable for DefaultMaxAge from t.
func OptIn(ctx *fiber.Ctx, t time.Time) {
	OptInCustom(ctx, t, DefaultMaxAge)
}

func OptInCustom(ctx *fiber.Ctx, t time.Time, maxAge time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, t.Add(maxAge).UTC().Format(http1123))

	ctx.Response().Header.SetLastModified(t)
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}

const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"
