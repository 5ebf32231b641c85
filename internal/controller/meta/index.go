package meta

import "github.com/gofiber/fiber/v2"

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Xuanxin API v1",
			"routes": []string{
				"POST /api/v1/bazi/analyze",
				"POST /api/v1/bazi/paipan",
				"GET /api/v1/bazi/elements/:element",
				"GET /api/v1/bazi/annual",
				"GET /api/v1/bazi/records",
				"GET /api/v1/bazi/records/:id",
			},
		})
	})
}
