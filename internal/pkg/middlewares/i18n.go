package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/util/i18n"
)

// InjectI18n picks the validation translator from Accept-Language.
func InjectI18n() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, _, err := language.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if err != nil || len(tags) == 0 {
			c.Locals(constant.ContextKeyTranslator, i18n.UT.GetFallback())
			return c.Next()
		}

		langs := make([]string, 0, len(tags))
		for _, tag := range tags {
			base, _ := tag.Base()
			langs = append(langs, strings.ToLower(base.String()))
		}

		trans, _ := i18n.UT.FindTranslator(langs...)
		c.Locals(constant.ContextKeyTranslator, trans)
		return c.Next()
	}
}
