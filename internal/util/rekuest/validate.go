// Package rekuest parses and validates request payloads, rendering the
// violations in the language of the request.
package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/apperr"
	"xuanxin.dev/backend-next/internal/util"
	"xuanxin.dev/backend-next/internal/util/i18n"
)

var Validate = util.NewValidator()

// custom rule messages per locale; {0} is the field name
var customMessages = map[string]map[string]string{
	"en": {
		"calendarday":          "{0} does not exist in the given month",
		"caseinsensitiveoneof": "{0} must be one of [{1}]",
	},
	"zh": {
		"calendarday":          "{0}在该月份中不存在",
		"caseinsensitiveoneof": "{0}必须是[{1}]中的一个",
	},
}

func init() {
	util.RegisterCalendarDay(Validate, types.BirthFragment{})

	entr, _ := i18n.UT.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(Validate, entr); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	zhtr, _ := i18n.UT.GetTranslator("zh")
	if err := zhTranslations.RegisterDefaultTranslations(Validate, zhtr); err != nil {
		log.Warn().Err(err).Str("locale", "zh").Msg("could not register translation")
	}

	translators := map[string]ut.Translator{
		"en": entr,
		"zh": zhtr,
	}
	for l, tr := range translators {
		for tag, text := range customMessages[l] {
			tag, text := tag, text
			err := Validate.RegisterTranslation(tag, tr, func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			}, func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field(), fe.Param())
				return t
			})
			if err != nil {
				log.Warn().Err(err).Str("locale", l).Str("tag", tag).Msg("could not register custom translation")
			}
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// TranslatorFromCtx returns the translator picked by the i18n middleware,
// or the fallback one when the middleware did not run.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if tr, ok := ctx.Locals(constant.ContextKeyTranslator).(ut.Translator); ok {
		return tr
	}
	return i18n.UT.GetFallback()
}

func translate(tr ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	resp := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		resp = append(resp, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   util.AddSpace(fe.Translate(tr)),
		})
	}
	return resp
}

func violations(ctx *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errors.Wrap(err, "rekuest: validator misuse")
	}
	return apperr.NewInvalidViolations(translate(TranslatorFromCtx(ctx), ve))
}

// ValidBody parses the body into dest, which must be a pointer, and
// validates it.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return ValidStruct(ctx, dest)
}

// ValidQuery is ValidBody for the query string.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return ValidStruct(ctx, dest)
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if err := Validate.Struct(dest); err != nil {
		return violations(ctx, err)
	}
	return nil
}

func ValidVar(ctx *fiber.Ctx, field any, tag string) error {
	if err := Validate.Var(field, tag); err != nil {
		return violations(ctx, err)
	}
	return nil
}
