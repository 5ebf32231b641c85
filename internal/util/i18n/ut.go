package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
)

// UT holds the translators of the validation messages. English is the
// fallback.
var UT = ut.New(en.New(), en.New(), zh.New())
