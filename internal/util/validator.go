package util

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// CalendarDate is implemented by request fragments carrying a civil date.
type CalendarDate interface {
	CalendarDate() (year, month, day int)
}

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("caseinsensitiveoneof", caseInsensitiveOneOf)
	validate.RegisterCustomTypeFunc(nullIntValuer, null.Int{})
	validate.RegisterTagNameFunc(jsonTagName)

	return validate
}

// RegisterCalendarDay adds the calendarday struct rule to the given types:
// the day must exist in the month of the year.
func RegisterCalendarDay(validate *validator.Validate, types ...CalendarDate) {
	ifaces := make([]any, len(types))
	for i, t := range types {
		ifaces[i] = t
	}
	validate.RegisterStructValidation(calendarDay, ifaces...)
}

func calendarDay(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(CalendarDate)
	if !ok {
		return
	}
	year, month, day := d.CalendarDate()
	if month < 1 || month > 12 || day < 1 {
		// range violations are reported by the field rules
		return
	}
	if day > cycle.DaysIn(year, month) {
		sl.ReportError(day, "day", "Day", "calendarday", "")
	}
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	for _, v := range strings.Fields(strings.ToLower(fl.Param())) {
		if val == v {
			return true
		}
	}
	return false
}

func nullIntValuer(field reflect.Value) any {
	if valuer, ok := field.Interface().(null.Int); ok && valuer.Valid {
		return valuer.Int64
	}

	return nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
