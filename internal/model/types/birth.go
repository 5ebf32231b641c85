package types

import (
	"strings"

	"gopkg.in/guregu/null.v3"

	"xuanxin.dev/backend-next/internal/core/chart"
	"xuanxin.dev/backend-next/internal/core/cycle"
)

// BirthFragment is the birth moment shared by every chart request.
type BirthFragment struct {
	Year   int    `json:"year" query:"year" validate:"required,gte=1900,lte=2100"`
	Month  int    `json:"month" query:"month" validate:"required,gte=1,lte=12"`
	Day    int    `json:"day" query:"day" validate:"required,gte=1,lte=31"`
	Hour   int    `json:"hour" query:"hour" validate:"gte=0,lte=23"`
	Gender string `json:"gender" query:"gender" validate:"required,caseinsensitiveoneof=male female 男 女"`
}

// CalendarDate exposes the date for the calendarday struct rule.
func (f BirthFragment) CalendarDate() (year, month, day int) {
	return f.Year, f.Month, f.Day
}

// Birth converts the validated fragment into a birth moment.
func (f BirthFragment) Birth() (cycle.Birth, error) {
	g, err := cycle.ParseGender(strings.ToLower(f.Gender))
	if err != nil {
		return cycle.Birth{}, err
	}
	return cycle.NewBirth(f.Year, f.Month, f.Day, f.Hour, g)
}

type AnalyzeRequest struct {
	BirthFragment
	TargetYear null.Int `json:"targetYear" validate:"omitempty,gte=1900,lte=2200"`
	CurrentAge null.Int `json:"currentAge" validate:"omitempty,gte=1,lte=150"`
}

// ChartRequest resolves the optional fields. currentYear is used when no
// target year is given.
func (r AnalyzeRequest) ChartRequest(currentYear int) (chart.Request, error) {
	b, err := r.Birth()
	if err != nil {
		return chart.Request{}, err
	}
	return chart.Request{
		Birth:      b,
		TargetYear: int(r.TargetYear.ValueOrZero()),
		CurrentAge: int(r.CurrentAge.ValueOrZero()),
	}.WithDefaults(currentYear), nil
}

type AnnualQuery struct {
	BirthFragment
	TargetYear int `query:"targetYear" validate:"omitempty,gte=1900,lte=2200"`
}
