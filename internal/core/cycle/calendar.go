package cycle

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// MinYear is the earliest supported birth year.
const MinYear = 1900

var ErrInvalidBirth = errors.New("invalid birth moment")

type Gender uint8

const (
	Male Gender = iota
	Female
)

var genderNames = [...]string{"male", "female"}

func (g Gender) String() string {
	return genderNames[g]
}

func (g Gender) MarshalText() ([]byte, error) {
	if g > Female {
		return nil, fmt.Errorf("cycle: invalid gender %d", g)
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	v, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGender accepts male/female as well as 男/女.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male", "男":
		return Male, nil
	case "female", "女":
		return Female, nil
	}
	return 0, fmt.Errorf("cycle: unknown gender %q", s)
}

// Birth is a validated civil birth moment. Hour is the local hour 0..23.
type Birth struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Gender Gender `json:"gender"`
}

func NewBirth(year, month, day, hour int, gender Gender) (Birth, error) {
	switch {
	case year < MinYear:
		return Birth{}, errors.Wrapf(ErrInvalidBirth, "year %d is before %d", year, MinYear)
	case month < 1 || month > 12:
		return Birth{}, errors.Wrapf(ErrInvalidBirth, "month %d out of range", month)
	case day < 1 || day > DaysIn(year, month):
		return Birth{}, errors.Wrapf(ErrInvalidBirth, "day %d does not exist in %04d-%02d", day, year, month)
	case hour < 0 || hour > 23:
		return Birth{}, errors.Wrapf(ErrInvalidBirth, "hour %d out of range", hour)
	case gender > Female:
		return Birth{}, errors.Wrapf(ErrInvalidBirth, "unknown gender %d", gender)
	}
	return Birth{Year: year, Month: month, Day: day, Hour: hour, Gender: gender}, nil
}

// DaysIn returns the number of days of a Gregorian month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// termDays approximates the civil day on which each month's solar term
// (jie) begins. True astronomical timing is not modeled.
var termDays = [13]int{0, 6, 4, 6, 5, 6, 6, 7, 8, 8, 8, 7, 7}

// TermDay returns the approximate first day of the solar-term month that
// begins within the given civil month.
func TermDay(month int) int {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("cycle: month %d out of range", month))
	}
	return termDays[month]
}

// SolarMonthIndex maps a civil date to the solar-term month index, 0 being
// the tiger (寅) month that begins in early February.
func SolarMonthIndex(month, day int) int {
	if day >= TermDay(month) {
		return mod(month-2, 12)
	}
	return mod(month-3, 12)
}

// solarYear is the civil year a solar-term month belongs to: January and the
// days of February before the tiger month still count towards the previous year.
func solarYear(year, month, day int) int {
	if month == 1 || (month == 2 && day < TermDay(2)) {
		return year - 1
	}
	return year
}

// YearPair uses the civil year boundary (1 January) as an approximation.
func YearPair(year int) Pair {
	return Pair{Stem: StemAt(year - 4), Branch: BranchAt(year - 4)}
}

// monthStartStem yields the stem of the tiger month keyed by year stem:
// 甲己 → 丙, 乙庚 → 戊, 丙辛 → 庚, 丁壬 → 壬, 戊癸 → 甲.
func monthStartStem(yearStem Stem) Stem {
	return StemAt(int(yearStem.must()%5)*2 + 2)
}

func MonthPair(year, month, day int) Pair {
	idx := SolarMonthIndex(month, day)
	start := monthStartStem(YearPair(solarYear(year, month, day)).Stem)
	return Pair{Stem: start.Offset(idx), Branch: BranchYin.Offset(idx)}
}

// dayEpoch is 1900-01-01, a 甲戌 day.
var dayEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

const epochBranch = 10

// DaysSinceEpoch counts civil days from 1900-01-01.
func DaysSinceEpoch(year, month, day int) int {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - dayEpoch.Unix()) / 86400)
}

func DayPair(year, month, day int) Pair {
	n := DaysSinceEpoch(year, month, day)
	return Pair{Stem: StemAt(n), Branch: BranchAt(epochBranch + n)}
}

// HourSlot maps an hour to its two-hour slot; 23:00 to 00:59 is slot 0.
func HourSlot(hour int) int {
	if hour < 0 || hour > 23 {
		panic(fmt.Sprintf("cycle: hour %d out of range", hour))
	}
	if hour == 23 {
		return 0
	}
	return (hour + 1) / 2
}

// hourStartStem yields the stem of the 子 hour keyed by day stem:
// 甲己 → 甲, 乙庚 → 丙, 丙辛 → 戊, 丁壬 → 庚, 戊癸 → 壬.
func hourStartStem(dayStem Stem) Stem {
	return StemAt(int(dayStem.must()%5) * 2)
}

func HourPair(dayStem Stem, hour int) Pair {
	slot := HourSlot(hour)
	return Pair{Stem: hourStartStem(dayStem).Offset(slot), Branch: BranchAt(slot)}
}

// Position names a pillar of the chart.
type Position uint8

const (
	PositionYear Position = iota
	PositionMonth
	PositionDay
	PositionHour
)

var Positions = [4]Position{PositionYear, PositionMonth, PositionDay, PositionHour}

var positionNames = [...]string{"year", "month", "day", "hour"}

func (p Position) String() string {
	return positionNames[p]
}

func (p Position) MarshalText() ([]byte, error) {
	if p > PositionHour {
		return nil, fmt.Errorf("cycle: invalid position %d", p)
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	for i, n := range positionNames {
		if n == string(text) {
			*p = Position(i)
			return nil
		}
	}
	return fmt.Errorf("cycle: unknown position %q", text)
}

// Pillars are the four pairs of a birth moment.
type Pillars struct {
	Year  Pair
	Month Pair
	Day   Pair
	Hour  Pair
}

// DayMaster is the day stem, the reference of every relational lookup.
func (p Pillars) DayMaster() Stem {
	return p.Day.Stem
}

func (p Pillars) At(pos Position) Pair {
	switch pos {
	case PositionYear:
		return p.Year
	case PositionMonth:
		return p.Month
	case PositionDay:
		return p.Day
	case PositionHour:
		return p.Hour
	}
	panic(fmt.Sprintf("cycle: invalid position %d", pos))
}

func (p Pillars) All() [4]Pair {
	return [4]Pair{p.Year, p.Month, p.Day, p.Hour}
}

func (p Pillars) Branches() [4]Branch {
	return [4]Branch{p.Year.Branch, p.Month.Branch, p.Day.Branch, p.Hour.Branch}
}

// Find returns the first pillar whose branch is b.
func (p Pillars) Find(b Branch) (Position, bool) {
	for i, br := range p.Branches() {
		if br == b {
			return Position(i), true
		}
	}
	return 0, false
}

func (p Pillars) String() string {
	return fmt.Sprintf("%s %s %s %s", p.Year, p.Month, p.Day, p.Hour)
}

// Compute derives the four pillars of a birth moment.
func Compute(b Birth) Pillars {
	day := DayPair(b.Year, b.Month, b.Day)
	return Pillars{
		Year:  YearPair(b.Year),
		Month: MonthPair(b.Year, b.Month, b.Day),
		Day:   day,
		Hour:  HourPair(day.Stem, b.Hour),
	}
}
