// Package luck walks the decade progression of a chart and rates the years
// of an annual window against its favorable elements.
package luck

import (
	"fmt"
	"math"
	"strings"

	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/core/role"
)

// Direction is the way the decade progression walks from the month pillar.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

var directionNames = [...]struct{ name, glyph string }{
	{"forward", "顺行"},
	{"backward", "逆行"},
}

func (d Direction) String() string {
	return directionNames[d].name
}

// Glyph is the Chinese label of the direction, e.g. 顺行.
func (d Direction) Glyph() string {
	return directionNames[d].glyph
}

func (d Direction) MarshalText() ([]byte, error) {
	if d > Backward {
		return nil, fmt.Errorf("luck: invalid direction %d", d)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	for i, n := range directionNames {
		if n.name == string(text) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("luck: unknown direction %q", text)
}

func (d Direction) sign() int {
	if d == Backward {
		return -1
	}
	return 1
}

// DirectionOf is forward for a yang year stem with a male birth or a yin
// year stem with a female birth, backward otherwise.
func DirectionOf(p cycle.Pillars, g cycle.Gender) Direction {
	yang := p.Year.Stem.Polarity() == cycle.Yang
	if yang == (g == cycle.Male) {
		return Forward
	}
	return Backward
}

const (
	daysPerYear = 3
	minStartAge = 1
	maxStartAge = 10
)

// DaysToBoundary counts the days from the birth day to the next (forward)
// or previous (backward) month boundary of the threshold table.
func DaysToBoundary(b cycle.Birth, d Direction) int {
	term := cycle.TermDay(b.Month)
	if d == Forward {
		if b.Day < term {
			return term - b.Day
		}
		next := b.Month%12 + 1
		return cycle.DaysIn(b.Year, b.Month) - b.Day + cycle.TermDay(next)
	}

	if b.Day >= term {
		return b.Day - term
	}
	prev, year := b.Month-1, b.Year
	if prev == 0 {
		prev, year = 12, year-1
	}
	return b.Day + cycle.DaysIn(year, prev) - cycle.TermDay(prev)
}

// StartAge converts the distance to the month boundary at three days per
// year, rounded half away from zero and clamped to [1, 10].
func StartAge(b cycle.Birth, d Direction) int {
	age := int(math.Round(float64(DaysToBoundary(b, d)) / daysPerYear))
	switch {
	case age < minStartAge:
		return minStartAge
	case age > maxStartAge:
		return maxStartAge
	}
	return age
}

// DecadeCount is the number of decades in a progression.
const DecadeCount = 8

// Decade is one ten-year period of the progression.
type Decade struct {
	Order      int         `json:"order"`
	StartAge   int         `json:"startAge"`
	EndAge     int         `json:"endAge"`
	Pair       cycle.Pair  `json:"pair"`
	Nayin      cycle.Nayin `json:"nayin"`
	StemRole   role.Role   `json:"stemRole"`
	BranchRole role.Role   `json:"branchRole"`
	// Range is the age range label, e.g. "3-12岁".
	Range      string      `json:"range"`
	// Current flags the decade holding the chart's current age.
	Current    bool        `json:"current"`
}

// Contains reports whether age falls into the decade.
func (d Decade) Contains(age int) bool {
	return d.StartAge <= age && age <= d.EndAge
}

func rangeLabel(from, to int) string {
	return fmt.Sprintf("%d-%d岁", from, to)
}

// Interpretation is the fixed-template reading of the decade.
func (d Decade) Interpretation() string {
	return fmt.Sprintf("此步大运%s，天干透出%s星。关键词：%s。%s。",
		d.Pair, d.StemRole, strings.Join(d.StemRole.Keywords(), "、"), d.StemRole.Positive())
}

// Progression is the decade walk of a chart.
type Progression struct {
	Direction      Direction `json:"direction"`
	DirectionLabel string    `json:"directionLabel"`
	StartAge       int       `json:"startAge"`
	Decades        []Decade  `json:"decades"`
}

// Decades derives the eight-decade progression. Stem and branch of entry i
// are the month pillar's offset by i+1 in the walk direction.
func Decades(p cycle.Pillars, b cycle.Birth) Progression {
	dir := DirectionOf(p, b.Gender)
	start := StartAge(b, dir)
	dm := p.DayMaster()

	pr := Progression{
		Direction:      dir,
		DirectionLabel: dir.Glyph(),
		StartAge:       start,
		Decades:        make([]Decade, DecadeCount),
	}
	for i := range pr.Decades {
		pair := p.Month.Offset(dir.sign() * (i + 1))
		from := start + 10*i
		pr.Decades[i] = Decade{
			Order:      i + 1,
			StartAge:   from,
			EndAge:     from + 9,
			Pair:       pair,
			Nayin:      pair.Nayin(),
			StemRole:   role.Of(dm, pair.Stem),
			BranchRole: role.Of(dm, pair.Branch.PrimaryStem()),
			Range:      rangeLabel(from, from+9),
		}
	}
	return pr
}

// Current returns the index of the decade holding age. An age past the last
// decade maps to the last one; an age before the first start has none.
func (pr Progression) Current(age int) (int, bool) {
	if len(pr.Decades) == 0 || age < pr.Decades[0].StartAge {
		return -1, false
	}
	for i, d := range pr.Decades {
		if d.Contains(age) {
			return i, true
		}
	}
	return len(pr.Decades) - 1, true
}

// MarkCurrent returns a copy of the progression with the decade holding age
// flagged as current. At most one decade is flagged.
func (pr Progression) MarkCurrent(age int) Progression {
	decades := make([]Decade, len(pr.Decades))
	copy(decades, pr.Decades)
	for i := range decades {
		decades[i].Current = false
	}
	if i, ok := pr.Current(age); ok {
		decades[i].Current = true
	}
	pr.Decades = decades
	return pr
}
