package elemental

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// Level is the qualitative strength of the day master.
type Level uint8

const (
	LevelStrong Level = iota
	LevelBalanced
	LevelWeak
)

const (
	strongRatio   = 0.55
	balancedRatio = 0.45
)

var levelTable = [...]struct {
	glyph, description string
}{
	LevelStrong:   {"身强", "日主力量充足，自信坚定"},
	LevelBalanced: {"中和", "日主力量平衡，进退自如"},
	LevelWeak:     {"身弱", "日主力量不足，需要扶助"},
}

func (l Level) String() string {
	return levelTable[l].glyph
}

func (l Level) Description() string {
	return levelTable[l].description
}

func (l Level) MarshalText() ([]byte, error) {
	if int(l) >= len(levelTable) {
		return nil, fmt.Errorf("elemental: invalid level %d", l)
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	for i, row := range levelTable {
		if row.glyph == string(text) {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("elemental: unknown level %q", text)
}

// LevelOf classifies a self+supporting ratio. The bands are contiguous:
// (0.55, 1] strong, (0.45, 0.55] balanced, [0, 0.45] weak.
func LevelOf(ratio float64) Level {
	switch {
	case ratio > strongRatio:
		return LevelStrong
	case ratio > balancedRatio:
		return LevelBalanced
	default:
		return LevelWeak
	}
}

// Category tells how an element stands towards the day master.
type Category uint8

const (
	Neutral Category = iota
	Favorable
	Supportive
	Unfavorable
	Hostile
)

var categoryNames = [...]string{"neutral", "favorable", "supportive", "unfavorable", "hostile"}

func (c Category) String() string {
	return categoryNames[c]
}

// Strength is the day master profile derived from the element vector.
type Strength struct {
	DayMaster cycle.Stem
	Element   cycle.Element
	Ratio     float64
	Level     Level

	Favorable   []cycle.Element
	Supportive  []cycle.Element
	Unfavorable []cycle.Element
	Hostile     []cycle.Element
}

// Classify weighs the day master's own element plus its generating element
// against the whole vector.
func Classify(p cycle.Pillars, v Vector) Strength {
	dm := p.DayMaster()
	own := dm.Element()
	generating := own.GeneratedBy()

	var ratio float64
	if total := v.Total(); total > 0 {
		ratio = (v[own] + v[generating]) / total
	}

	s := Strength{
		DayMaster: dm,
		Element:   own,
		Ratio:     ratio,
		Level:     LevelOf(ratio),
	}

	if s.Level == LevelStrong {
		// drain the surplus: output first, then wealth and authority
		s.Favorable = []cycle.Element{own.Generates()}
		s.Supportive = []cycle.Element{own.Controls(), own.ControlledBy()}
		s.Unfavorable = []cycle.Element{own}
		s.Hostile = []cycle.Element{generating}
	} else {
		s.Favorable = []cycle.Element{generating}
		s.Supportive = []cycle.Element{}
		s.Unfavorable = []cycle.Element{own, own.Generates()}
		s.Hostile = []cycle.Element{own.ControlledBy()}
	}

	return s
}

// CategoryOf returns which set e belongs to, Neutral when unlisted.
func (s Strength) CategoryOf(e cycle.Element) Category {
	switch {
	case lo.Contains(s.Favorable, e):
		return Favorable
	case lo.Contains(s.Supportive, e):
		return Supportive
	case lo.Contains(s.Unfavorable, e):
		return Unfavorable
	case lo.Contains(s.Hostile, e):
		return Hostile
	}
	return Neutral
}

// PrimaryFavorable is the first favorable element, the key of the advisory
// associations.
func (s Strength) PrimaryFavorable() cycle.Element {
	return s.Favorable[0]
}

// Analysis is the fixed-template reading of the favorable sets.
func (s Strength) Analysis() string {
	favorable := joinGlyphs(s.Favorable)
	if s.Level == LevelStrong {
		return fmt.Sprintf("八字身强，需要泄耗。用神为%s，喜神为%s。宜从事与用神相关的行业，穿戴用神属性的颜色。",
			favorable, joinGlyphs(s.Supportive))
	}
	return fmt.Sprintf("八字%s，需要生扶。用神为%s。宜接近用神属性的人事物，增强自身能量。", s.Level, favorable)
}

func joinGlyphs(es []cycle.Element) string {
	return strings.Join(lo.Map(es, func(e cycle.Element, _ int) string {
		return e.String()
	}), "、")
}
