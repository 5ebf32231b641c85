package luck

import (
	"fmt"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// StemRelation is how the decade stem and the year stem interact.
type StemRelation uint8

const (
	Harmony StemRelation = iota
	DecadeGeneratesYear
	YearGeneratesDecade
	DecadeControlsYear
	YearControlsDecade
)

var stemRelationTable = [...]struct {
	glyph, description string
}{
	Harmony:             {"比和", "大运流年天干比和，力量加强"},
	DecadeGeneratesYear: {"大运生流年", "大运生流年，有贵人相助"},
	YearGeneratesDecade: {"流年生大运", "流年生大运，顺势而为"},
	DecadeControlsYear:  {"大运克流年", "大运克流年，主动出击"},
	YearControlsDecade:  {"流年克大运", "流年克大运，有压力挑战"},
}

var fromRelation = [...]StemRelation{
	cycle.Same:         Harmony,
	cycle.Generates:    DecadeGeneratesYear,
	cycle.GeneratedBy:  YearGeneratesDecade,
	cycle.Controls:     DecadeControlsYear,
	cycle.ControlledBy: YearControlsDecade,
}

func (r StemRelation) String() string {
	return stemRelationTable[r].glyph
}

func (r StemRelation) Description() string {
	return stemRelationTable[r].description
}

// supportive relations lift a good year to the top grade.
func (r StemRelation) supportive() bool {
	return r == Harmony || r == DecadeGeneratesYear || r == YearGeneratesDecade
}

func (r StemRelation) MarshalText() ([]byte, error) {
	if int(r) >= len(stemRelationTable) {
		return nil, fmt.Errorf("luck: invalid stem relation %d", r)
	}
	return []byte(r.String()), nil
}

func (r *StemRelation) UnmarshalText(text []byte) error {
	for i, row := range stemRelationTable {
		if row.glyph == string(text) {
			*r = StemRelation(i)
			return nil
		}
	}
	return fmt.Errorf("luck: unknown stem relation %q", text)
}

// Grade is the overall decade×year grade.
type Grade uint8

const (
	GradeExcellent Grade = iota
	GradeGood
	GradeFair
	GradePoor
)

var gradeTable = [...]struct {
	glyph, advice string
}{
	GradeExcellent: {"上上", "此年运势绝佳，宜大展宏图，把握机会"},
	GradeGood:      {"上", "此年运势良好，积极进取可有所成"},
	GradeFair:      {"中", "此年运势平稳，宜稳扎稳打，不宜冒进"},
	GradePoor:      {"下", "此年运势欠佳，宜韬光养晦，等待时机"},
}

func (g Grade) String() string {
	return gradeTable[g].glyph
}

func (g Grade) Advice() string {
	return gradeTable[g].advice
}

func (g Grade) MarshalText() ([]byte, error) {
	if int(g) >= len(gradeTable) {
		return nil, fmt.Errorf("luck: invalid grade %d", g)
	}
	return []byte(g.String()), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	for i, row := range gradeTable {
		if row.glyph == string(text) {
			*g = Grade(i)
			return nil
		}
	}
	return fmt.Errorf("luck: unknown grade %q", text)
}

// Combination is the combined reading of the active decade and year.
type Combination struct {
	Decade      cycle.Pair   `json:"decade"`
	Year        cycle.Pair   `json:"year"`
	Relation    StemRelation `json:"relation"`
	Description string       `json:"description"`
	Grade       Grade        `json:"grade"`
	Advice      string       `json:"advice"`
}

// Combine relates the decade stem to the year stem and grades the pair.
func Combine(d Decade, y Year) Combination {
	rel := fromRelation[cycle.RelationOf(d.Pair.StemElement(), y.Pair.StemElement())]

	var g Grade
	switch {
	case y.Rating.Good() && rel.supportive():
		g = GradeExcellent
	case y.Rating.Good():
		g = GradeGood
	case y.Rating == Steady:
		g = GradeFair
	default:
		g = GradePoor
	}

	return Combination{
		Decade:      d.Pair,
		Year:        y.Pair,
		Relation:    rel,
		Description: rel.Description(),
		Grade:       g,
		Advice:      g.Advice(),
	}
}
