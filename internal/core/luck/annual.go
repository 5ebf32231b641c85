package luck

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/core/elemental"
	"xuanxin.dev/backend-next/internal/core/role"
)

// Rating grades a year against the favorable elements of the chart.
type Rating uint8

const (
	GreatFortune Rating = iota
	Fortune
	Steady
	Misfortune
	GreatMisfortune
)

var ratingTable = [...]struct {
	glyph, description string
}{
	GreatFortune:    {"大吉", "运势极佳，宜积极进取"},
	Fortune:         {"吉", "运势良好，稳中求进"},
	Steady:          {"平", "运势平稳，宜守不宜攻"},
	Misfortune:      {"凶", "运势欠佳，宜谨慎行事"},
	GreatMisfortune: {"大凶", "运势不佳，宜韬光养晦"},
}

func (r Rating) String() string {
	return ratingTable[r].glyph
}

func (r Rating) Description() string {
	return ratingTable[r].description
}

// Good reports whether the rating is 大吉 or 吉.
func (r Rating) Good() bool {
	return r <= Fortune
}

func (r Rating) MarshalText() ([]byte, error) {
	if int(r) >= len(ratingTable) {
		return nil, fmt.Errorf("luck: invalid rating %d", r)
	}
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	for i, row := range ratingTable {
		if row.glyph == string(text) {
			*r = Rating(i)
			return nil
		}
	}
	return fmt.Errorf("luck: unknown rating %q", text)
}

// RatingOf maps a year score onto the five grades.
func RatingOf(score int) Rating {
	switch {
	case score >= 4:
		return GreatFortune
	case score >= 2:
		return Fortune
	case score >= 0:
		return Steady
	case score >= -2:
		return Misfortune
	default:
		return GreatMisfortune
	}
}

var (
	stemPoints   = map[elemental.Category]int{elemental.Favorable: 3, elemental.Supportive: 2, elemental.Unfavorable: -2}
	branchPoints = map[elemental.Category]int{elemental.Favorable: 2, elemental.Supportive: 1, elemental.Unfavorable: -1}
)

// Score sums the stem and branch contributions of a year pair. Hostile and
// unlisted elements contribute nothing.
func Score(pair cycle.Pair, s elemental.Strength) int {
	return stemPoints[s.CategoryOf(pair.StemElement())] + branchPoints[s.CategoryOf(pair.BranchElement())]
}

const (
	windowBefore = 2
	WindowSize   = 10
)

// Year is one entry of the annual window.
type Year struct {
	Year       int         `json:"year"`
	Age        int         `json:"age"`
	Pair       cycle.Pair  `json:"pair"`
	Nayin      cycle.Nayin `json:"nayin"`
	StemRole   role.Role   `json:"stemRole"`
	BranchRole role.Role   `json:"branchRole"`
	Score      int         `json:"score"`
	Rating     Rating      `json:"rating"`
	Target     bool        `json:"target"`
}

// Interpretation is the fixed-template reading of the year.
func (y Year) Interpretation() string {
	keywords := y.StemRole.Keywords()
	return fmt.Sprintf("%d年%s年，%s星当值。运势评级：%s。%s。关键词：%s。",
		y.Year, y.Pair, y.StemRole, y.Rating, y.Rating.Description(),
		strings.Join(lo.Subset(keywords, 0, 3), "、"))
}

// Annual rates the ten years from target-2 to target+7. Ages are nominal:
// the birth year counts as age 1.
func Annual(p cycle.Pillars, s elemental.Strength, b cycle.Birth, target int) []Year {
	dm := p.DayMaster()
	years := make([]Year, WindowSize)
	for i := range years {
		year := target - windowBefore + i
		pair := cycle.YearPair(year)
		score := Score(pair, s)
		years[i] = Year{
			Year:       year,
			Age:        year - b.Year + 1,
			Pair:       pair,
			Nayin:      pair.Nayin(),
			StemRole:   role.Of(dm, pair.Stem),
			BranchRole: role.Of(dm, pair.Branch.PrimaryStem()),
			Score:      score,
			Rating:     RatingOf(score),
			Target:     year == target,
		}
	}
	return years
}

// TargetOf returns the flagged entry of the window.
func TargetOf(years []Year) (Year, bool) {
	return lo.Find(years, func(y Year) bool { return y.Target })
}
