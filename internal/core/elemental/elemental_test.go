package elemental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

func referencePillars(t *testing.T) cycle.Pillars {
	t.Helper()
	b, err := cycle.NewBirth(1990, 5, 15, 10, cycle.Male)
	require.NoError(t, err)
	return cycle.Compute(b)
}

func TestScoreReferenceChart(t *testing.T) {
	v := Score(referencePillars(t))

	assert.InDelta(t, 0.4, v[cycle.Wood], 1e-9)
	assert.InDelta(t, 3.6, v[cycle.Fire], 1e-9)
	assert.InDelta(t, 2.1, v[cycle.Earth], 1e-9)
	assert.InDelta(t, 2.0, v[cycle.Metal], 1e-9)
	assert.InDelta(t, 0.12, v[cycle.Water], 1e-9)
	assert.InDelta(t, 8.22, v.Total(), 1e-9)

	assert.Equal(t, cycle.Fire, v.Strongest())
	assert.Equal(t, cycle.Water, v.Weakest())

	pct := v.Percentages()
	assert.Equal(t, Vector{4.9, 43.8, 25.5, 24.3, 1.5}, pct)
	assert.InDelta(t, 100, pct.Total(), 0.5)
}

func TestPercentagesSumToHundred(t *testing.T) {
	for _, b := range []cycle.Birth{
		{Year: 1900, Month: 1, Day: 1, Hour: 0},
		{Year: 1949, Month: 10, Day: 1, Hour: 15},
		{Year: 1976, Month: 2, Day: 29, Hour: 23},
		{Year: 2024, Month: 8, Day: 8, Hour: 8},
	} {
		v := Score(cycle.Compute(b))
		require.Greater(t, v.Total(), 0.0)
		assert.InDelta(t, 100, v.Percentages().Total(), 0.5)
	}
}

func TestZeroVector(t *testing.T) {
	var v Vector
	assert.Equal(t, Vector{}, v.Percentages())
	assert.Equal(t, cycle.Wood, v.Strongest())
	assert.Equal(t, cycle.Wood, v.Weakest())

	s := Classify(referencePillars(t), v)
	assert.Equal(t, 0.0, s.Ratio)
	assert.Equal(t, LevelWeak, s.Level)
}

func TestAllEqualVectorIsBalanced(t *testing.T) {
	v := Vector{20, 20, 20, 20, 20}
	for e, b := range v.Balance() {
		assert.Equal(t, Even, b, e.String())
	}
}

func TestBalanceOf(t *testing.T) {
	cases := []struct {
		pct  float64
		want Balance
	}{
		{30.1, VeryStrong},
		{30, Strong},
		{24.1, Strong},
		{24, Even},
		{16, Even},
		{15.9, Weak},
		{10, Weak},
		{9.9, VeryWeak},
		{0, VeryWeak},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BalanceOf(c.pct), "%v", c.pct)
	}
}

func TestSeasonalPanicsOutOfTable(t *testing.T) {
	assert.Panics(t, func() { Seasonal(cycle.Branch(12), cycle.Wood) })
	assert.Panics(t, func() { Seasonal(cycle.BranchZi, cycle.Element(5)) })
	assert.Equal(t, 1.2, Seasonal(cycle.BranchYin, cycle.Wood))
}

func TestLevelBandsAreContiguous(t *testing.T) {
	assert.Equal(t, LevelWeak, LevelOf(0))
	assert.Equal(t, LevelWeak, LevelOf(0.45))
	assert.Equal(t, LevelBalanced, LevelOf(0.4501))
	assert.Equal(t, LevelBalanced, LevelOf(0.55))
	assert.Equal(t, LevelStrong, LevelOf(0.5501))
	assert.Equal(t, LevelStrong, LevelOf(1))

	prev := LevelOf(0)
	for i := 1; i <= 1000; i++ {
		cur := LevelOf(float64(i) / 1000)
		assert.LessOrEqual(t, int(cur), int(prev))
		prev = cur
	}
}

func TestClassifyReferenceChart(t *testing.T) {
	p := referencePillars(t)
	s := Classify(p, Score(p))

	assert.Equal(t, cycle.StemGeng, s.DayMaster)
	assert.Equal(t, cycle.Metal, s.Element)
	assert.InDelta(t, 4.1/8.22, s.Ratio, 1e-9)
	assert.Equal(t, LevelBalanced, s.Level)

	assert.Equal(t, []cycle.Element{cycle.Earth}, s.Favorable)
	assert.Empty(t, s.Supportive)
	assert.Equal(t, []cycle.Element{cycle.Metal, cycle.Water}, s.Unfavorable)
	assert.Equal(t, []cycle.Element{cycle.Fire}, s.Hostile)
	assert.Equal(t, Neutral, s.CategoryOf(cycle.Wood))
	assert.Contains(t, s.Analysis(), "用神为土")
}

func TestClassifyStrongInvertsSets(t *testing.T) {
	p := cycle.Pillars{Day: cycle.NewPair(cycle.StemJia, cycle.BranchZi)}
	s := Classify(p, Vector{cycle.Wood: 5, cycle.Water: 3, cycle.Fire: 1, cycle.Earth: 1})

	require.Equal(t, LevelStrong, s.Level)
	assert.Equal(t, []cycle.Element{cycle.Fire}, s.Favorable)
	assert.Equal(t, []cycle.Element{cycle.Earth, cycle.Metal}, s.Supportive)
	assert.Equal(t, []cycle.Element{cycle.Wood}, s.Unfavorable)
	assert.Equal(t, []cycle.Element{cycle.Water}, s.Hostile)
	assert.Contains(t, s.Analysis(), "喜神为土、金")
}

func TestClassifySetsAreDisjoint(t *testing.T) {
	vectors := []Vector{
		{},
		{1, 1, 1, 1, 1},
		{9, 0, 0, 0, 1},
		{0, 0, 5, 5, 0},
		{0.4, 3.6, 2.1, 2.0, 0.12},
	}
	for _, stem := range []cycle.Stem{cycle.StemJia, cycle.StemDing, cycle.StemWu, cycle.StemXin, cycle.StemGui} {
		p := cycle.Pillars{Day: cycle.PairAt(int(stem))}
		for _, v := range vectors {
			s := Classify(p, v)
			assert.GreaterOrEqual(t, s.Ratio, 0.0)
			assert.LessOrEqual(t, s.Ratio, 1.0)

			seen := map[cycle.Element]int{}
			for _, set := range [][]cycle.Element{s.Favorable, s.Supportive, s.Unfavorable, s.Hostile} {
				for _, e := range set {
					seen[e]++
				}
			}
			for e, n := range seen {
				assert.Equal(t, 1, n, "%s listed in more than one set", e)
			}
			assert.Equal(t, 1, seen[stem.Element()], "own element must be listed exactly once")
			assert.NotEqual(t, Neutral, s.CategoryOf(stem.Element()))
		}
	}
}

func TestAdvisoryForReturnsCopies(t *testing.T) {
	a := AdvisoryFor(cycle.Water)
	assert.Equal(t, "北方", a.Direction)
	assert.Equal(t, []int{1, 6}, a.Numbers)
	assert.Equal(t, "根据您的用神水，建议多使用黑色，发展方向宜往北方，幸运数字为[1 6]。", a.Summary())

	a.Colors[0] = "透明"
	assert.Equal(t, "黑色", AdvisoryFor(cycle.Water).Colors[0])
}
