package chart

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/core/elemental"
	"xuanxin.dev/backend-next/internal/core/luck"
	"xuanxin.dev/backend-next/internal/core/marker"
	"xuanxin.dev/backend-next/internal/core/role"
)

func reference(t *testing.T) Request {
	t.Helper()
	b, err := cycle.NewBirth(1990, 5, 15, 10, cycle.Male)
	require.NoError(t, err)
	return Request{Birth: b, TargetYear: 2024}
}

func TestPaipan(t *testing.T) {
	l := Paipan(reference(t).Birth)

	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", l.Label)
	assert.Equal(t, "马", l.Zodiac)
	assert.Equal(t, cycle.StemGeng, l.DayMaster.Stem)
	assert.Equal(t, cycle.Metal, l.DayMaster.Element)

	day := l.Pillars[cycle.PositionDay]
	assert.Equal(t, cycle.PositionDay, day.Position)
	assert.Equal(t, cycle.BranchChen, day.Branch)
	assert.Equal(t, cycle.Earth, day.BranchElement)
	assert.Equal(t, []cycle.Stem{cycle.StemWu, cycle.StemYi, cycle.StemGui}, day.HiddenStems)
	assert.Equal(t, "白蜡金", day.Nayin.String())
}

func TestAnalyzeReferenceChart(t *testing.T) {
	r := Analyze(reference(t))

	assert.Equal(t, 35, r.CurrentAge)
	assert.Equal(t, 2024, r.TargetYear)

	assert.InDelta(t, 3.6, r.Elements.Raw["fire"], 1e-9)
	assert.InDelta(t, 43.8, r.Elements.Percentages["fire"], 1e-9)
	assert.InDelta(t, 8.22, r.Elements.Total, 1e-9)
	assert.Equal(t, cycle.Fire, r.Elements.Strongest)
	assert.Equal(t, cycle.Water, r.Elements.Weakest)
	assert.Len(t, r.Elements.Balance, cycle.ElementCount)

	assert.Equal(t, elemental.LevelBalanced, r.Strength.Level)
	assert.InDelta(t, 0.499, r.Strength.Ratio, 1e-9)
	assert.Equal(t, []cycle.Element{cycle.Earth}, r.Strength.Favorable)
	assert.NotEmpty(t, r.Strength.Description)

	assert.Equal(t, cycle.Earth, r.Advisory.Element)
	assert.Equal(t, "中央", r.Advisory.Direction)
	assert.Contains(t, r.Advisory.Summary, "中央")

	assert.Equal(t, role.PatternSevenKillings, r.Roles.Pattern.Name)
	assert.Equal(t, 3, r.Roles.Tally["比肩"])
	require.Len(t, r.Roles.Dominant, 3)
	assert.Equal(t, role.Friend, r.Roles.Dominant[0].Role)

	require.NotNil(t, r.Decades.Current)
	assert.Equal(t, "甲申", r.Decades.Current.Pair.String())
	assert.Equal(t, r.Decades.Current.Decade.Interpretation(), r.Decades.Current.Interpretation)
	flagged := lo.Filter(r.Decades.Decades, func(d luck.Decade, _ int) bool { return d.Current })
	require.Len(t, flagged, 1)
	assert.Equal(t, "甲申", flagged[0].Pair.String())
	assert.Equal(t, "27-36岁", flagged[0].Range)

	require.Len(t, r.Annual.Years, luck.WindowSize)
	require.NotNil(t, r.Annual.Target)
	assert.Equal(t, 2024, r.Annual.Target.Year.Year.Year)
	assert.Equal(t, "甲辰", r.Annual.Target.Pair.String())
	require.NotNil(t, r.Annual.Combination)
	assert.Equal(t, luck.GradeExcellent, r.Annual.Combination.Grade)

	kinds := lo.Map(r.Markers.All, func(rec marker.Record, _ int) marker.Kind { return rec.Kind })
	assert.Equal(t, []marker.Kind{marker.General, marker.Doom, marker.WidowStar}, kinds)
	assert.Len(t, r.Markers.Favorable, 1)
	assert.Equal(t, "八字地支关系较为平和。", r.Relations.Summary)
}

func TestAnalyzeAnnualMarkers(t *testing.T) {
	r := Analyze(reference(t))

	shen, ok := lo.Find(r.Annual.Years, func(y Year) bool { return y.Pair.Branch == cycle.BranchShen })
	require.True(t, ok)
	assert.Equal(t, 2028, shen.Year.Year)
	kinds := lo.Map(shen.Markers, func(rec marker.Record, _ int) marker.Kind { return rec.Kind })
	assert.Equal(t, []marker.Kind{marker.TravelHorse, marker.Prosperity}, kinds)

	assert.Equal(t, r.Annual.Years, AnnualWindow(reference(t).Birth, 2024))
}

func TestAnalyzeExplicitCurrentAge(t *testing.T) {
	req := reference(t)
	req.CurrentAge = 5
	r := Analyze(req)

	assert.Equal(t, 5, r.CurrentAge)
	assert.Nil(t, r.Decades.Current)
	assert.False(t, lo.SomeBy(r.Decades.Decades, func(d luck.Decade) bool { return d.Current }))
	assert.Nil(t, r.Annual.Combination)
	assert.NotNil(t, r.Annual.Target)
}

func TestWithDefaults(t *testing.T) {
	b := reference(t).Birth

	r := Request{Birth: b}.WithDefaults(2030)
	assert.Equal(t, 2030, r.TargetYear)
	assert.Equal(t, 41, r.CurrentAge)

	r = Request{Birth: b, TargetYear: 2000, CurrentAge: 12}.WithDefaults(2030)
	assert.Equal(t, 2000, r.TargetYear)
	assert.Equal(t, 12, r.CurrentAge)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	assert.Equal(t, Analyze(reference(t)), Analyze(reference(t)))
}

func TestResultJSONRoundTrip(t *testing.T) {
	r := Analyze(reference(t))

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var back Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, &back)
}
