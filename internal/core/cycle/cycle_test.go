package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(t *testing.T, label string) Pair {
	t.Helper()
	p, err := ParsePair(label)
	require.NoError(t, err)
	return p
}

func TestDayPairReferenceDates(t *testing.T) {
	cases := []struct {
		year, month, day int
		want             string
	}{
		{1900, 1, 1, "甲戌"},
		{1900, 1, 11, "甲申"},
		{1949, 10, 1, "甲子"},
		{1990, 5, 15, "庚辰"},
		{2000, 1, 1, "戊午"},
		{2008, 8, 8, "庚辰"},
	}
	for _, c := range cases {
		got := DayPair(c.year, c.month, c.day)
		assert.Equal(t, c.want, got.String(), "%04d-%02d-%02d", c.year, c.month, c.day)
	}
}

func TestDayPairIsModularInDayCount(t *testing.T) {
	for _, d := range []struct{ y, m, d int }{{1900, 1, 1}, {1937, 7, 7}, {1976, 2, 29}, {2023, 12, 31}, {2100, 3, 1}} {
		n := DaysSinceEpoch(d.y, d.m, d.d)
		p := DayPair(d.y, d.m, d.d)
		assert.Equal(t, Stem(n%10), p.Stem)
		assert.Equal(t, Branch((10+n)%12), p.Branch)
		assert.True(t, p.Valid())
	}
}

func TestYearPairPeriod(t *testing.T) {
	assert.Equal(t, YearPair(1990), YearPair(2050))
	assert.Equal(t, "庚午", YearPair(1990).String())
	assert.Equal(t, "甲子", YearPair(1984).String())
	for y := 1900; y < 2100; y++ {
		assert.Equal(t, YearPair(y), YearPair(y+60))
		assert.True(t, YearPair(y).Valid())
	}
}

func TestMonthPair(t *testing.T) {
	cases := []struct {
		year, month, day int
		want             string
	}{
		{1990, 5, 15, "辛巳"},
		{1990, 5, 5, "庚辰"},
		{1990, 12, 20, "戊子"},
		{1990, 1, 15, "丁丑"},
		// before 立春 the stem follows the previous solar year
		{1990, 1, 10, "丁丑"},
		{1990, 1, 3, "丙子"},
		{1990, 2, 4, "戊寅"},
		{2008, 8, 8, "庚申"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MonthPair(c.year, c.month, c.day).String(), "%04d-%02d-%02d", c.year, c.month, c.day)
	}
}

func TestSolarMonthIndex(t *testing.T) {
	assert.Equal(t, 0, SolarMonthIndex(2, 4))
	assert.Equal(t, 11, SolarMonthIndex(2, 3))
	assert.Equal(t, 11, SolarMonthIndex(1, 6))
	assert.Equal(t, 10, SolarMonthIndex(1, 5))
	assert.Equal(t, 10, SolarMonthIndex(12, 7))
}

func TestHourSlotWraparound(t *testing.T) {
	assert.Equal(t, HourSlot(23), HourSlot(0))
	assert.Equal(t, 0, HourSlot(0))
	assert.Equal(t, 1, HourSlot(1))
	assert.Equal(t, 1, HourSlot(2))
	assert.Equal(t, 6, HourSlot(11))
	assert.Equal(t, 6, HourSlot(12))
	assert.Equal(t, 11, HourSlot(22))
	assert.Equal(t, HourPair(StemGeng, 23), HourPair(StemGeng, 0))
	assert.Panics(t, func() { HourSlot(24) })
}

func TestComputeReferenceChart(t *testing.T) {
	b, err := NewBirth(1990, 5, 15, 10, Male)
	require.NoError(t, err)

	p := Compute(b)
	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", p.String())
	assert.Equal(t, StemGeng, p.DayMaster())
	assert.Equal(t, "马", p.Year.Branch.Zodiac())
	assert.Equal(t, "路旁土", p.Year.Nayin().String())
	assert.Equal(t, "白蜡金", p.Day.Nayin().String())

	pos, ok := p.Find(BranchSi)
	assert.True(t, ok)
	assert.Equal(t, PositionMonth, pos)
	_, ok = p.Find(BranchZi)
	assert.False(t, ok)
}

func TestNewBirthValidation(t *testing.T) {
	_, err := NewBirth(1899, 12, 31, 0, Male)
	assert.ErrorIs(t, err, ErrInvalidBirth)
	_, err = NewBirth(2023, 2, 29, 0, Male)
	assert.ErrorIs(t, err, ErrInvalidBirth)
	_, err = NewBirth(2024, 2, 29, 24, Female)
	assert.ErrorIs(t, err, ErrInvalidBirth)
	_, err = NewBirth(2024, 2, 29, 23, Female)
	assert.NoError(t, err)
}

func TestPairCycle(t *testing.T) {
	seen := map[Pair]bool{}
	for i := 0; i < CycleLength; i++ {
		p := PairAt(i)
		assert.True(t, p.Valid())
		assert.Equal(t, i, p.Index())
		seen[p] = true
	}
	assert.Len(t, seen, CycleLength)

	assert.Equal(t, "甲子", PairAt(60).String())
	assert.Equal(t, "癸亥", PairAt(-1).String())
	assert.Equal(t, "海中金", pair(t, "乙丑").Nayin().String())
	assert.Equal(t, "大海水", pair(t, "癸亥").Nayin().String())
	assert.Equal(t, Water, pair(t, "丙子").Nayin().Element())

	assert.Panics(t, func() { NewPair(StemJia, BranchChou) })
	_, err := ParsePair("甲丑")
	assert.Error(t, err)
}

func TestElementCycles(t *testing.T) {
	assert.Equal(t, Fire, Wood.Generates())
	assert.Equal(t, Wood, Water.Generates())
	assert.Equal(t, Earth, Wood.Controls())
	assert.Equal(t, Wood, Metal.Controls())
	assert.Equal(t, Fire, Water.Controls())
	for _, e := range Elements {
		assert.Equal(t, e, e.Generates().GeneratedBy())
		assert.Equal(t, e, e.Controls().ControlledBy())
		assert.Equal(t, Same, RelationOf(e, e))
		assert.Equal(t, Generates, RelationOf(e, e.Generates()))
		assert.Equal(t, Controls, RelationOf(e, e.Controls()))
		assert.Equal(t, ControlledBy, RelationOf(e, e.ControlledBy()))
		assert.Equal(t, GeneratedBy, RelationOf(e, e.GeneratedBy()))
	}
}

func TestTextRoundTrip(t *testing.T) {
	var e Element
	require.NoError(t, e.UnmarshalText([]byte("metal")))
	assert.Equal(t, Metal, e)
	text, err := e.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "金", string(text))

	var p Pair
	require.NoError(t, p.UnmarshalText([]byte("壬戌")))
	assert.Equal(t, NewPair(StemRen, BranchXu), p)

	g, err := ParseGender("女")
	require.NoError(t, err)
	assert.Equal(t, Female, g)
}

func TestBranchHiddenStems(t *testing.T) {
	for i := 0; i < BranchCount; i++ {
		b := Branch(i)
		hidden := b.HiddenStems()
		assert.NotEmpty(t, hidden)
		assert.LessOrEqual(t, len(hidden), 3)
		assert.Equal(t, hidden[0], b.PrimaryStem())
	}
	// the returned slice is a copy
	h := BranchChou.HiddenStems()
	h[0] = StemJia
	assert.Equal(t, StemJi, BranchChou.PrimaryStem())
}
