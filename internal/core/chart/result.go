// Package chart assembles the full profile of a birth moment from the
// core engines.
package chart

import (
	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/core/elemental"
	"xuanxin.dev/backend-next/internal/core/luck"
	"xuanxin.dev/backend-next/internal/core/marker"
	"xuanxin.dev/backend-next/internal/core/role"
)

// Pillar is the serialized view of one pillar.
type Pillar struct {
	Position      cycle.Position `json:"position"`
	Label         cycle.Pair     `json:"label"`
	Stem          cycle.Stem     `json:"stem"`
	Branch        cycle.Branch   `json:"branch"`
	StemElement   cycle.Element  `json:"stemElement"`
	BranchElement cycle.Element  `json:"branchElement"`
	HiddenStems   []cycle.Stem   `json:"hiddenStems"`
	Nayin         cycle.Nayin    `json:"nayin"`
}

type DayMaster struct {
	Stem     cycle.Stem     `json:"stem"`
	Element  cycle.Element  `json:"element"`
	Polarity cycle.Polarity `json:"polarity"`
}

// Layout is the pillar layout of a chart, without any reading.
type Layout struct {
	Label     string    `json:"label"`
	Pillars   [4]Pillar `json:"pillars"`
	DayMaster DayMaster `json:"dayMaster"`
	Zodiac    string    `json:"zodiac"`
}

// Elements carries the element vector in its raw, percentage and balance
// forms, keyed by the English element name.
type Elements struct {
	Raw         map[string]float64           `json:"raw"`
	Percentages map[string]float64           `json:"percentages"`
	Balance     map[string]elemental.Balance `json:"balance"`
	Total       float64                      `json:"total"`
	Strongest   cycle.Element                `json:"strongest"`
	Weakest     cycle.Element                `json:"weakest"`
}

type Strength struct {
	Element     cycle.Element   `json:"element"`
	Ratio       float64         `json:"ratio"`
	Level       elemental.Level `json:"level"`
	Description string          `json:"description"`
	Favorable   []cycle.Element `json:"favorable"`
	Supportive  []cycle.Element `json:"supportive"`
	Unfavorable []cycle.Element `json:"unfavorable"`
	Hostile     []cycle.Element `json:"hostile"`
	Analysis    string          `json:"analysis"`
}

type Advisory struct {
	elemental.Advisory
	Summary string `json:"summary"`
}

type Pattern struct {
	Name        role.Pattern `json:"name"`
	Description string       `json:"description"`
}

type Roles struct {
	Breakdown   role.Breakdown   `json:"breakdown"`
	Tally       map[string]int   `json:"tally"`
	Dominant    []role.Count     `json:"dominant"`
	Pattern     Pattern          `json:"pattern"`
	Personality role.Personality `json:"personality"`
}

type CurrentDecade struct {
	luck.Decade
	Interpretation string `json:"interpretation"`
}

type Decades struct {
	luck.Progression
	Current *CurrentDecade `json:"current"`
}

// Year is an annual entry with the markers its branch triggers.
type Year struct {
	luck.Year
	Markers []marker.Record `json:"markers"`
}

type TargetYear struct {
	Year
	Interpretation string `json:"interpretation"`
}

type Annual struct {
	Years       []Year            `json:"years"`
	Target      *TargetYear       `json:"target"`
	Combination *luck.Combination `json:"combination"`
}

type Markers struct {
	All []marker.Record `json:"all"`
	marker.Summary
}

// Result is the structured profile of a birth moment. Every field is
// derived from the birth, the target year and the current age.
type Result struct {
	Birth      cycle.Birth      `json:"birth"`
	TargetYear int              `json:"targetYear"`
	CurrentAge int              `json:"currentAge"`
	Layout     Layout           `json:"layout"`
	Elements   Elements         `json:"elements"`
	Strength   Strength         `json:"strength"`
	Advisory   Advisory         `json:"advisory"`
	Roles      Roles            `json:"roles"`
	Decades    Decades          `json:"decades"`
	Annual     Annual           `json:"annual"`
	Markers    Markers          `json:"markers"`
	Relations  marker.Relations `json:"relations"`
}
