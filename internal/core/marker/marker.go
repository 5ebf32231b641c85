// Package marker looks up the symbolic stars of a chart and the
// interactions between its branches.
package marker

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// Category tells whether a marker is auspicious.
type Category uint8

const (
	Favorable Category = iota
	Unfavorable
	Neutral
)

var categoryGlyphs = [...]string{"吉神", "凶煞", "中性"}

func (c Category) String() string {
	return categoryGlyphs[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if int(c) >= len(categoryGlyphs) {
		return nil, fmt.Errorf("marker: invalid category %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for i, g := range categoryGlyphs {
		if g == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("marker: unknown category %q", text)
}

// Position is where a marker was found. The four pillar positions mirror
// cycle.Position; PositionAnnual marks a marker triggered by a year branch.
type Position uint8

const (
	PositionYear Position = iota
	PositionMonth
	PositionDay
	PositionHour
	PositionAnnual
)

var positionGlyphs = [...]string{"年支", "月支", "日支", "时支", "流年"}

func positionOf(p cycle.Position) Position {
	return Position(p)
}

func (p Position) String() string {
	return positionGlyphs[p]
}

func (p Position) MarshalText() ([]byte, error) {
	if int(p) >= len(positionGlyphs) {
		return nil, fmt.Errorf("marker: invalid position %d", p)
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	for i, g := range positionGlyphs {
		if g == string(text) {
			*p = Position(i)
			return nil
		}
	}
	return fmt.Errorf("marker: unknown position %q", text)
}

// Kind names a marker.
type Kind uint8

const (
	Nobleman Kind = iota
	Scholar
	TravelHorse
	PeachBlossom
	Canopy
	Blade
	Prosperity
	General
	Doom
	Robbery
	LonelyStar
	WidowStar
)

const KindCount = 12

type kindInfo struct {
	glyph       string
	category    Category
	description string
	influence   string
}

var kinds = [KindCount]kindInfo{
	Nobleman:     {"天乙贵人", Favorable, "天乙贵人是最有力的吉神，主逢凶化吉，遇难呈祥", "一生多得贵人相助，逢凶化吉，事业有成，人缘极佳"},
	Scholar:      {"文昌贵人", Favorable, "文昌主聪明才智，学业有成", "聪明好学，考试运佳，适合从事文化教育工作"},
	TravelHorse:  {"驿马", Neutral, "驿马主奔波走动，变迁变动", "一生多奔波劳碌，适合从事外出、物流、旅游等行业"},
	PeachBlossom: {"桃花", Neutral, "桃花主异性缘、社交魅力", "异性缘佳，人缘好，但需注意感情纠纷"},
	Canopy:       {"华盖", Neutral, "华盖主孤高、艺术才华、宗教缘", "性格孤独清高，有艺术才华，适合研究神秘学问"},
	Blade:        {"羊刃", Unfavorable, "羊刃主刚强、暴躁、意外", "性格刚强，脾气暴躁，需防意外伤害和血光之灾"},
	Prosperity:   {"禄神", Favorable, "禄神主财禄、衣食无忧", "一生衣食无忧，财运稳定，不为生计发愁"},
	General:      {"将星", Favorable, "将星主权威、领导才能", "有领导才能，适合担任管理职务，受人敬重"},
	Doom:         {"亡神", Unfavorable, "亡神主聪明但易招是非", "聪明伶俐但性格偏激，易招惹是非口舌"},
	Robbery:      {"劫煞", Unfavorable, "劫煞主灾祸、意外", "需防突发灾祸和意外事故，宜小心谨慎"},
	LonelyStar:   {"孤辰", Unfavorable, "孤辰主孤独、男命忌", "性格孤僻，婚姻不顺，男命尤忌"},
	WidowStar:    {"寡宿", Unfavorable, "寡宿主孤寡、女命忌", "性格孤僻，婚姻不顺，女命尤忌"},
}

func (k Kind) info() kindInfo {
	if k >= KindCount {
		panic(fmt.Sprintf("marker: kind index %d out of range", k))
	}
	return kinds[k]
}

func (k Kind) String() string {
	return k.info().glyph
}

func (k Kind) Category() Category {
	return k.info().category
}

func (k Kind) Description() string {
	return k.info().description
}

func (k Kind) Influence() string {
	return k.info().influence
}

func (k Kind) MarshalText() ([]byte, error) {
	if k >= KindCount {
		return nil, fmt.Errorf("marker: invalid kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, info := range kinds {
		if info.glyph == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("marker: unknown kind %q", text)
}

// Tables keyed by the day stem, in stem order.
var (
	noblemanOf = [cycle.StemCount][]cycle.Branch{
		{cycle.BranchChou, cycle.BranchWei}, // 甲
		{cycle.BranchZi, cycle.BranchShen},  // 乙
		{cycle.BranchHai, cycle.BranchYou},  // 丙
		{cycle.BranchHai, cycle.BranchYou},  // 丁
		{cycle.BranchChou, cycle.BranchWei}, // 戊
		{cycle.BranchZi, cycle.BranchShen},  // 己
		{cycle.BranchChou, cycle.BranchWei}, // 庚
		{cycle.BranchYin, cycle.BranchWu},   // 辛
		{cycle.BranchMao, cycle.BranchSi},   // 壬
		{cycle.BranchMao, cycle.BranchSi},   // 癸
	}
	scholarOf = [cycle.StemCount]cycle.Branch{
		cycle.BranchSi, cycle.BranchWu, cycle.BranchShen, cycle.BranchYou, cycle.BranchShen,
		cycle.BranchYou, cycle.BranchHai, cycle.BranchZi, cycle.BranchYin, cycle.BranchMao,
	}
	bladeOf = [cycle.StemCount]cycle.Branch{
		cycle.BranchMao, cycle.BranchYin, cycle.BranchWu, cycle.BranchSi, cycle.BranchWu,
		cycle.BranchSi, cycle.BranchYou, cycle.BranchShen, cycle.BranchZi, cycle.BranchHai,
	}
	prosperityOf = [cycle.StemCount]cycle.Branch{
		cycle.BranchYin, cycle.BranchMao, cycle.BranchSi, cycle.BranchWu, cycle.BranchSi,
		cycle.BranchWu, cycle.BranchShen, cycle.BranchYou, cycle.BranchHai, cycle.BranchZi,
	}
)

// Tables keyed by the triad of the year branch: 申子辰, 巳酉丑, 寅午戌,
// 亥卯未, which is the branch index mod 4.
var triadTables = map[Kind][4]cycle.Branch{
	TravelHorse:  {cycle.BranchYin, cycle.BranchHai, cycle.BranchShen, cycle.BranchSi},
	PeachBlossom: {cycle.BranchYou, cycle.BranchWu, cycle.BranchMao, cycle.BranchZi},
	Canopy:       {cycle.BranchChen, cycle.BranchChou, cycle.BranchXu, cycle.BranchWei},
	General:      {cycle.BranchZi, cycle.BranchYou, cycle.BranchWu, cycle.BranchMao},
	Doom:         {cycle.BranchHai, cycle.BranchShen, cycle.BranchSi, cycle.BranchYin},
}

// Tables keyed by the season of the year branch: 寅卯辰, 巳午未, 申酉戌,
// 亥子丑.
var seasonTables = map[Kind][4]cycle.Branch{
	LonelyStar: {cycle.BranchSi, cycle.BranchShen, cycle.BranchHai, cycle.BranchYin},
	WidowStar:  {cycle.BranchChou, cycle.BranchChen, cycle.BranchWei, cycle.BranchXu},
}

func triad(b cycle.Branch) int {
	return int(b) % 4
}

// robberyOf is keyed by the year branch directly; it does not follow the
// triads.
var robberyOf = [cycle.BranchCount]cycle.Branch{
	cycle.BranchSi, cycle.BranchXu, cycle.BranchSi, cycle.BranchChen,    // 子丑寅卯
	cycle.BranchHai, cycle.BranchYin, cycle.BranchHai, cycle.BranchChen, // 辰巳午未
	cycle.BranchHai, cycle.BranchMao, cycle.BranchSi, cycle.BranchShen,  // 申酉戌亥
}

func season(b cycle.Branch) int {
	return (int(b) + 10) % 12 / 3
}

// Targets returns the branches that trigger kind k for the given day master
// and year branch.
func Targets(k Kind, dm cycle.Stem, yearBranch cycle.Branch) []cycle.Branch {
	switch k {
	case Nobleman:
		return append([]cycle.Branch(nil), noblemanOf[dm]...)
	case Scholar:
		return []cycle.Branch{scholarOf[dm]}
	case Blade:
		return []cycle.Branch{bladeOf[dm]}
	case Prosperity:
		return []cycle.Branch{prosperityOf[dm]}
	case Robbery:
		return []cycle.Branch{robberyOf[yearBranch]}
	}
	if t, ok := triadTables[k]; ok {
		return []cycle.Branch{t[triad(yearBranch)]}
	}
	if t, ok := seasonTables[k]; ok {
		return []cycle.Branch{t[season(yearBranch)]}
	}
	panic(fmt.Sprintf("marker: no table for kind %d", k))
}

// Record is a marker found in a chart.
type Record struct {
	Kind        Kind         `json:"name"`
	Category    Category     `json:"category"`
	Position    Position     `json:"position"`
	Branch      cycle.Branch `json:"branch"`
	Description string       `json:"description"`
	Influence   string       `json:"influence"`
}

func newRecord(k Kind, pos Position, b cycle.Branch) Record {
	return Record{
		Kind:        k,
		Category:    k.Category(),
		Position:    pos,
		Branch:      b,
		Description: k.Description(),
		Influence:   k.Influence(),
	}
}

// natalKinds is the detection order of the natal markers.
var natalKinds = [...]Kind{
	Nobleman, Scholar, TravelHorse, PeachBlossom, Canopy, Blade,
	Prosperity, General, Doom, Robbery, LonelyStar, WidowStar,
}

// annualKinds are the markers a year branch can trigger.
var annualKinds = [...]Kind{Nobleman, Scholar, TravelHorse, PeachBlossom, Blade, Prosperity}

// Find records every marker whose target branch is among the four
// branches, positioned at the first pillar holding it.
func Find(p cycle.Pillars) []Record {
	dm, yb := p.DayMaster(), p.Year.Branch
	records := []Record{}
	for _, k := range natalKinds {
		for _, b := range Targets(k, dm, yb) {
			if pos, ok := p.Find(b); ok {
				records = append(records, newRecord(k, positionOf(pos), b))
			}
		}
	}
	return records
}

// Annual records the markers a year branch triggers for the chart.
func Annual(p cycle.Pillars, yearBranch cycle.Branch) []Record {
	dm, yb := p.DayMaster(), p.Year.Branch
	records := []Record{}
	for _, k := range annualKinds {
		if lo.Contains(Targets(k, dm, yb), yearBranch) {
			records = append(records, newRecord(k, PositionAnnual, yearBranch))
		}
	}
	return records
}

// Summary groups the records by category.
type Summary struct {
	Favorable   []Record `json:"favorable"`
	Unfavorable []Record `json:"unfavorable"`
	Neutral     []Record `json:"neutral"`
	Text        string   `json:"text"`
}

func names(rs []Record) string {
	return strings.Join(lo.Map(rs, func(r Record, _ int) string { return r.Kind.String() }), "、")
}

// Summarize groups the records and renders the summary line.
func Summarize(records []Record) Summary {
	byCategory := func(c Category) []Record {
		return lo.Filter(records, func(r Record, _ int) bool { return r.Category == c })
	}
	s := Summary{
		Favorable:   byCategory(Favorable),
		Unfavorable: byCategory(Unfavorable),
		Neutral:     byCategory(Neutral),
	}

	var parts []string
	if n := len(s.Favorable); n > 0 {
		parts = append(parts, fmt.Sprintf("八字带有%d个吉神：%s，主一生多贵人相助，运势较好。", n, names(s.Favorable)))
	}
	if n := len(s.Unfavorable); n > 0 {
		parts = append(parts, fmt.Sprintf("同时带有%d个凶煞：%s，需注意相关事项。", n, names(s.Unfavorable)))
	}
	if len(s.Neutral) > 0 {
		parts = append(parts, fmt.Sprintf("中性神煞有：%s，影响因人而异。", names(s.Neutral)))
	}
	if len(parts) == 0 {
		parts = append(parts, "八字中无明显神煞。")
	}
	s.Text = strings.Join(parts, " ")
	return s
}
