package marker

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// PairRelation is a clash or combination between two pillar branches.
type PairRelation struct {
	First       cycle.Branch `json:"first"`
	Second      cycle.Branch `json:"second"`
	FirstAt     Position     `json:"firstAt"`
	SecondAt    Position     `json:"secondAt"`
	Description string       `json:"description"`
}

func (r PairRelation) label() string {
	return r.First.String() + r.Second.String()
}

// Triad is a complete three-branch frame.
type Triad struct {
	Branches    [3]cycle.Branch `json:"branches"`
	Element     cycle.Element   `json:"element"`
	Frame       string          `json:"frame"`
	Description string          `json:"description"`
}

// Punishment is a three-punishment pattern present among the branches.
type Punishment struct {
	Name        string         `json:"name"`
	Branches    []cycle.Branch `json:"branches"`
	Description string         `json:"description"`
}

// Relations is every branch interaction of a chart.
type Relations struct {
	Clashes      []PairRelation `json:"clashes"`
	Combinations []PairRelation `json:"combinations"`
	Triads       []Triad        `json:"triads"`
	Punishments  []Punishment   `json:"punishments"`
	Summary      string         `json:"summary"`
}

// combinePartner is the six-harmony partner of every branch.
var combinePartner = [cycle.BranchCount]cycle.Branch{
	cycle.BranchZi:   cycle.BranchChou,
	cycle.BranchChou: cycle.BranchZi,
	cycle.BranchYin:  cycle.BranchHai,
	cycle.BranchMao:  cycle.BranchXu,
	cycle.BranchChen: cycle.BranchYou,
	cycle.BranchSi:   cycle.BranchShen,
	cycle.BranchWu:   cycle.BranchWei,
	cycle.BranchWei:  cycle.BranchWu,
	cycle.BranchShen: cycle.BranchSi,
	cycle.BranchYou:  cycle.BranchChen,
	cycle.BranchXu:   cycle.BranchMao,
	cycle.BranchHai:  cycle.BranchYin,
}

// ClashPartner is the branch opposite b on the twelve-branch circle.
func ClashPartner(b cycle.Branch) cycle.Branch {
	return b.Offset(6)
}

func CombinePartner(b cycle.Branch) cycle.Branch {
	return combinePartner[b]
}

var triads = [...]struct {
	branches [3]cycle.Branch
	element  cycle.Element
	frame    string
}{
	{[3]cycle.Branch{cycle.BranchShen, cycle.BranchZi, cycle.BranchChen}, cycle.Water, "水局"},
	{[3]cycle.Branch{cycle.BranchYin, cycle.BranchWu, cycle.BranchXu}, cycle.Fire, "火局"},
	{[3]cycle.Branch{cycle.BranchSi, cycle.BranchYou, cycle.BranchChou}, cycle.Metal, "金局"},
	{[3]cycle.Branch{cycle.BranchHai, cycle.BranchMao, cycle.BranchWei}, cycle.Wood, "木局"},
}

// punishmentRules lists the group punishments with the number of distinct
// members that must be present.
var punishmentRules = [...]struct {
	name    string
	members []cycle.Branch
	needed  int
}{
	{"无恩之刑", []cycle.Branch{cycle.BranchYin, cycle.BranchSi, cycle.BranchShen}, 2},
	{"恃势之刑", []cycle.Branch{cycle.BranchChou, cycle.BranchXu, cycle.BranchWei}, 2},
	{"无礼之刑", []cycle.Branch{cycle.BranchZi, cycle.BranchMao}, 2},
}

// selfPunishing branches punish themselves when they occur twice or more.
var selfPunishing = [...]cycle.Branch{cycle.BranchChen, cycle.BranchWu, cycle.BranchYou, cycle.BranchHai}

func joinBranches(bs []cycle.Branch) string {
	var sb strings.Builder
	for _, b := range bs {
		sb.WriteString(b.String())
	}
	return sb.String()
}

// FindRelations checks the six unordered branch pairs against the clash and
// combination tables and the branch set against the triad and punishment
// tables.
func FindRelations(p cycle.Pillars) Relations {
	branches := p.Branches()
	rel := Relations{
		Clashes:      []PairRelation{},
		Combinations: []PairRelation{},
		Triads:       []Triad{},
		Punishments:  []Punishment{},
	}

	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			a, b := branches[i], branches[j]
			pi, pj := Position(i), Position(j)
			if ClashPartner(a) == b {
				rel.Clashes = append(rel.Clashes, PairRelation{
					First: a, Second: b, FirstAt: pi, SecondAt: pj,
					Description: fmt.Sprintf("%s%s与%s%s相冲", pi, a, pj, b),
				})
			}
			if CombinePartner(a) == b {
				rel.Combinations = append(rel.Combinations, PairRelation{
					First: a, Second: b, FirstAt: pi, SecondAt: pj,
					Description: fmt.Sprintf("%s%s与%s%s相合", pi, a, pj, b),
				})
			}
		}
	}

	present := lo.Uniq(branches[:])
	for _, t := range triads {
		if lo.Every(present, t.branches[:]) {
			label := joinBranches(t.branches[:])
			rel.Triads = append(rel.Triads, Triad{
				Branches:    t.branches,
				Element:     t.element,
				Frame:       t.frame,
				Description: fmt.Sprintf("八字中有%s三合%s", label, t.frame),
			})
		}
	}

	for _, rule := range punishmentRules {
		members := lo.Intersect(present, rule.members)
		if len(members) >= rule.needed {
			rel.Punishments = append(rel.Punishments, Punishment{
				Name:        rule.name,
				Branches:    members,
				Description: fmt.Sprintf("地支%s构成%s", joinBranches(members), rule.name),
			})
		}
	}
	for _, b := range selfPunishing {
		if lo.Count(branches[:], b) >= 2 {
			rel.Punishments = append(rel.Punishments, Punishment{
				Name:        "自刑",
				Branches:    []cycle.Branch{b, b},
				Description: fmt.Sprintf("地支%s%s自刑", b, b),
			})
		}
	}

	rel.Summary = rel.summarize()
	return rel
}

func (r Relations) summarize() string {
	var parts []string
	if len(r.Triads) > 0 {
		frames := lo.Map(r.Triads, func(t Triad, _ int) string { return t.Frame })
		parts = append(parts, fmt.Sprintf("八字有三合局：%s，五行力量加强。", strings.Join(frames, "、")))
	}
	if len(r.Combinations) > 0 {
		labels := lo.Map(r.Combinations, func(c PairRelation, _ int) string { return c.label() })
		parts = append(parts, fmt.Sprintf("有六合：%s，主和谐贵人。", strings.Join(labels, "、")))
	}
	if len(r.Clashes) > 0 {
		labels := lo.Map(r.Clashes, func(c PairRelation, _ int) string { return c.label() })
		parts = append(parts, fmt.Sprintf("有六冲：%s，主变动不安。", strings.Join(labels, "、")))
	}
	if len(r.Punishments) > 0 {
		names := lo.Map(r.Punishments, func(p Punishment, _ int) string { return p.Name })
		parts = append(parts, fmt.Sprintf("有三刑：%s，需防是非刑伤。", strings.Join(lo.Uniq(names), "、")))
	}
	if len(parts) == 0 {
		return "八字地支关系较为平和。"
	}
	return strings.Join(parts, " ")
}
