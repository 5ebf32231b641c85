package role

import (
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/rs/zerolog/log"
)

// Pattern is the structural classification of a chart.
type Pattern uint8

const (
	PatternDirectOfficer Pattern = iota
	PatternSevenKillings
	PatternDirectWealth
	PatternIndirectWealth
	PatternDirectResource
	PatternIndirectResource
	PatternEatingGod
	PatternHurtingOfficer
	PatternFriend
	PatternRobWealth
	PatternOrdinary
)

// patternRule pairs a pattern with the condition it is matched on. Rules
// are evaluated in declaration order and the first match wins.
type patternRule struct {
	pattern     Pattern
	glyph       string
	condition   string
	description string
}

var patternRules = [...]patternRule{
	{PatternDirectOfficer, "正官格", "DirectOfficer >= 1 && SevenKillings == 0", "正官格者，为人正直守规，有责任感，适合从政或管理工作。"},
	{PatternSevenKillings, "七杀格", "SevenKillings >= 1", "七杀格者，有魄力胆识，敢于担当，适合军警或企业管理。"},
	{PatternDirectWealth, "正财格", "DirectWealth >= 1", "正财格者，勤俭持家，理财有道，适合稳定的财务工作。"},
	{PatternIndirectWealth, "偏财格", "IndirectWealth >= 1", "偏财格者，善于交际，财运活跃，适合商业经营。"},
	{PatternDirectResource, "正印格", "DirectResource >= 1", "正印格者，学识渊博，有贵人相助，适合学术教育工作。"},
	{PatternIndirectResource, "偏印格", "IndirectResource >= 1", "偏印格者，思维独特，适合研究或偏门技艺。"},
	{PatternEatingGod, "食神格", "EatingGod >= 1 && HurtingOfficer == 0", "食神格者，才华横溢，性情温和，适合艺术创作或餐饮业。"},
	{PatternHurtingOfficer, "伤官格", "HurtingOfficer >= 1", "伤官格者，聪明伶俐，创新能力强，适合技术创新或艺术表演。"},
	{PatternFriend, "比肩格", "Friend >= 2", "比肩格者，独立自主，竞争意识强，适合独立创业。"},
	{PatternRobWealth, "劫财格", "RobWealth >= 2", "劫财格者，社交能力强，善于投机，需注意理财。"},
}

var ordinary = patternRule{PatternOrdinary, "普通格", "", "普通格局，各方面较为平衡。"}

// Env is the evaluation environment of pattern conditions: the count of
// every role keyed by Role.Ident.
func (t Tally) Env() map[string]int {
	env := make(map[string]int, RoleCount)
	for _, r := range Roles {
		env[r.Ident()] = t[r]
	}
	return env
}

// programs holds the compiled conditions, index-aligned with patternRules.
// The rule sources are constants, so a compile failure is a defect.
var programs = func() []*vm.Program {
	ps := make([]*vm.Program, len(patternRules))
	for i, rule := range patternRules {
		p, err := expr.Compile(rule.condition, expr.Env(Tally{}.Env()), expr.AsBool())
		if err != nil {
			panic(fmt.Sprintf("role: compile pattern %s: %v", rule.glyph, err))
		}
		ps[i] = p
	}
	return ps
}()

func (p Pattern) rule() patternRule {
	if p == PatternOrdinary {
		return ordinary
	}
	if int(p) >= len(patternRules) {
		panic(fmt.Sprintf("role: pattern index %d out of range", p))
	}
	return patternRules[p]
}

func (p Pattern) String() string {
	return p.rule().glyph
}

func (p Pattern) Description() string {
	return p.rule().description
}

func (p Pattern) MarshalText() ([]byte, error) {
	if p > PatternOrdinary {
		return nil, fmt.Errorf("role: invalid pattern %d", p)
	}
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	for _, rule := range append(patternRules[:], ordinary) {
		if rule.glyph == string(text) {
			*p = rule.pattern
			return nil
		}
	}
	return fmt.Errorf("role: unknown pattern %q", text)
}

// Pattern returns the first pattern whose condition holds for the tally,
// PatternOrdinary when none does.
func (t Tally) Pattern() Pattern {
	env := t.Env()
	for i, program := range programs {
		out, err := expr.Run(program, env)
		if err != nil {
			log.Error().
				Str("evt.name", "role.pattern.eval_error").
				Str("pattern", patternRules[i].glyph).
				Err(err).
				Msg("failed to evaluate pattern condition")
			continue
		}
		if matched, ok := out.(bool); ok && matched {
			return patternRules[i].pattern
		}
	}
	return PatternOrdinary
}
