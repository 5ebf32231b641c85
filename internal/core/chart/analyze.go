package chart

import (
	"github.com/samber/lo"

	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/core/elemental"
	"xuanxin.dev/backend-next/internal/core/luck"
	"xuanxin.dev/backend-next/internal/core/marker"
	"xuanxin.dev/backend-next/internal/core/role"
	"xuanxin.dev/backend-next/internal/util"
)

// Request is the input of an analysis. A non-positive CurrentAge means the
// nominal age in the target year.
type Request struct {
	Birth      cycle.Birth
	TargetYear int
	CurrentAge int
}

// NominalAge counts the birth year as age 1.
func NominalAge(b cycle.Birth, year int) int {
	return year - b.Year + 1
}

// WithDefaults fills a missing target year with currentYear and a missing
// current age with the nominal age in the target year.
func (r Request) WithDefaults(currentYear int) Request {
	if r.TargetYear <= 0 {
		r.TargetYear = currentYear
	}
	r.CurrentAge = r.age()
	return r
}

func (r Request) age() int {
	if r.CurrentAge > 0 {
		return r.CurrentAge
	}
	return NominalAge(r.Birth, r.TargetYear)
}

func pillarOf(pos cycle.Position, pair cycle.Pair) Pillar {
	return Pillar{
		Position:      pos,
		Label:         pair,
		Stem:          pair.Stem,
		Branch:        pair.Branch,
		StemElement:   pair.StemElement(),
		BranchElement: pair.BranchElement(),
		HiddenStems:   pair.HiddenStems(),
		Nayin:         pair.Nayin(),
	}
}

func layoutOf(p cycle.Pillars) Layout {
	l := Layout{
		Label:  p.String(),
		Zodiac: p.Year.Branch.Zodiac(),
	}
	for _, pos := range cycle.Positions {
		l.Pillars[pos] = pillarOf(pos, p.At(pos))
	}
	dm := p.DayMaster()
	l.DayMaster = DayMaster{Stem: dm, Element: dm.Element(), Polarity: dm.Polarity()}
	return l
}

// Paipan lays out the four pillars of a birth without reading them.
func Paipan(b cycle.Birth) Layout {
	return layoutOf(cycle.Compute(b))
}

func byName[V any](m map[cycle.Element]V) map[string]V {
	return lo.MapKeys(m, func(_ V, e cycle.Element) string { return e.Name() })
}

func elementsOf(v elemental.Vector) Elements {
	return Elements{
		Raw:         byName(v.Rounded(2).Map()),
		Percentages: byName(v.Percentages().Map()),
		Balance:     byName(v.Balance()),
		Total:       util.RoundFloat64(v.Total(), 2),
		Strongest:   v.Strongest(),
		Weakest:     v.Weakest(),
	}
}

func strengthOf(s elemental.Strength) Strength {
	return Strength{
		Element:     s.Element,
		Ratio:       util.RoundFloat64(s.Ratio, 3),
		Level:       s.Level,
		Description: s.Level.Description(),
		Favorable:   s.Favorable,
		Supportive:  s.Supportive,
		Unfavorable: s.Unfavorable,
		Hostile:     s.Hostile,
		Analysis:    s.Analysis(),
	}
}

func rolesOf(p cycle.Pillars) Roles {
	bd := role.NewBreakdown(p)
	tally := bd.Tally()
	pattern := tally.Pattern()
	return Roles{
		Breakdown:   bd,
		Tally:       lo.MapKeys(tally.Map(), func(_ int, r role.Role) string { return r.String() }),
		Dominant:    tally.Dominant(),
		Pattern:     Pattern{Name: pattern, Description: pattern.Description()},
		Personality: tally.Personality(),
	}
}

func decadesOf(pr luck.Progression, age int) Decades {
	d := Decades{Progression: pr.MarkCurrent(age)}
	if i, ok := pr.Current(age); ok {
		cur := d.Decades[i]
		d.Current = &CurrentDecade{Decade: cur, Interpretation: cur.Interpretation()}
	}
	return d
}

func annualOf(p cycle.Pillars, s elemental.Strength, b cycle.Birth, target int) []Year {
	return lo.Map(luck.Annual(p, s, b, target), func(y luck.Year, _ int) Year {
		return Year{Year: y, Markers: marker.Annual(p, y.Pair.Branch)}
	})
}

// AnnualWindow rates the ten-year window around target with the markers of
// every year.
func AnnualWindow(b cycle.Birth, target int) []Year {
	p := cycle.Compute(b)
	return annualOf(p, elemental.Classify(p, elemental.Score(p)), b, target)
}

func targetIndex(years []Year) (int, bool) {
	target, ok := luck.TargetOf(lo.Map(years, func(y Year, _ int) luck.Year { return y.Year }))
	if !ok {
		return -1, false
	}
	_, i, _ := lo.FindIndexOf(years, func(y Year) bool { return y.Year.Year == target.Year })
	return i, true
}

// Analyze computes the full profile. It is deterministic in its request.
func Analyze(req Request) *Result {
	b := req.Birth
	age := req.age()
	p := cycle.Compute(b)
	v := elemental.Score(p)
	s := elemental.Classify(p, v)
	adv := elemental.AdvisoryFor(s.PrimaryFavorable())
	natal := marker.Find(p)

	r := &Result{
		Birth:      b,
		TargetYear: req.TargetYear,
		CurrentAge: age,
		Layout:     layoutOf(p),
		Elements:   elementsOf(v),
		Strength:   strengthOf(s),
		Advisory:   Advisory{Advisory: adv, Summary: adv.Summary()},
		Roles:      rolesOf(p),
		Decades:    decadesOf(luck.Decades(p, b), age),
		Markers:    Markers{All: natal, Summary: marker.Summarize(natal)},
		Relations:  marker.FindRelations(p),
	}

	r.Annual.Years = annualOf(p, s, b, req.TargetYear)
	if i, ok := targetIndex(r.Annual.Years); ok {
		target := r.Annual.Years[i]
		r.Annual.Target = &TargetYear{Year: target, Interpretation: target.Interpretation()}
		if r.Decades.Current != nil {
			c := luck.Combine(r.Decades.Current.Decade, target.Year)
			r.Annual.Combination = &c
		}
	}
	return r
}
