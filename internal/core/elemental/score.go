// Package elemental scores the five elements of a chart and classifies the
// strength of its day master.
package elemental

import (
	"fmt"

	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/util"
)

// seasonal is the strength multiplier of every element keyed by the month
// branch, columns in generation order (wood, fire, earth, metal, water).
var seasonal = [cycle.BranchCount][cycle.ElementCount]float64{
	cycle.BranchZi:   {1.0, 0.4, 0.6, 0.8, 1.2},
	cycle.BranchChou: {0.6, 0.4, 1.2, 1.0, 1.0},
	cycle.BranchYin:  {1.2, 1.0, 0.6, 0.4, 0.8},
	cycle.BranchMao:  {1.2, 1.0, 0.6, 0.4, 0.8},
	cycle.BranchChen: {1.0, 0.8, 1.2, 0.6, 0.6},
	cycle.BranchSi:   {0.8, 1.2, 1.0, 0.4, 0.4},
	cycle.BranchWu:   {0.8, 1.2, 1.0, 0.4, 0.4},
	cycle.BranchWei:  {0.6, 1.0, 1.2, 0.6, 0.4},
	cycle.BranchShen: {0.4, 0.6, 1.0, 1.2, 0.8},
	cycle.BranchYou:  {0.4, 0.6, 1.0, 1.2, 0.8},
	cycle.BranchXu:   {0.4, 0.6, 1.2, 1.0, 0.6},
	cycle.BranchHai:  {1.0, 0.4, 0.6, 0.8, 1.2},
}

const stemWeight = 1.0

// hiddenWeights weigh the primary, secondary and tertiary hidden stems.
var hiddenWeights = [3]float64{1.0, 0.5, 0.3}

// Seasonal returns the multiplier of e in the month ruled by monthBranch.
func Seasonal(monthBranch cycle.Branch, e cycle.Element) float64 {
	if !monthBranch.Valid() || !e.Valid() {
		panic(fmt.Sprintf("elemental: seasonal lookup out of table: %d/%d", monthBranch, e))
	}
	return seasonal[monthBranch][e]
}

// Vector holds a magnitude per element, indexed by cycle.Element.
type Vector [cycle.ElementCount]float64

// Score builds the seasonally weighted element vector of the pillars.
func Score(p cycle.Pillars) Vector {
	var v Vector
	month := p.Month.Branch
	for _, pr := range p.All() {
		e := pr.StemElement()
		v[e] += stemWeight * Seasonal(month, e)

		for i, s := range pr.HiddenStems() {
			he := s.Element()
			v[he] += hiddenWeights[i] * Seasonal(month, he)
		}
	}
	return v
}

func (v Vector) Total() float64 {
	var t float64
	for _, x := range v {
		t += x
	}
	return t
}

// Rounded returns the vector rounded to n decimals.
func (v Vector) Rounded(n int) Vector {
	var r Vector
	for i, x := range v {
		r[i] = util.RoundFloat64(x, n)
	}
	return r
}

// Percentages normalizes the vector to shares of 100, rounded to one
// decimal. A zero total yields a zero vector.
func (v Vector) Percentages() Vector {
	var r Vector
	total := v.Total()
	if total <= 0 {
		return r
	}
	for i, x := range v {
		r[i] = util.RoundFloat64(x/total*100, 1)
	}
	return r
}

// Strongest returns the element with the largest magnitude; ties resolve to
// the earliest element in generation order.
func (v Vector) Strongest() cycle.Element {
	best := cycle.Wood
	for _, e := range cycle.Elements {
		if v[e] > v[best] {
			best = e
		}
	}
	return best
}

// Weakest returns the element with the smallest magnitude; ties resolve to
// the earliest element in generation order.
func (v Vector) Weakest() cycle.Element {
	worst := cycle.Wood
	for _, e := range cycle.Elements {
		if v[e] < v[worst] {
			worst = e
		}
	}
	return worst
}

// Map exposes the vector keyed by element, for serialization.
func (v Vector) Map() map[cycle.Element]float64 {
	m := make(map[cycle.Element]float64, cycle.ElementCount)
	for _, e := range cycle.Elements {
		m[e] = v[e]
	}
	return m
}
