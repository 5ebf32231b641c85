package role

import (
	"sort"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// StemRole is a stem tagged with its role towards the day master.
type StemRole struct {
	Stem  cycle.Stem `json:"stem"`
	Role  Role       `json:"role"`
	Short string     `json:"short"`
}

func tag(dm, s cycle.Stem) StemRole {
	r := Of(dm, s)
	return StemRole{Stem: s, Role: r, Short: r.Short()}
}

// PillarRoles holds the roles of one pillar. The visible stem of the day
// pillar is the day master itself and carries no role.
type PillarRoles struct {
	Position  cycle.Position `json:"position"`
	Stem      cycle.Stem     `json:"stem"`
	DayMaster bool           `json:"dayMaster"`
	Role      *StemRole      `json:"role,omitempty"`
	Hidden    []StemRole     `json:"hidden"`
}

// Breakdown tags the visible and hidden stems of every pillar.
type Breakdown struct {
	DayMaster cycle.Stem     `json:"dayMaster"`
	Pillars   [4]PillarRoles `json:"pillars"`
}

func NewBreakdown(p cycle.Pillars) Breakdown {
	dm := p.DayMaster()
	b := Breakdown{DayMaster: dm}
	for _, pos := range cycle.Positions {
		pair := p.At(pos)
		pr := PillarRoles{
			Position:  pos,
			Stem:      pair.Stem,
			DayMaster: pos == cycle.PositionDay,
		}
		if !pr.DayMaster {
			sr := tag(dm, pair.Stem)
			pr.Role = &sr
		}
		for _, h := range pair.HiddenStems() {
			pr.Hidden = append(pr.Hidden, tag(dm, h))
		}
		b.Pillars[pos] = pr
	}
	return b
}

// Tally counts the roles of the three non-day visible stems and of every
// hidden stem.
func (b Breakdown) Tally() Tally {
	var t Tally
	for _, pr := range b.Pillars {
		if pr.Role != nil {
			t[pr.Role.Role]++
		}
		for _, h := range pr.Hidden {
			t[h.Role]++
		}
	}
	return t
}

// Tally is a count per role, indexed by Role.
type Tally [RoleCount]int

// Map exposes the counts keyed by role, zero counts included.
func (t Tally) Map() map[Role]int {
	m := make(map[Role]int, RoleCount)
	for _, r := range Roles {
		m[r] = t[r]
	}
	return m
}

// Count pairs a role with how often it occurs.
type Count struct {
	Role  Role `json:"role"`
	Count int  `json:"count"`
}

const dominantLimit = 3

// Dominant returns up to three roles with a non-zero count, most frequent
// first; equal counts keep role order.
func (t Tally) Dominant() []Count {
	counts := make([]Count, 0, RoleCount)
	for _, r := range Roles {
		if t[r] > 0 {
			counts = append(counts, Count{Role: r, Count: t[r]})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > dominantLimit {
		counts = counts[:dominantLimit]
	}
	return counts
}
