// Package role tags every stem of a chart with its relation to the day
// master and derives the tally, pattern and personality readings from it.
package role

import (
	"fmt"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// Role is one of the ten relations a stem can hold towards the day master.
// Roles come in pairs sharing an elemental relation; the first of each
// pair is the same-polarity one.
type Role uint8

const (
	Friend Role = iota
	RobWealth
	EatingGod
	HurtingOfficer
	IndirectWealth
	DirectWealth
	SevenKillings
	DirectOfficer
	IndirectResource
	DirectResource
)

const RoleCount = 10

var Roles = [RoleCount]Role{
	Friend, RobWealth, EatingGod, HurtingOfficer, IndirectWealth,
	DirectWealth, SevenKillings, DirectOfficer, IndirectResource, DirectResource,
}

var roleNames = [RoleCount]struct {
	glyph, short, ident string
}{
	{"比肩", "比", "Friend"},
	{"劫财", "劫", "RobWealth"},
	{"食神", "食", "EatingGod"},
	{"伤官", "伤", "HurtingOfficer"},
	{"偏财", "偏", "IndirectWealth"},
	{"正财", "财", "DirectWealth"},
	{"七杀", "杀", "SevenKillings"},
	{"正官", "官", "DirectOfficer"},
	{"偏印", "枭", "IndirectResource"},
	{"正印", "印", "DirectResource"},
}

func (r Role) Valid() bool {
	return r < RoleCount
}

func (r Role) String() string {
	return roleNames[r.must()].glyph
}

// Short is the one-glyph abbreviation used in compact chart layouts.
func (r Role) Short() string {
	return roleNames[r.must()].short
}

// Ident is the identifier the role goes by in pattern rules.
func (r Role) Ident() string {
	return roleNames[r.must()].ident
}

func (r Role) Group() Group {
	return Group(r.must() / 2)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("role: invalid role %d", r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	for i, n := range roleNames {
		if n.glyph == string(text) {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("role: unknown role %q", text)
}

func (r Role) must() Role {
	if !r.Valid() {
		panic(fmt.Sprintf("role: role index %d out of range", r))
	}
	return r
}

// Group is the elemental relation shared by a pair of roles.
type Group uint8

const (
	GroupPeer Group = iota
	GroupOutput
	GroupWealth
	GroupAuthority
	GroupResource
)

var groupGlyphs = [...]string{"比劫", "食伤", "财", "官杀", "印"}

func (g Group) String() string {
	return groupGlyphs[g]
}

// base maps an elemental relation seen from the day master to the first
// role of its pair.
var base = [...]Role{
	cycle.Same:         Friend,
	cycle.Generates:    EatingGod,
	cycle.Controls:     IndirectWealth,
	cycle.ControlledBy: SevenKillings,
	cycle.GeneratedBy:  IndirectResource,
}

// Classify derives the role from the element and polarity of both sides.
// It is total over every combination.
func Classify(dmElement cycle.Element, dmPolarity cycle.Polarity, element cycle.Element, polarity cycle.Polarity) Role {
	r := base[cycle.RelationOf(dmElement, element)]
	if dmPolarity != polarity {
		r++
	}
	return r
}

// Of returns the role other plays towards the day master dm.
func Of(dm, other cycle.Stem) Role {
	return Classify(dm.Element(), dm.Polarity(), other.Element(), other.Polarity())
}
