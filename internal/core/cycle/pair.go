package cycle

import (
	"fmt"
	"unicode/utf8"
)

const CycleLength = 60

// Pair is a stem-branch pair. Stem and branch advance in lockstep, so only
// the 60 pairs whose indices share parity exist.
type Pair struct {
	Stem   Stem
	Branch Branch
}

// NewPair panics when the combination is not part of the sexagenary cycle.
func NewPair(s Stem, b Branch) Pair {
	p := Pair{Stem: s.must(), Branch: b.must()}
	if !p.Valid() {
		panic(fmt.Sprintf("cycle: %s%s is not a sexagenary pair", s, b))
	}
	return p
}

// PairAt returns the i-th pair of the cycle starting from 甲子.
func PairAt(i int) Pair {
	i = mod(i, CycleLength)
	return Pair{Stem: Stem(i % StemCount), Branch: Branch(i % BranchCount)}
}

func (p Pair) Valid() bool {
	return p.Stem.Valid() && p.Branch.Valid() && p.Stem%2 == Stem(p.Branch%2)
}

// Index is the position of the pair within the 60-cycle, 甲子 being 0.
func (p Pair) Index() int {
	return mod(6*int(p.Stem)-5*int(p.Branch), CycleLength)
}

func (p Pair) String() string {
	return p.Stem.String() + p.Branch.String()
}

func (p Pair) StemElement() Element {
	return p.Stem.Element()
}

func (p Pair) BranchElement() Element {
	return p.Branch.Element()
}

func (p Pair) HiddenStems() []Stem {
	return p.Branch.HiddenStems()
}

func (p Pair) Nayin() Nayin {
	return Nayin(p.Index() / 2)
}

// Offset walks stem and branch together by n steps.
func (p Pair) Offset(n int) Pair {
	return Pair{Stem: p.Stem.Offset(n), Branch: p.Branch.Offset(n)}
}

func (p Pair) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cycle: invalid pair %d/%d", p.Stem, p.Branch)
	}
	return []byte(p.String()), nil
}

func (p *Pair) UnmarshalText(text []byte) error {
	v, err := ParsePair(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePair parses a two-glyph label such as 庚午.
func ParsePair(label string) (Pair, error) {
	if utf8.RuneCountInString(label) != 2 {
		return Pair{}, fmt.Errorf("cycle: malformed pair label %q", label)
	}
	first, size := utf8.DecodeRuneInString(label)
	s, err := ParseStem(string(first))
	if err != nil {
		return Pair{}, err
	}
	b, err := ParseBranch(label[size:])
	if err != nil {
		return Pair{}, err
	}
	p := Pair{Stem: s, Branch: b}
	if !p.Valid() {
		return Pair{}, fmt.Errorf("cycle: %s is not a sexagenary pair", label)
	}
	return p, nil
}

// Nayin is the 30-fold "sound" classification shared by consecutive pairs
// of the cycle.
type Nayin uint8

const NayinCount = CycleLength / 2

var nayinTable = [NayinCount]struct {
	name    string
	element Element
}{
	{"海中金", Metal}, {"炉中火", Fire}, {"大林木", Wood}, {"路旁土", Earth}, {"剑锋金", Metal},
	{"山头火", Fire}, {"涧下水", Water}, {"城头土", Earth}, {"白蜡金", Metal}, {"杨柳木", Wood},
	{"泉中水", Water}, {"屋上土", Earth}, {"霹雳火", Fire}, {"松柏木", Wood}, {"长流水", Water},
	{"沙中金", Metal}, {"山下火", Fire}, {"平地木", Wood}, {"壁上土", Earth}, {"金箔金", Metal},
	{"覆灯火", Fire}, {"天河水", Water}, {"大驿土", Earth}, {"钗钏金", Metal}, {"桑柘木", Wood},
	{"大溪水", Water}, {"沙中土", Earth}, {"天上火", Fire}, {"石榴木", Wood}, {"大海水", Water},
}

func (n Nayin) String() string {
	return nayinTable[n].name
}

func (n Nayin) Element() Element {
	return nayinTable[n].element
}

func (n Nayin) MarshalText() ([]byte, error) {
	if n >= NayinCount {
		return nil, fmt.Errorf("cycle: invalid nayin %d", n)
	}
	return []byte(n.String()), nil
}

func (n *Nayin) UnmarshalText(text []byte) error {
	for i := range nayinTable {
		if nayinTable[i].name == string(text) {
			*n = Nayin(i)
			return nil
		}
	}
	return fmt.Errorf("cycle: unknown nayin %q", text)
}
