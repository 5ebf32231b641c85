package cycle

import (
	"fmt"
)

type Polarity uint8

const (
	Yang Polarity = iota
	Yin
)

var polarityGlyphs = [...]string{"阳", "阴"}

func (p Polarity) String() string {
	return polarityGlyphs[p]
}

func (p Polarity) MarshalText() ([]byte, error) {
	if p > Yin {
		return nil, fmt.Errorf("cycle: invalid polarity %d", p)
	}
	return []byte(p.String()), nil
}

func (p *Polarity) UnmarshalText(text []byte) error {
	for i, g := range polarityGlyphs {
		if g == string(text) {
			*p = Polarity(i)
			return nil
		}
	}
	return fmt.Errorf("cycle: unknown polarity %q", text)
}

// Stem is one of the ten heavenly stems.
type Stem uint8

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

const StemCount = 10

var stemGlyphs = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// StemAt returns the stem at the given position with the index wrapped
// around the ten-stem cycle, negative indices included.
func StemAt(i int) Stem {
	return Stem(mod(i, StemCount))
}

func (s Stem) Valid() bool {
	return s < StemCount
}

func (s Stem) String() string {
	return stemGlyphs[s.must()]
}

// Element pairs stems two by two: 甲乙 wood, 丙丁 fire and so on.
func (s Stem) Element() Element {
	return Element(s.must() / 2)
}

func (s Stem) Polarity() Polarity {
	return Polarity(s.must() % 2)
}

// Offset walks the stem cycle by n steps in either direction.
func (s Stem) Offset(n int) Stem {
	return StemAt(int(s.must()) + n)
}

func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cycle: invalid stem %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Stem) UnmarshalText(text []byte) error {
	v, err := ParseStem(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Stem) must() Stem {
	if !s.Valid() {
		panic(fmt.Sprintf("cycle: stem index %d out of range", s))
	}
	return s
}

func ParseStem(s string) (Stem, error) {
	for i, g := range stemGlyphs {
		if g == s {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("cycle: unknown stem %q", s)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
