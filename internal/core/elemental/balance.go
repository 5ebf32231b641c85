package elemental

import (
	"fmt"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// Balance grades the share of an element against the expected 20%.
type Balance uint8

const (
	VeryStrong Balance = iota
	Strong
	Even
	Weak
	VeryWeak
)

var balanceGlyphs = [...]string{"过旺", "偏旺", "平衡", "偏弱", "过弱"}

func (b Balance) String() string {
	return balanceGlyphs[b]
}

func (b Balance) MarshalText() ([]byte, error) {
	if int(b) >= len(balanceGlyphs) {
		return nil, fmt.Errorf("elemental: invalid balance %d", b)
	}
	return []byte(b.String()), nil
}

func (b *Balance) UnmarshalText(text []byte) error {
	for i, g := range balanceGlyphs {
		if g == string(text) {
			*b = Balance(i)
			return nil
		}
	}
	return fmt.Errorf("elemental: unknown balance %q", text)
}

// BalanceOf grades a percentage share.
func BalanceOf(percentage float64) Balance {
	switch {
	case percentage > 30:
		return VeryStrong
	case percentage > 24:
		return Strong
	case percentage < 10:
		return VeryWeak
	case percentage < 16:
		return Weak
	default:
		return Even
	}
}

// Balance grades every element of the vector by its percentage share.
func (v Vector) Balance() map[cycle.Element]Balance {
	pct := v.Percentages()
	m := make(map[cycle.Element]Balance, cycle.ElementCount)
	for _, e := range cycle.Elements {
		m[e] = BalanceOf(pct[e])
	}
	return m
}
