package cycle

import (
	"fmt"
)

// Branch is one of the twelve earthly branches.
type Branch uint8

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

const BranchCount = 12

var (
	branchGlyphs = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

	branchElements = [BranchCount]Element{
		Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
	}

	zodiacGlyphs = [BranchCount]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

	// hiddenStems lists the stems stored in each branch, primary first.
	hiddenStems = [BranchCount][]Stem{
		BranchZi:   {StemGui},
		BranchChou: {StemJi, StemGui, StemXin},
		BranchYin:  {StemJia, StemBing, StemWu},
		BranchMao:  {StemYi},
		BranchChen: {StemWu, StemYi, StemGui},
		BranchSi:   {StemBing, StemGeng, StemWu},
		BranchWu:   {StemDing, StemJi},
		BranchWei:  {StemJi, StemDing, StemYi},
		BranchShen: {StemGeng, StemRen, StemWu},
		BranchYou:  {StemXin},
		BranchXu:   {StemWu, StemXin, StemDing},
		BranchHai:  {StemRen, StemJia},
	}
)

// BranchAt returns the branch at the given position with the index wrapped
// around the twelve-branch cycle.
func BranchAt(i int) Branch {
	return Branch(mod(i, BranchCount))
}

func (b Branch) Valid() bool {
	return b < BranchCount
}

func (b Branch) String() string {
	return branchGlyphs[b.must()]
}

func (b Branch) Element() Element {
	return branchElements[b.must()]
}

func (b Branch) Polarity() Polarity {
	return Polarity(b.must() % 2)
}

// Zodiac is the animal sign of the branch.
func (b Branch) Zodiac() string {
	return zodiacGlyphs[b.must()]
}

// HiddenStems returns a copy of the one to three stems stored in the branch,
// primary first.
func (b Branch) HiddenStems() []Stem {
	return append([]Stem(nil), hiddenStems[b.must()]...)
}

// PrimaryStem is the leading hidden stem.
func (b Branch) PrimaryStem() Stem {
	return hiddenStems[b.must()][0]
}

func (b Branch) Offset(n int) Branch {
	return BranchAt(int(b.must()) + n)
}

func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("cycle: invalid branch %d", b)
	}
	return []byte(b.String()), nil
}

func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b Branch) must() Branch {
	if !b.Valid() {
		panic(fmt.Sprintf("cycle: branch index %d out of range", b))
	}
	return b
}

func ParseBranch(s string) (Branch, error) {
	for i, g := range branchGlyphs {
		if g == s {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("cycle: unknown branch %q", s)
}
