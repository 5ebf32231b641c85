package cycle

import (
	"fmt"
)

// Element is one of the five phases. The declaration order follows the
// generation cycle, so Generates and Controls are plain modular offsets.
type Element uint8

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

const ElementCount = 5

// Elements lists every element in generation order.
var Elements = [ElementCount]Element{Wood, Fire, Earth, Metal, Water}

var (
	elementGlyphs = [ElementCount]string{"木", "火", "土", "金", "水"}
	elementNames  = [ElementCount]string{"wood", "fire", "earth", "metal", "water"}
)

func (e Element) Valid() bool {
	return e < ElementCount
}

func (e Element) String() string {
	return elementGlyphs[e.must()]
}

// Name is the lowercase english name of the element.
func (e Element) Name() string {
	return elementNames[e.must()]
}

// Generates returns the element e gives birth to.
func (e Element) Generates() Element {
	return (e.must() + 1) % ElementCount
}

// Controls returns the element e overcomes.
func (e Element) Controls() Element {
	return (e.must() + 2) % ElementCount
}

// ControlledBy returns the element that overcomes e.
func (e Element) ControlledBy() Element {
	return (e.must() + 3) % ElementCount
}

// GeneratedBy returns the element that gives birth to e.
func (e Element) GeneratedBy() Element {
	return (e.must() + 4) % ElementCount
}

func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("cycle: invalid element %d", e)
	}
	return []byte(e.String()), nil
}

func (e *Element) UnmarshalText(text []byte) error {
	v, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func (e Element) must() Element {
	if !e.Valid() {
		panic(fmt.Sprintf("cycle: element index %d out of range", e))
	}
	return e
}

// ParseElement accepts either the glyph (木) or the english name (wood).
func ParseElement(s string) (Element, error) {
	for i := range elementGlyphs {
		if elementGlyphs[i] == s || elementNames[i] == s {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("cycle: unknown element %q", s)
}

// Relation is the directed relation of an element towards another one.
type Relation uint8

const (
	// Same means both sides share the element.
	Same Relation = iota
	// Generates means the subject gives birth to the object.
	Generates
	// Controls means the subject overcomes the object.
	Controls
	// ControlledBy means the object overcomes the subject.
	ControlledBy
	// GeneratedBy means the object gives birth to the subject.
	GeneratedBy
)

var relationNames = [...]string{"same", "generates", "controls", "controlledBy", "generatedBy"}

func (r Relation) String() string {
	return relationNames[r]
}

// RelationOf classifies how subject relates to object. Total over every
// element pair.
func RelationOf(subject, object Element) Relation {
	return Relation((object.must() + ElementCount - subject.must()) % ElementCount)
}
