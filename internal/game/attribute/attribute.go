// Package attribute holds a character's six attribute scores, their temporary
// bonuses and the derived modifiers.
package attribute

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type identifies one of the six attributes.
type Type string

const (
	Strength     Type = "STRENGTH"
	Agility      Type = "AGILITY"
	Wisdom       Type = "WISDOM"
	Intelligence Type = "INTELLIGENCE"
	Charisma     Type = "CHARISMA"
	Endurance    Type = "ENDURANCE"
)

// All lists every attribute in display order.
var All = []Type{Strength, Agility, Endurance, Intelligence, Wisdom, Charisma}

// Valid reports whether t is one of the six attributes.
func (t Type) Valid() bool {
	for _, a := range All {
		if a == t {
			return true
		}
	}
	return false
}

// ParseType accepts any casing, e.g. "strength" or "Strength".
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("attribute: unknown attribute type %q", s)
	}
	return t, nil
}

// Short returns the three-letter label, e.g. "STR".
func (t Type) Short() string {
	switch t {
	case Agility:
		return "AGI"
	case Endurance:
		return "END"
	case Intelligence:
		return "INT"
	case Wisdom:
		return "WIS"
	case Charisma:
		return "CHA"
	case Strength:
		return "STR"
	}
	return fmt.Sprintf("<%s>", string(t))
}

// ModifierFor converts a score to its modifier using the standard table:
// floor((score - 10) / 2), so 9 → -1 and 12 → +1.
func ModifierFor(score int) int {
	d := score - 10
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}

// Detail is one attribute entry. The modifier is derived on every read and
// never stored.
type Detail struct {
	ID                string
	Type              Type
	Base              int
	TempValueBonus    int
	TempModifierBonus int
}

// NewDetail returns a Detail with a fresh id and no temporary bonuses.
func NewDetail(t Type, base int) Detail {
	return Detail{ID: uuid.NewString(), Type: t, Base: base}
}

// Value returns Base + TempValueBonus.
func (d Detail) Value() int {
	return d.Base + d.TempValueBonus
}

// Modifier returns the table modifier of Value(), excluding TempModifierBonus.
func (d Detail) Modifier() int {
	return ModifierFor(d.Value())
}

// EffectiveModifier returns Modifier() + TempModifierBonus.
func (d Detail) EffectiveModifier() int {
	return d.Modifier() + d.TempModifierBonus
}
