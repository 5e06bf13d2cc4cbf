// Package character defines the character aggregate: identity, attributes,
// class progression and skill ranks, plus its factory and JSON record.
package character

import (
	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

// Character is a player character.
//
// Invariant: the attribute store holds all six attributes; the class state has
// at most one entry per class. Use Factory to construct one.
// Character is not safe for concurrent mutation.
type Character struct {
	ID        string
	Name      string
	Age       int
	Height    int // centimetres
	Weight    int // kilograms
	EyeColor  string
	HairColor string
	Race      ruleset.Race

	attrs   *attribute.Store
	classes *progression.State
	skills  *skill.Ranks
}

// ClassState returns the character's class set. It satisfies progression.Subject.
func (c *Character) ClassState() *progression.State {
	return c.classes
}

// IntelligenceModifier returns the effective INTELLIGENCE modifier.
func (c *Character) IntelligenceModifier() int {
	return c.attrs.Modifier(attribute.Intelligence)
}

// AttributeModifier returns the effective modifier for t. It satisfies
// inventory.Owner.
func (c *Character) AttributeModifier(t attribute.Type) int {
	return c.attrs.Modifier(t)
}

// Attributes returns the character's attribute store.
func (c *Character) Attributes() *attribute.Store {
	return c.attrs
}

// Skills returns the character's invested skill ranks.
func (c *Character) Skills() *skill.Ranks {
	return c.skills
}
