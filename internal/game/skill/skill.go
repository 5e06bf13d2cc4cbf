// Package skill provides the static skill table and per-character rank state.
package skill

import (
	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
)

// Type names a skill, e.g. "Survival".
type Type string

const (
	Acrobatics             Type = "Acrobatics"
	Appraise               Type = "Appraise"
	Bluff                  Type = "Bluff"
	Climb                  Type = "Climb"
	Craft                  Type = "Craft"
	Diplomacy              Type = "Diplomacy"
	DisableDevice          Type = "DisableDevice"
	Disguise               Type = "Disguise"
	EscapeArtist           Type = "EscapeArtist"
	Fly                    Type = "Fly"
	HandleAnimal           Type = "HandleAnimal"
	Heal                   Type = "Heal"
	Intimidate             Type = "Intimidate"
	KnowledgeArcana        Type = "KnowledgeArcana"
	KnowledgeDungeoneering Type = "KnowledgeDungeoneering"
	KnowledgeNature        Type = "KnowledgeNature"
	KnowledgeReligion      Type = "KnowledgeReligion"
	Linguistics            Type = "Linguistics"
	Perception             Type = "Perception"
	Perform                Type = "Perform"
	Profession             Type = "Profession"
	Ride                   Type = "Ride"
	SenseMotive            Type = "SenseMotive"
	SleightOfHand          Type = "SleightOfHand"
	Spellcraft             Type = "Spellcraft"
	Stealth                Type = "Stealth"
	Survival               Type = "Survival"
	Swim                   Type = "Swim"
	UseMagicDevice         Type = "UseMagicDevice"
)

// Skill is an immutable catalog entry.
type Skill struct {
	Type      Type           `yaml:"type"`
	Attribute attribute.Type `yaml:"attribute"`
	Untrained bool           `yaml:"untrained"`
}

// UsableUntrained reports whether the skill may be attempted with zero ranks.
func (s Skill) UsableUntrained() bool {
	return s.Untrained
}
