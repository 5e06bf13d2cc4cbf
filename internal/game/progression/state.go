// Package progression tracks which classes a character holds and at what
// level, and derives total level, skill points and class-skill membership
// from that state.
package progression

import (
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
)

// ClassDetail is a (class, level) pair owned by a character.
type ClassDetail struct {
	Class ruleset.ClassType `json:"type"`
	Level int               `json:"level"`
}

// State is the per-character class set.
//
// Invariant: at most one entry per ClassType; levels never decrease.
// State is not safe for concurrent mutation; mutate it through Manager.
type State struct {
	levels map[ruleset.ClassType]int
}

// NewState returns an empty class set.
func NewState() *State {
	return &State{levels: make(map[ruleset.ClassType]int)}
}

// Level returns the level held in ct and whether the class is present.
func (s *State) Level(ct ruleset.ClassType) (int, bool) {
	l, ok := s.levels[ct]
	return l, ok
}

// Len returns the number of distinct classes held.
func (s *State) Len() int {
	return len(s.levels)
}

// Subject is anything that owns a class State and exposes attribute
// modifiers. *character.Character satisfies it.
type Subject interface {
	ClassState() *State
	IntelligenceModifier() int
}
