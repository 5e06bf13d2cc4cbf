package condition

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
)

// Active tracks one applied condition.
type Active struct {
	Def               *Def
	Stacks            int
	DurationRemaining int // -1 = permanent
}

// ActiveSet tracks all conditions currently applied to one character.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	conditions map[string]*Active
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{conditions: make(map[string]*Active)}
}

// Apply adds a condition or refreshes one already present.
// duration is rounds remaining and is ignored for permanent conditions.
//
// Postcondition: ErrIllegalState when stacks < 1, or when a timed condition
// is given fewer than one round. Otherwise Has(def.ID); stacks add up to MaxStacks (always 1 when
// unstackable); the remaining duration becomes max(existing, duration).
func (s *ActiveSet) Apply(def *Def, stacks, duration int) error {
	if def == nil {
		return fmt.Errorf("condition: Apply: def must not be nil")
	}
	if stacks < 1 {
		return fmt.Errorf("condition: Apply %s: stacks must be >= 1, got %d: %w", def.ID, stacks, gameerr.ErrIllegalState)
	}
	switch {
	case def.DurationType == DurationPermanent:
		duration = -1
	case duration < 1:
		return fmt.Errorf("condition: Apply %s: duration must be >= 1 round, got %d: %w", def.ID, duration, gameerr.ErrIllegalState)
	}
	limit := max(def.MaxStacks, 1)
	if ac, ok := s.conditions[def.ID]; ok {
		ac.Stacks = min(ac.Stacks+stacks, limit)
		ac.DurationRemaining = max(ac.DurationRemaining, duration)
		return nil
	}
	s.conditions[def.ID] = &Active{Def: def, Stacks: min(stacks, limit), DurationRemaining: duration}
	return nil
}

// Remove deletes the condition with the given ID. Absent IDs are ignored.
func (s *ActiveSet) Remove(id string) {
	delete(s.conditions, id)
}

// Tick advances one round: every timed condition loses a round and those that
// reach zero are removed. The expired IDs are returned sorted.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, ac := range s.conditions {
		if ac.DurationRemaining < 0 {
			continue
		}
		ac.DurationRemaining--
		if ac.DurationRemaining <= 0 {
			expired = append(expired, id)
			delete(s.conditions, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// Has reports whether the condition with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.conditions[id]
	return ok
}

// Stacks returns the current stack count for id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if ac, ok := s.conditions[id]; ok {
		return ac.Stacks
	}
	return 0
}

// All returns copies of the active conditions sorted by ID.
func (s *ActiveSet) All() []Active {
	out := make([]Active, 0, len(s.conditions))
	for _, ac := range s.conditions {
		out = append(out, *ac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}

// Totals returns the summed per-attribute value and modifier bonuses.
func (s *ActiveSet) Totals() (value, modifier map[attribute.Type]int) {
	value = make(map[attribute.Type]int)
	modifier = make(map[attribute.Type]int)
	for _, ac := range s.conditions {
		for t, n := range ac.Def.ValueBonus {
			value[t] += n * ac.Stacks
		}
		for t, n := range ac.Def.ModifierBonus {
			modifier[t] += n * ac.Stacks
		}
	}
	return value, modifier
}
