package character

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

// Factory assembles characters from validated parts.
type Factory struct {
	progression *progression.Manager
	skills      *skill.Catalog
	policy      attribute.RangePolicy
}

// NewFactory creates a Factory. policy is applied to every attribute store it
// builds.
//
// Precondition: pm and skills must be non-nil.
func NewFactory(pm *progression.Manager, skills *skill.Catalog, policy attribute.RangePolicy) *Factory {
	return &Factory{progression: pm, skills: skills, policy: policy}
}

// Progression returns the progression manager the factory validates classes with.
func (f *Factory) Progression() *progression.Manager {
	return f.progression
}

// NewCharacter builds a character with a fresh id and no skill ranks.
//
// Precondition: race has passed Validate.
// Postcondition: ErrMissingAttribute or ErrDuplicateEntry for a malformed
// attribute list; ErrDuplicateEntry, ErrNotFound or ErrIllegalState for a bad
// class list. Identity fields other than ID are left for the caller.
func (f *Factory) NewCharacter(race ruleset.Race, classes []progression.ClassDetail, attrs []attribute.Detail) (*Character, error) {
	store, err := attribute.NewStore(attrs, f.policy)
	if err != nil {
		return nil, fmt.Errorf("character: attributes: %w", err)
	}
	c := &Character{
		ID:      uuid.NewString(),
		Race:    race,
		attrs:   store,
		classes: progression.NewState(),
		skills:  skill.NewRanks(),
	}
	if err := f.progression.SetOnControl(c, classes); err != nil {
		return nil, fmt.Errorf("character: classes: %w", err)
	}
	return c, nil
}

// FromRecord rehydrates a stored character.
//
// Postcondition: the derived modifier in r is ignored and recomputed. A record
// without an id is given a fresh one. ErrNotFound for ranks in an unknown skill;
// ErrIllegalState for ranks the character could not have invested.
func (f *Factory) FromRecord(r Record) (*Character, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("character: id %q: %w", id, err)
	}

	details := make([]attribute.Detail, 0, len(r.Attributes))
	for _, a := range r.Attributes {
		details = append(details, attribute.Detail{
			ID:                a.ID,
			Type:              a.Type,
			Base:              a.Value,
			TempValueBonus:    a.TempValueBonus,
			TempModifierBonus: a.TempModifierBonus,
		})
	}
	store, err := attribute.NewStore(details, f.policy)
	if err != nil {
		return nil, fmt.Errorf("character %s: attributes: %w", id, err)
	}

	for t, n := range r.Skills {
		if !f.skills.Contains(t) {
			return nil, fmt.Errorf("character %s: skill %q: %w", id, t, gameerr.ErrNotFound)
		}
		if n < 0 {
			return nil, fmt.Errorf("character %s: skill %s has %d ranks: %w", id, t, n, gameerr.ErrIllegalState)
		}
	}
	ranks := skill.NewRanks()
	ranks.Replace(r.Skills)

	c := &Character{
		ID:        id,
		Name:      r.Name,
		Age:       r.Age,
		Height:    r.Height,
		Weight:    r.Weight,
		EyeColor:  r.EyeColor,
		HairColor: r.HairColor,
		Race:      r.Race,
		attrs:     store,
		classes:   progression.NewState(),
		skills:    ranks,
	}
	if err := f.progression.SetOnControl(c, r.Classes); err != nil {
		return nil, fmt.Errorf("character %s: classes: %w", id, err)
	}
	if err := f.checkSkillBudget(c); err != nil {
		return nil, fmt.Errorf("character %s: %w", id, err)
	}
	return c, nil
}

// checkSkillBudget holds restored ranks to the limits InvestSkillRank enforces:
// no skill above the character level and no more ranks than points earned.
func (f *Factory) checkSkillBudget(c *Character) error {
	level := f.progression.SummaryLevel(c)
	for _, t := range c.skills.Types() {
		if n := c.skills.Of(t); n > level {
			return fmt.Errorf("skill %s has %d ranks above max rank %d: %w", t, n, level, gameerr.ErrIllegalState)
		}
	}
	total, err := f.progression.TotalSkillPoints(c)
	if err != nil {
		return err
	}
	if spent := c.skills.Total(); spent > total {
		return fmt.Errorf("%d skill ranks exceed %d earned points: %w", spent, total, gameerr.ErrIllegalState)
	}
	return nil
}
