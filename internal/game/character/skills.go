package character

import (
	"fmt"

	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

// classSkillBonus is added to a class skill once at least one rank is invested.
const classSkillBonus = 3

// SkillManager answers skill questions about a character by combining the
// skill catalog with the character's classes.
//
// SkillManager holds only read-only catalogs and may be shared.
type SkillManager struct {
	progression *progression.Manager
	catalog     *skill.Catalog
}

// NewSkillManager creates a SkillManager.
//
// Precondition: pm and catalog must be non-nil.
func NewSkillManager(pm *progression.Manager, catalog *skill.Catalog) *SkillManager {
	return &SkillManager{progression: pm, catalog: catalog}
}

// IsClassSkill reports whether any class c holds lists t.
func (m *SkillManager) IsClassSkill(c *Character, t skill.Type) bool {
	return m.progression.IsClassSkill(c, t)
}

// TotalSkillPoints returns every skill point c has earned.
func (m *SkillManager) TotalSkillPoints(c *Character) (int, error) {
	return m.progression.TotalSkillPoints(c)
}

// UnspentSkillPoints returns earned points minus invested ranks.
func (m *SkillManager) UnspentSkillPoints(c *Character) (int, error) {
	total, err := m.TotalSkillPoints(c)
	if err != nil {
		return 0, err
	}
	return total - c.skills.Total(), nil
}

// InvestSkillRank spends one skill point on t.
//
// Postcondition: ErrNotFound for an unknown skill; ErrIllegalState when no
// points remain or t already holds as many ranks as c has levels. Ranks are
// unchanged on error.
func (m *SkillManager) InvestSkillRank(c *Character, t skill.Type) error {
	if !m.catalog.Contains(t) {
		return fmt.Errorf("character: skill %q: %w", t, gameerr.ErrNotFound)
	}
	unspent, err := m.UnspentSkillPoints(c)
	if err != nil {
		return err
	}
	if unspent <= 0 {
		return fmt.Errorf("character: no unspent skill points for %s: %w", t, gameerr.ErrIllegalState)
	}
	if level := m.progression.SummaryLevel(c); c.skills.Of(t) >= level {
		return fmt.Errorf("character: %s already at max rank %d: %w", t, level, gameerr.ErrIllegalState)
	}
	c.skills.Add(t, 1)
	return nil
}

// SkillBonus returns the check bonus c has in t and whether the skill may be
// attempted at all.
//
// Postcondition: usable is false only for a trained-only skill with zero ranks,
// in which case bonus is 0.
func (m *SkillManager) SkillBonus(c *Character, t skill.Type) (bonus int, usable bool, err error) {
	s, err := m.catalog.Skill(t)
	if err != nil {
		return 0, false, err
	}
	ranks := c.skills.Of(t)
	if ranks == 0 && !s.UsableUntrained() {
		return 0, false, nil
	}
	bonus = ranks + c.AttributeModifier(s.Attribute)
	if ranks > 0 && m.IsClassSkill(c, t) {
		bonus += classSkillBonus
	}
	return bonus, true, nil
}
