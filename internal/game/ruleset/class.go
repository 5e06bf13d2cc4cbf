// Package ruleset defines the static rule tables for character creation:
// class definitions and races. Tables load from YAML, either from a content
// directory or from the built-in copies embedded in the binary.
package ruleset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/pathfinder/internal/game/skill"
	"github.com/cory-johannsen/pathfinder/internal/scripting"
)

// ClassType identifies a class, e.g. FIGHTER.
type ClassType string

const (
	Fighter   ClassType = "FIGHTER"
	Ranger    ClassType = "RANGER"
	Rogue     ClassType = "ROGUE"
	Wizard    ClassType = "WIZARD"
	Cleric    ClassType = "CLERIC"
	Barbarian ClassType = "BARBARIAN"
)

// ParseClassType normalises s to upper case. Any non-empty name is accepted;
// whether the class exists is a catalog question.
func ParseClassType(s string) (ClassType, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return "", errors.New("ruleset: empty class type")
	}
	return ClassType(t), nil
}

// ClassDef is one playable class.
//
// Precondition: ID and Name must be non-empty after loading.
type ClassDef struct {
	ID                  ClassType    `yaml:"id"`
	Name                string       `yaml:"name"`
	Description         string       `yaml:"description"`
	HitDie              int          `yaml:"hit_die"`
	SkillPointsPerLevel int          `yaml:"skill_points_per_level"`
	// SkillPointsFormula, when set, replaces level * skill_points_per_level.
	// It is a Lua expression with level and points_per_level bound.
	SkillPointsFormula string       `yaml:"skill_points_formula"`
	ClassSkills        []skill.Type `yaml:"class_skills"`

	formula *scripting.Formula
}

// Validate checks the definition's own invariants.
func (c *ClassDef) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.HitDie < 2 {
		errs = append(errs, fmt.Errorf("hit_die must be >= 2, got %d", c.HitDie))
	}
	if c.SkillPointsPerLevel < 0 {
		errs = append(errs, fmt.Errorf("skill_points_per_level must be >= 0, got %d", c.SkillPointsPerLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("class %q validation failed: %w", c.ID, errors.Join(errs...))
	}
	return nil
}

// HasClassSkill reports whether t is on this class's class-skill list.
func (c *ClassDef) HasClassSkill(t skill.Type) bool {
	return slices.Contains(c.ClassSkills, t)
}

// SkillPoints returns the skill points this class provides at level,
// before the intelligence contribution.
//
// Precondition: level >= 0; the def was compiled by a ClassCatalog when it
// carries a formula.
func (c *ClassDef) SkillPoints(level int) (int, error) {
	if c.formula == nil {
		return level * c.SkillPointsPerLevel, nil
	}
	n, err := c.formula.Eval(map[string]int{
		"level":            level,
		"points_per_level": c.SkillPointsPerLevel,
	})
	if err != nil {
		return 0, fmt.Errorf("ruleset: %s skill points at level %d: %w", c.ID, level, err)
	}
	return n, nil
}
