// Package engine assembles the rule catalogs and services described by a
// config.Config into one value that callers pass around.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pathfinder/internal/config"
	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/character"
	"github.com/cory-johannsen/pathfinder/internal/game/combat"
	"github.com/cory-johannsen/pathfinder/internal/game/condition"
	"github.com/cory-johannsen/pathfinder/internal/game/dice"
	"github.com/cory-johannsen/pathfinder/internal/game/inventory"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
	"github.com/cory-johannsen/pathfinder/internal/observability"
)

// Engine holds the loaded rule tables and the services built over them.
// Everything it exposes is read-only after New and may be shared.
type Engine struct {
	Skills      *skill.Catalog
	Classes     *ruleset.ClassCatalog
	Races       *ruleset.RaceCatalog
	Weapons     *inventory.Registry
	Conditions  *condition.Registry
	Progression *progression.Manager
	Factory     *character.Factory
	SkillRules  *character.SkillManager
	Combat      *combat.Resolver
}

// New loads the content named by cfg, falling back to embedded tables for
// empty paths, and wires the services.
//
// Precondition: cfg has passed Validate; src and logger are non-nil.
// Postcondition: Returns a ready Engine or the first load error.
func New(cfg config.Config, src dice.Source, logger *zap.Logger) (*Engine, error) {
	policy, err := attribute.ParsePolicy(cfg.Rules.AttributePolicy)
	if err != nil {
		return nil, err
	}

	skills := skill.Default()
	if p := cfg.Content.SkillsFile; p != "" {
		if skills, err = skill.LoadCatalog(p); err != nil {
			return nil, fmt.Errorf("engine: skills: %w", err)
		}
	}

	classDefs := ruleset.BuiltinClasses()
	if dir := cfg.Content.ClassesDir; dir != "" {
		if classDefs, err = ruleset.LoadClasses(dir); err != nil {
			return nil, fmt.Errorf("engine: classes: %w", err)
		}
	}
	classes, err := ruleset.NewClassCatalog(classDefs, skills, cfg.Rules.ScriptInstructionLimit)
	if err != nil {
		return nil, fmt.Errorf("engine: classes: %w", err)
	}

	raceDefs := ruleset.BuiltinRaces()
	if dir := cfg.Content.RacesDir; dir != "" {
		if raceDefs, err = ruleset.LoadRaces(dir); err != nil {
			return nil, fmt.Errorf("engine: races: %w", err)
		}
	}
	races, err := ruleset.NewRaceCatalog(raceDefs)
	if err != nil {
		return nil, fmt.Errorf("engine: races: %w", err)
	}

	weapons := inventory.DefaultRegistry()
	if p := cfg.Content.WeaponsFile; p != "" {
		defs, err := inventory.LoadWeapons(p)
		if err != nil {
			return nil, fmt.Errorf("engine: weapons: %w", err)
		}
		if weapons, err = inventory.NewRegistry(defs); err != nil {
			return nil, fmt.Errorf("engine: weapons: %w", err)
		}
	}

	conditions := condition.Default()
	if dir := cfg.Content.ConditionsDir; dir != "" {
		if conditions, err = condition.LoadDirectory(dir); err != nil {
			return nil, fmt.Errorf("engine: conditions: %w", err)
		}
	}

	pm := progression.NewManager(classes, observability.Component(logger, "progression"))
	roller := dice.NewLoggedRoller(src, observability.Component(logger, "dice"))

	logger.Info("rules loaded",
		zap.Int("skills", len(skills.All())),
		zap.Int("classes", len(classes.Types())),
		zap.Int("races", len(races.IDs())),
		zap.Int("weapons", len(weapons.All())),
		zap.Int("conditions", len(conditions.IDs())),
		zap.String("attribute_range_policy", string(policy)),
	)

	return &Engine{
		Skills:      skills,
		Classes:     classes,
		Races:       races,
		Weapons:     weapons,
		Conditions:  conditions,
		Progression: pm,
		Factory:     character.NewFactory(pm, skills, policy),
		SkillRules:  character.NewSkillManager(pm, skills),
		Combat:      combat.NewResolver(roller, observability.Component(logger, "combat")),
	}, nil
}
