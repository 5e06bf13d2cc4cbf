// Package inventory provides weapon definitions, the weapon catalog, and the
// damage computation a weapon performs on behalf of its owner.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pathfinder/internal/game/dice"
)

// DamageType classifies the damage a weapon deals.
type DamageType string

const (
	DamageCutting  DamageType = "CUTTING"
	DamagePiercing DamageType = "PIERCING"
	DamageBlunt    DamageType = "BLUNT"
	DamageFire     DamageType = "FIRE"
	DamageCold     DamageType = "COLD"
	DamageAcid     DamageType = "ACID"
	DamageElectric DamageType = "ELECTRIC"
)

var validDamageTypes = map[DamageType]bool{
	DamageCutting: true, DamagePiercing: true, DamageBlunt: true,
	DamageFire: true, DamageCold: true, DamageAcid: true, DamageElectric: true,
}

// Kind selects how a weapon resolves damage. Behaviour within a kind is
// driven entirely by the configuration flags.
type Kind string

const (
	// KindPhysical resolves a regular armed strike.
	KindPhysical Kind = "PHYSICAL"
	// KindUnarmed marks a provider that cannot resolve an armed strike.
	KindUnarmed Kind = "UNARMED"
)

// WeaponDef is the static configuration of a weapon.
type WeaponDef struct {
	Name                  string     `json:"name" yaml:"name"`
	Description           string     `json:"description" yaml:"description"`
	Kind                  Kind       `json:"kind" yaml:"kind"`
	DamageDice            string     `json:"damageDice" yaml:"damage_dice"`
	MinDamage             int        `json:"minDamage" yaml:"min_damage"`
	MaxDamage             int        `json:"maxDamage" yaml:"max_damage"`
	CriticalChancePercent int        `json:"criticalChancePercent" yaml:"critical_chance_percent"`
	CriticalMultiplier    float64    `json:"criticalMultiplier" yaml:"critical_multiplier"`
	TwoHanded             bool       `json:"twoHanded" yaml:"two_handed"`
	TwoHandDamageBonus    float64    `json:"twoHandDamageBonus" yaml:"two_hand_damage_bonus"`
	UseStrengthBonus      bool       `json:"useStrengthBonus" yaml:"use_strength_bonus"`
	UseAgilityBonus       bool       `json:"useAgilityBonus" yaml:"use_agility_bonus"`
	DamageType            DamageType `json:"damageType" yaml:"damage_type"`
	BuyCost               float64    `json:"buyCost" yaml:"buy_cost"`
	SellCost              float64    `json:"sellCost" yaml:"sell_cost"`
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.Kind != KindPhysical && w.Kind != KindUnarmed {
		errs = append(errs, fmt.Errorf("kind must be PHYSICAL or UNARMED, got %q", w.Kind))
	}
	if w.DamageDice != "" {
		if _, err := dice.Parse(w.DamageDice); err != nil {
			errs = append(errs, err)
		}
	}
	if w.MinDamage < 0 {
		errs = append(errs, fmt.Errorf("minDamage must be >= 0, got %d", w.MinDamage))
	}
	if w.MaxDamage < w.MinDamage {
		errs = append(errs, fmt.Errorf("maxDamage %d is below minDamage %d", w.MaxDamage, w.MinDamage))
	}
	if w.CriticalChancePercent < 0 || w.CriticalChancePercent > 100 {
		errs = append(errs, fmt.Errorf("criticalChancePercent must be 0-100, got %d", w.CriticalChancePercent))
	}
	if w.CriticalMultiplier < 1 {
		errs = append(errs, fmt.Errorf("criticalMultiplier must be >= 1, got %v", w.CriticalMultiplier))
	}
	if w.TwoHandDamageBonus < 1 {
		errs = append(errs, fmt.Errorf("twoHandDamageBonus must be >= 1, got %v", w.TwoHandDamageBonus))
	}
	if !validDamageTypes[w.DamageType] {
		errs = append(errs, fmt.Errorf("unknown damageType %q", w.DamageType))
	}
	if w.BuyCost < 0 || w.SellCost < 0 {
		errs = append(errs, errors.New("costs must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %w", w.Name, errors.Join(errs...))
	}
	return nil
}

// ParseWeapons decodes an ordered weapon list. format is "json" or "yaml".
// A missing kind defaults to PHYSICAL; every record is validated.
func ParseWeapons(data []byte, format string) ([]*WeaponDef, error) {
	var defs []*WeaponDef
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &defs)
	case "yaml":
		err = yaml.Unmarshal(data, &defs)
	default:
		return nil, fmt.Errorf("ParseWeapons: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("ParseWeapons: cannot decode %s: %w", format, err)
	}
	for i, d := range defs {
		if d == nil {
			return nil, fmt.Errorf("ParseWeapons: record %d is null", i)
		}
		if d.Kind == "" {
			d.Kind = KindPhysical
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("ParseWeapons: record %d: %w", i, err)
		}
	}
	return defs, nil
}

// LoadWeapons reads a weapon list from path, choosing the decoder by file
// extension (.json, .yaml, .yml).
//
// Postcondition: returns all valid WeaponDefs in file order or the first error.
func LoadWeapons(path string) ([]*WeaponDef, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, fmt.Errorf("LoadWeapons: unsupported file type %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
	}
	defs, err := ParseWeapons(data, format)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: %q: %w", path, err)
	}
	return defs, nil
}
