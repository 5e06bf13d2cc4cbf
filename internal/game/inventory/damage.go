package inventory

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/dice"
	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
)

// Owner supplies the attribute modifiers a weapon adds to its damage.
// *character.Character satisfies it.
type Owner interface {
	AttributeModifier(t attribute.Type) int
}

// DamageInstance is the immutable outcome of one damage resolution.
type DamageInstance struct {
	// Value is the final damage, floored and never negative.
	Value int
	Type  DamageType
	// Critical is true when the critical check succeeded.
	Critical bool
	// Roll is the caller-supplied damage roll.
	Roll dice.RollResult
	// Base is Roll.Total() clamped to the weapon's damage range.
	Base int
	// Bonus is the attribute contribution after two-handed scaling.
	Bonus float64
	// CriticalRoll is the d100 drawn for the critical check; 0 when the
	// weapon has no critical chance.
	CriticalRoll int
}

// Weapon is a damage provider: a WeaponDef plus a non-owning reference to
// the character currently wielding it. A Weapon with no owner can be built
// and configured freely but refuses any strike that needs owner bonuses.
type Weapon struct {
	def   WeaponDef
	owner Owner
}

// NewWeapon returns an unowned weapon configured from def.
func NewWeapon(def WeaponDef) *Weapon {
	return &Weapon{def: def}
}

// Def returns a copy of the weapon's configuration.
func (w *Weapon) Def() WeaponDef {
	return w.def
}

// Name returns the configured name.
func (w *Weapon) Name() string {
	return w.def.Name
}

// SetTwoHanded switches two-handed wielding on or off.
func (w *Weapon) SetTwoHanded(on bool) {
	w.def.TwoHanded = on
}

// SetOwner records who is wielding the weapon. The weapon never manages the
// owner's lifetime; pass nil to clear it after the action. A nil pointer
// wrapped in o counts as no owner.
func (w *Weapon) SetOwner(o Owner) {
	w.owner = o
}

// Owner returns the current wielder, or nil.
func (w *Weapon) Owner() Owner {
	return w.owner
}

// RequiresOwner reports whether DoDamage needs an owner: any attribute bonus
// flag, or two-handed wielding, depends on the wielder.
func (w *Weapon) RequiresOwner() bool {
	return w.def.UseStrengthBonus || w.def.UseAgilityBonus || w.def.TwoHanded
}

// DoDamage turns roll into a DamageInstance. src supplies the independent
// d100 for the critical check.
//
// Postcondition: ErrUnsupported for unarmed providers. ErrIllegalState when
// an owner is required but unset, or when the critical check needs src and it
// is nil. Neither the weapon nor the owner is mutated.
func (w *Weapon) DoDamage(roll dice.RollResult, src dice.Source) (DamageInstance, error) {
	d := w.def
	if d.Kind == KindUnarmed {
		return DamageInstance{}, fmt.Errorf("inventory: %s cannot resolve an armed strike: %w", d.Name, gameerr.ErrUnsupported)
	}
	if w.RequiresOwner() && isNilOwner(w.owner) {
		return DamageInstance{}, fmt.Errorf("inventory: %s has no owner set: %w", d.Name, gameerr.ErrIllegalState)
	}
	if d.CriticalChancePercent > 0 && src == nil {
		return DamageInstance{}, fmt.Errorf("inventory: %s needs a source for the critical check: %w", d.Name, gameerr.ErrIllegalState)
	}

	base := min(max(roll.Total(), d.MinDamage), d.MaxDamage)

	var bonus float64
	if d.UseStrengthBonus {
		bonus += float64(w.owner.AttributeModifier(attribute.Strength))
	}
	if d.UseAgilityBonus {
		bonus += float64(w.owner.AttributeModifier(attribute.Agility))
	}
	if d.TwoHanded {
		bonus *= d.TwoHandDamageBonus
	}

	total := float64(base) + bonus
	out := DamageInstance{Type: d.DamageType, Roll: roll, Base: base, Bonus: bonus}
	if d.CriticalChancePercent > 0 {
		out.CriticalRoll = dice.Percentile(src)
		if out.CriticalRoll <= d.CriticalChancePercent {
			out.Critical = true
			total *= d.CriticalMultiplier
		}
	}
	out.Value = max(0, int(math.Floor(total)))
	return out, nil
}

func isNilOwner(o Owner) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
