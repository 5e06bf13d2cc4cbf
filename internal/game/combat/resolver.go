// Package combat resolves weapon strikes: it rolls a weapon's damage dice and
// hands the outcome to the weapon's damage computation.
package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pathfinder/internal/game/dice"
	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
	"github.com/cory-johannsen/pathfinder/internal/game/inventory"
)

// Resolver performs strikes with a logged roller.
//
// Resolver is safe for concurrent use when its Source is; the weapons passed
// to Strike are not shared.
type Resolver struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewResolver creates a Resolver. The roller's Source also supplies the
// critical-hit check.
//
// Precondition: roller and logger must be non-nil.
func NewResolver(roller *dice.Roller, logger *zap.Logger) *Resolver {
	return &Resolver{roller: roller, logger: logger}
}

// Strike rolls w's damage dice and resolves the damage.
//
// Postcondition: ErrIllegalState when w has no damage dice configured;
// otherwise returns whatever w.DoDamage returns.
func (r *Resolver) Strike(w *inventory.Weapon) (inventory.DamageInstance, error) {
	def := w.Def()
	if def.DamageDice == "" {
		return inventory.DamageInstance{}, fmt.Errorf("combat: %s has no damage dice: %w", def.Name, gameerr.ErrIllegalState)
	}
	roll, err := r.roller.RollExpr(def.DamageDice)
	if err != nil {
		return inventory.DamageInstance{}, fmt.Errorf("combat: rolling %s: %w", def.Name, err)
	}
	return r.Resolve(w, roll)
}

// Resolve applies an externally produced roll to w.
func (r *Resolver) Resolve(w *inventory.Weapon, roll dice.RollResult) (inventory.DamageInstance, error) {
	out, err := w.DoDamage(roll, r.roller.Source())
	if err != nil {
		r.logger.Debug("strike rejected", zap.String("weapon", w.Name()), zap.Error(err))
		return inventory.DamageInstance{}, err
	}
	r.logger.Debug("strike resolved",
		zap.String("weapon", w.Name()),
		zap.Int("roll", roll.Total()),
		zap.Int("base", out.Base),
		zap.Float64("bonus", out.Bonus),
		zap.Bool("critical", out.Critical),
		zap.Int("damage", out.Value),
		zap.String("damage_type", string(out.Type)),
	)
	return out, nil
}
