package inventory

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
)

//go:embed data/weapons.json
var builtinWeapons []byte

// Registry holds weapon definitions keyed by name, in source order.
//
// Registry is read-only after NewRegistry returns and is safe for concurrent
// use. Weapon hands out independent instances.
type Registry struct {
	order []string
	defs  map[string]WeaponDef
}

// NewRegistry indexes defs by name.
//
// Postcondition: returns ErrDuplicateEntry when two defs share a name, or the
// validation error of the first invalid def.
func NewRegistry(defs []*WeaponDef) (*Registry, error) {
	r := &Registry{defs: make(map[string]WeaponDef, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.defs[d.Name]; exists {
			return nil, fmt.Errorf("inventory: weapon %q already registered: %w", d.Name, gameerr.ErrDuplicateEntry)
		}
		r.defs[d.Name] = *d
		r.order = append(r.order, d.Name)
	}
	return r, nil
}

// Weapon returns a new unowned Weapon configured from the named def.
func (r *Registry) Weapon(name string) (*Weapon, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("inventory: weapon %q: %w", name, gameerr.ErrNotFound)
	}
	return NewWeapon(d), nil
}

// Def returns the named definition.
func (r *Registry) Def(name string) (WeaponDef, error) {
	d, ok := r.defs[name]
	if !ok {
		return WeaponDef{}, fmt.Errorf("inventory: weapon %q: %w", name, gameerr.ErrNotFound)
	}
	return d, nil
}

// All returns every definition in source order.
func (r *Registry) All() []WeaponDef {
	return r.Filter(func(WeaponDef) bool { return true })
}

// Filter returns, in source order, the definitions keep accepts.
func (r *Registry) Filter(keep func(WeaponDef) bool) []WeaponDef {
	out := make([]WeaponDef, 0, len(r.order))
	for _, name := range r.order {
		if d := r.defs[name]; keep(d) {
			out = append(out, d)
		}
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry over the embedded weapon table,
// decoding it on first use.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defs, err := ParseWeapons(builtinWeapons, "json")
		if err != nil {
			panic("inventory: embedded weapons are invalid: " + err.Error())
		}
		r, err := NewRegistry(defs)
		if err != nil {
			panic("inventory: embedded weapons are invalid: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
