package ruleset

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
	"github.com/cory-johannsen/pathfinder/internal/scripting"
)

// ClassCatalog provides lookup of class definitions by type.
//
// A ClassCatalog is read-only after NewClassCatalog returns and is safe for
// concurrent use. Defs handed out by Class must not be modified.
type ClassCatalog struct {
	order   []ClassType
	classes map[ClassType]*ClassDef
}

// NewClassCatalog validates defs, checks every class skill against skills,
// and compiles skill point formulas with the given instruction limit.
//
// Postcondition: returns ErrDuplicateEntry when two defs share an ID and
// ErrNotFound when a class skill is missing from skills.
func NewClassCatalog(defs []*ClassDef, skills *skill.Catalog, instLimit int) (*ClassCatalog, error) {
	c := &ClassCatalog{classes: make(map[ClassType]*ClassDef, len(defs))}
	for _, d := range defs {
		if d == nil {
			panic("ruleset: NewClassCatalog: precondition violated: def must be non-nil")
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.classes[d.ID]; dup {
			return nil, fmt.Errorf("ruleset: class %s defined twice: %w", d.ID, gameerr.ErrDuplicateEntry)
		}
		for _, s := range d.ClassSkills {
			if !skills.Contains(s) {
				return nil, fmt.Errorf("ruleset: class %s lists skill %q: %w", d.ID, s, gameerr.ErrNotFound)
			}
		}
		if d.SkillPointsFormula != "" {
			f, err := scripting.Compile(d.SkillPointsFormula, instLimit)
			if err != nil {
				return nil, fmt.Errorf("ruleset: class %s: %w", d.ID, err)
			}
			d.formula = f
		}
		c.classes[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

// Class returns the definition for t.
func (c *ClassCatalog) Class(t ClassType) (*ClassDef, error) {
	d, ok := c.classes[t]
	if !ok {
		return nil, fmt.Errorf("ruleset: class %q: %w", t, gameerr.ErrNotFound)
	}
	return d, nil
}

// Contains reports whether t is defined.
func (c *ClassCatalog) Contains(t ClassType) bool {
	_, ok := c.classes[t]
	return ok
}

// Types returns all class types in catalog order.
func (c *ClassCatalog) Types() []ClassType {
	return append([]ClassType(nil), c.order...)
}

// Index returns the catalog position of t, or -1 when unknown. Used to give
// class snapshots a stable order.
func (c *ClassCatalog) Index(t ClassType) int {
	for i, o := range c.order {
		if o == t {
			return i
		}
	}
	return -1
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *ClassCatalog
)

// DefaultClasses returns a catalog over BuiltinClasses and skill.Default,
// built on first use.
func DefaultClasses() *ClassCatalog {
	defaultCatalogOnce.Do(func() {
		c, err := NewClassCatalog(BuiltinClasses(), skill.Default(), 0)
		if err != nil {
			panic("ruleset: embedded class catalog is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// RaceCatalog provides lookup of races by ID. Read-only after construction.
type RaceCatalog struct {
	order []string
	races map[string]*Race
}

// NewRaceCatalog validates and indexes races.
func NewRaceCatalog(races []*Race) (*RaceCatalog, error) {
	c := &RaceCatalog{races: make(map[string]*Race, len(races))}
	for _, r := range races {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.races[r.ID]; dup {
			return nil, fmt.Errorf("ruleset: race %s defined twice: %w", r.ID, gameerr.ErrDuplicateEntry)
		}
		c.races[r.ID] = r
		c.order = append(c.order, r.ID)
	}
	return c, nil
}

// Race returns a copy of the race with the given id.
func (c *RaceCatalog) Race(id string) (Race, error) {
	r, ok := c.races[id]
	if !ok {
		return Race{}, fmt.Errorf("ruleset: race %q: %w", id, gameerr.ErrNotFound)
	}
	out := *r
	out.Traits = append([]string(nil), r.Traits...)
	return out, nil
}

// IDs returns every race id in catalog order.
func (c *RaceCatalog) IDs() []string {
	return append([]string(nil), c.order...)
}

var (
	defaultRaceCatalogOnce sync.Once
	defaultRaceCatalog     *RaceCatalog
)

// DefaultRaces returns a catalog over BuiltinRaces, built on first use.
func DefaultRaces() *RaceCatalog {
	defaultRaceCatalogOnce.Do(func() {
		c, err := NewRaceCatalog(BuiltinRaces())
		if err != nil {
			panic("ruleset: embedded race catalog is invalid: " + err.Error())
		}
		defaultRaceCatalog = c
	})
	return defaultRaceCatalog
}
