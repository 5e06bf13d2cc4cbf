// Package condition models timed effects, such as spells and afflictions,
// that grant temporary attribute bonuses.
package condition

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
)

// Duration types.
const (
	DurationRounds    = "rounds"
	DurationPermanent = "permanent"
)

// Def is the static definition of a condition, loaded from YAML.
type Def struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DurationType string `yaml:"duration_type"`
	MaxStacks    int    `yaml:"max_stacks"` // 0 = unstackable
	// ValueBonus is added to the attribute score per stack.
	ValueBonus map[attribute.Type]int `yaml:"value_bonus"`
	// ModifierBonus is added to the attribute modifier per stack.
	ModifierBonus map[attribute.Type]int `yaml:"modifier_bonus"`
}

// Validate checks the definition's own invariants.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.DurationType != DurationRounds && d.DurationType != DurationPermanent {
		errs = append(errs, fmt.Errorf("duration_type must be rounds or permanent, got %q", d.DurationType))
	}
	if d.MaxStacks < 0 {
		errs = append(errs, fmt.Errorf("max_stacks must be >= 0, got %d", d.MaxStacks))
	}
	for _, m := range []map[attribute.Type]int{d.ValueBonus, d.ModifierBonus} {
		for t := range m {
			if !t.Valid() {
				errs = append(errs, fmt.Errorf("unknown attribute %q", t))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("condition %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// Registry holds condition definitions keyed by ID. Read-only after construction.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry validates defs and indexes them by ID.
//
// Postcondition: ErrDuplicateEntry if two definitions share an ID.
func NewRegistry(defs []*Def) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Def, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("condition %q defined twice: %w", d.ID, gameerr.ErrDuplicateEntry)
		}
		r.defs[d.ID] = d.clone()
	}
	return r, nil
}

// Get returns a copy of the definition for id; changing it leaves the
// registry untouched.
func (r *Registry) Get(id string) (*Def, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("condition %q: %w", id, gameerr.ErrNotFound)
	}
	return d.clone(), nil
}

func (d *Def) clone() *Def {
	c := *d
	c.ValueBonus = maps.Clone(d.ValueBonus)
	c.ModifierBonus = maps.Clone(d.ModifierBonus)
	return &c
}

// IDs returns every registered id, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.defs))
	for id := range r.defs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadDirectory reads every *.yaml file in dir as a Def and returns a populated Registry.
// Unknown YAML keys are rejected.
func LoadDirectory(dir string) (*Registry, error) {
	return load(os.DirFS(dir), ".")
}

//go:embed data
var builtin embed.FS

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry over the embedded condition table, built on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := load(builtin, "data")
		if err != nil {
			panic("condition: embedded condition table is invalid: " + err.Error())
		}
		defaultReg = r
	})
	return defaultReg
}

func load(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	var defs []*Def
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		p := e.Name()
		if dir != "." {
			p = dir + "/" + p
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		defs = append(defs, &def)
	}
	return NewRegistry(defs)
}
