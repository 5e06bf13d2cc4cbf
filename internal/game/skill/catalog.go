package skill

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
)

//go:embed data/skills.yaml
var defaultTable []byte

// Catalog is a read-only skill table. It is safe for concurrent use once
// constructed.
type Catalog struct {
	order  []Type
	skills map[Type]Skill
}

// NewCatalog indexes skills by type.
//
// Postcondition: returns ErrDuplicateEntry if a type repeats; every skill must
// name a valid governing attribute.
func NewCatalog(skills []Skill) (*Catalog, error) {
	c := &Catalog{skills: make(map[Type]Skill, len(skills))}
	for _, s := range skills {
		if s.Type == "" {
			return nil, fmt.Errorf("skill: entry with empty type")
		}
		if !s.Attribute.Valid() {
			return nil, fmt.Errorf("skill: %s has unknown attribute %q", s.Type, s.Attribute)
		}
		if _, dup := c.skills[s.Type]; dup {
			return nil, fmt.Errorf("skill: %s listed twice: %w", s.Type, gameerr.ErrDuplicateEntry)
		}
		c.skills[s.Type] = s
		c.order = append(c.order, s.Type)
	}
	return c, nil
}

// ParseCatalog decodes a YAML skill list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var skills []Skill
	if err := yaml.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("skill: parsing table: %w", err)
	}
	return NewCatalog(skills)
}

// LoadCatalog reads a YAML skill list from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skill: reading %s: %w", path, err)
	}
	return ParseCatalog(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in skill table, parsing it on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(defaultTable)
		if err != nil {
			panic("skill: embedded table is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Skill returns the entry for t.
func (c *Catalog) Skill(t Type) (Skill, error) {
	s, ok := c.skills[t]
	if !ok {
		return Skill{}, fmt.Errorf("skill: %q: %w", t, gameerr.ErrNotFound)
	}
	return s, nil
}

// Contains reports whether t is in the table.
func (c *Catalog) Contains(t Type) bool {
	_, ok := c.skills[t]
	return ok
}

// All returns every skill in table order.
func (c *Catalog) All() []Skill {
	out := make([]Skill, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.skills[t])
	}
	return out
}
