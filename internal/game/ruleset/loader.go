package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

//go:embed data
var builtin embed.FS

// LoadClasses reads all .yaml files in dir and parses each as a ClassDef.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed classes in file-name order or a non-nil error.
func LoadClasses(dir string) ([]*ClassDef, error) {
	return loadAll[ClassDef](os.DirFS(dir), ".", "class")
}

// LoadRaces reads all .yaml files in dir and parses each as a Race.
func LoadRaces(dir string) ([]*Race, error) {
	return loadAll[Race](os.DirFS(dir), ".", "race")
}

func loadAll[T any](fsys fs.FS, dir, kind string) ([]*T, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(files))
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		var v T
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing %s file %s: %w", kind, p, err)
		}
		out = append(out, &v)
	}
	return out, nil
}

// yamlFiles lists *.yaml and *.yml entries of dir; fs.ReadDir sorts by name.
func yamlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}

var (
	defaultClassesOnce sync.Once
	defaultClasses     []*ClassDef
	defaultRacesOnce   sync.Once
	defaultRaces       []*Race
)

// BuiltinClasses returns the class definitions shipped with the binary.
// The slice is parsed once; callers receive fresh copies of each def.
func BuiltinClasses() []*ClassDef {
	defaultClassesOnce.Do(func() {
		defs, err := loadAll[ClassDef](builtin, "data/classes", "class")
		if err != nil {
			panic("ruleset: embedded classes are invalid: " + err.Error())
		}
		defaultClasses = defs
	})
	out := make([]*ClassDef, len(defaultClasses))
	for i, d := range defaultClasses {
		c := *d
		c.ClassSkills = append([]skill.Type(nil), d.ClassSkills...)
		out[i] = &c
	}
	return out
}

// BuiltinRaces returns the races shipped with the binary.
func BuiltinRaces() []*Race {
	defaultRacesOnce.Do(func() {
		races, err := loadAll[Race](builtin, "data/races", "race")
		if err != nil {
			panic("ruleset: embedded races are invalid: " + err.Error())
		}
		defaultRaces = races
	})
	out := make([]*Race, len(defaultRaces))
	for i, r := range defaultRaces {
		c := *r
		c.Traits = append([]string(nil), r.Traits...)
		out[i] = &c
	}
	return out
}
