package progression

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

// Manager applies the class rules to a Subject's State.
//
// Manager holds only read-only catalogs and may be shared between goroutines;
// the caller serializes mutations to any one Subject.
type Manager struct {
	classes *ruleset.ClassCatalog
	logger  *zap.Logger
}

// NewManager creates a Manager over the given class catalog.
//
// Precondition: classes and logger must be non-nil.
func NewManager(classes *ruleset.ClassCatalog, logger *zap.Logger) *Manager {
	return &Manager{classes: classes, logger: logger}
}

// Catalog returns the class catalog the manager consults.
func (m *Manager) Catalog() *ruleset.ClassCatalog {
	return m.classes
}

// Classes returns a snapshot of the subject's classes in catalog order.
func (m *Manager) Classes(s Subject) []ClassDetail {
	st := s.ClassState()
	out := make([]ClassDetail, 0, len(st.levels))
	for ct, lvl := range st.levels {
		out = append(out, ClassDetail{Class: ct, Level: lvl})
	}
	sort.Slice(out, func(i, j int) bool {
		return m.classes.Index(out[i].Class) < m.classes.Index(out[j].Class)
	})
	return out
}

// ClassDetail returns the subject's entry for ct.
func (m *Manager) ClassDetail(s Subject, ct ruleset.ClassType) (ClassDetail, error) {
	lvl, ok := s.ClassState().Level(ct)
	if !ok {
		return ClassDetail{}, fmt.Errorf("progression: class %s not held: %w", ct, gameerr.ErrNotFound)
	}
	return ClassDetail{Class: ct, Level: lvl}, nil
}

// Contains reports whether the subject holds ct.
func (m *Manager) Contains(s Subject, ct ruleset.ClassType) bool {
	_, ok := s.ClassState().Level(ct)
	return ok
}

// AddClass gives the subject a new class.
//
// Postcondition: ErrDuplicateEntry if the class is already held (use LevelUp),
// ErrNotFound if the class is not in the catalog, ErrIllegalState if
// d.Level < 1. State is unchanged on error.
func (m *Manager) AddClass(s Subject, d ClassDetail) error {
	if err := m.validate(d); err != nil {
		return err
	}
	st := s.ClassState()
	if _, ok := st.levels[d.Class]; ok {
		return fmt.Errorf("progression: class %s already held: %w", d.Class, gameerr.ErrDuplicateEntry)
	}
	st.levels[d.Class] = d.Level
	m.logger.Debug("class added", zap.String("class", string(d.Class)), zap.Int("level", d.Level))
	return nil
}

// LevelUp raises the subject's level in ct by exactly one.
//
// Postcondition: ErrIllegalState if ct is not held; other classes unchanged.
func (m *Manager) LevelUp(s Subject, ct ruleset.ClassType) error {
	st := s.ClassState()
	lvl, ok := st.levels[ct]
	if !ok {
		return fmt.Errorf("progression: cannot level up %s, class not present: %w", ct, gameerr.ErrIllegalState)
	}
	st.levels[ct] = lvl + 1
	m.logger.Debug("class level up",
		zap.String("class", string(ct)),
		zap.Int("level", lvl+1),
		zap.Int("total_level", m.SummaryLevel(s)),
	)
	return nil
}

// SummaryLevel returns the sum of all class levels.
func (m *Manager) SummaryLevel(s Subject) int {
	total := 0
	for _, lvl := range s.ClassState().levels {
		total += lvl
	}
	return total
}

// SkillPointsFromClasses returns the sum of each class's own contribution at
// its current level, excluding intelligence.
func (m *Manager) SkillPointsFromClasses(s Subject) (int, error) {
	total := 0
	for ct, lvl := range s.ClassState().levels {
		def, err := m.classes.Class(ct)
		if err != nil {
			return 0, err
		}
		pts, err := def.SkillPoints(lvl)
		if err != nil {
			return 0, err
		}
		total += pts
	}
	return total, nil
}

// TotalSkillPoints returns SkillPointsFromClasses plus the intelligence
// modifier once per character level.
func (m *Manager) TotalSkillPoints(s Subject) (int, error) {
	fromClasses, err := m.SkillPointsFromClasses(s)
	if err != nil {
		return 0, err
	}
	return fromClasses + s.IntelligenceModifier()*m.SummaryLevel(s), nil
}

// SetOnControl replaces the subject's class set with details, used when
// rehydrating a stored character.
//
// Postcondition: the input is validated in full first; on error the previous
// set is untouched. On success no prior entry survives.
func (m *Manager) SetOnControl(s Subject, details []ClassDetail) error {
	next := make(map[ruleset.ClassType]int, len(details))
	for _, d := range details {
		if err := m.validate(d); err != nil {
			return err
		}
		if _, dup := next[d.Class]; dup {
			return fmt.Errorf("progression: class %s supplied twice: %w", d.Class, gameerr.ErrDuplicateEntry)
		}
		next[d.Class] = d.Level
	}
	s.ClassState().levels = next
	return nil
}

// IsClassSkill reports whether t is a class skill of any class the subject
// currently holds.
func (m *Manager) IsClassSkill(s Subject, t skill.Type) bool {
	for ct := range s.ClassState().levels {
		def, err := m.classes.Class(ct)
		if err != nil {
			continue
		}
		if def.HasClassSkill(t) {
			return true
		}
	}
	return false
}

func (m *Manager) validate(d ClassDetail) error {
	if !m.classes.Contains(d.Class) {
		return fmt.Errorf("progression: class %q: %w", d.Class, gameerr.ErrNotFound)
	}
	if d.Level < 1 {
		return fmt.Errorf("progression: class %s level must be >= 1, got %d: %w", d.Class, d.Level, gameerr.ErrIllegalState)
	}
	return nil
}
