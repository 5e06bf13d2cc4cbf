package attribute

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pathfinder/internal/game/gameerr"
)

// RangePolicy decides what happens when an attribute value would go negative.
type RangePolicy string

const (
	// PolicyPermissive accepts any value, allowing cursed or drained states.
	PolicyPermissive RangePolicy = "permissive"
	// PolicyReject refuses any change that leaves a negative value.
	PolicyReject RangePolicy = "reject"
)

// ParsePolicy maps a configuration string to a RangePolicy. The empty string
// selects PolicyPermissive.
func ParsePolicy(s string) (RangePolicy, error) {
	switch RangePolicy(s) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyReject:
		return PolicyReject, nil
	}
	return "", fmt.Errorf("attribute: unknown range policy %q", s)
}

// Store holds exactly one Detail per attribute Type.
//
// Store is not safe for concurrent mutation.
type Store struct {
	policy  RangePolicy
	details map[Type]*Detail
}

// NewStore builds a Store from one Detail per attribute.
//
// Postcondition: returns ErrMissingAttribute if a type is absent,
// ErrDuplicateEntry if a type repeats, and ErrOutOfRange if a value is
// negative under PolicyReject.
func NewStore(details []Detail, policy RangePolicy) (*Store, error) {
	if policy == "" {
		policy = PolicyPermissive
	}
	s := &Store{policy: policy, details: make(map[Type]*Detail, len(All))}
	for _, d := range details {
		if !d.Type.Valid() {
			return nil, fmt.Errorf("attribute: unknown attribute type %q: %w", d.Type, gameerr.ErrNotFound)
		}
		if _, dup := s.details[d.Type]; dup {
			return nil, fmt.Errorf("attribute: %s supplied twice: %w", d.Type, gameerr.ErrDuplicateEntry)
		}
		if err := s.check(d.Type, d.Value()); err != nil {
			return nil, err
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		s.details[d.Type] = &d
	}
	for _, t := range All {
		if _, ok := s.details[t]; !ok {
			return nil, fmt.Errorf("attribute: %s not supplied: %w", t, gameerr.ErrMissingAttribute)
		}
	}
	return s, nil
}

// Policy returns the active range policy.
func (s *Store) Policy() RangePolicy {
	return s.policy
}

// Value returns the base value plus temporary value bonus.
//
// Precondition: t.Valid(); the store holds every valid Type.
func (s *Store) Value(t Type) int {
	return s.details[t].Value()
}

// Modifier returns the table modifier of Value(t) plus the temporary modifier
// bonus.
func (s *Store) Modifier(t Type) int {
	return s.details[t].EffectiveModifier()
}

// Detail returns a copy of the entry for t.
func (s *Store) Detail(t Type) Detail {
	return *s.details[t]
}

// Details returns copies of all entries in All order.
func (s *Store) Details() []Detail {
	out := make([]Detail, 0, len(All))
	for _, t := range All {
		out = append(out, *s.details[t])
	}
	return out
}

// SetBase replaces the base value of t.
func (s *Store) SetBase(t Type, value int) error {
	d := s.details[t]
	if err := s.check(t, value+d.TempValueBonus); err != nil {
		return err
	}
	d.Base = value
	return nil
}

// SetTempBonus replaces the temporary value bonus of t.
func (s *Store) SetTempBonus(t Type, amount int) error {
	d := s.details[t]
	if err := s.check(t, d.Base+amount); err != nil {
		return err
	}
	d.TempValueBonus = amount
	return nil
}

// SetTempModifierBonus replaces the temporary modifier bonus of t. The bonus
// applies to the modifier, not the score, so the range policy does not apply.
func (s *Store) SetTempModifierBonus(t Type, amount int) {
	s.details[t].TempModifierBonus = amount
}

// ClearTemporary drops every temporary bonus, e.g. when a spell expires.
func (s *Store) ClearTemporary() {
	for _, d := range s.details {
		d.TempValueBonus = 0
		d.TempModifierBonus = 0
	}
}

func (s *Store) check(t Type, value int) error {
	if s.policy == PolicyReject && value < 0 {
		return fmt.Errorf("attribute: %s would become %d: %w", t, value, gameerr.ErrOutOfRange)
	}
	return nil
}
