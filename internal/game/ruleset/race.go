package ruleset

import "fmt"

// Race is a character's ancestry. It carries identity and descriptive data
// only; it does not alter attributes.
type Race struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Size        string   `yaml:"size" json:"size"`
	Speed       int      `yaml:"speed" json:"speed"`
	Traits      []string `yaml:"traits" json:"traits,omitempty"`
}

// Validate checks that the race is usable for character creation.
func (r *Race) Validate() error {
	if r.ID == "" || r.Name == "" {
		return fmt.Errorf("race %q: id and name must not be empty", r.ID)
	}
	switch r.Size {
	case "small", "medium", "large":
	default:
		return fmt.Errorf("race %q: size must be one of [small, medium, large], got %q", r.ID, r.Size)
	}
	if r.Speed <= 0 {
		return fmt.Errorf("race %q: speed must be > 0, got %d", r.ID, r.Speed)
	}
	return nil
}
