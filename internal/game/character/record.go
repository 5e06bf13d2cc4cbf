package character

import (
	"encoding/json"
	"fmt"

	"github.com/cory-johannsen/pathfinder/internal/game/attribute"
	"github.com/cory-johannsen/pathfinder/internal/game/progression"
	"github.com/cory-johannsen/pathfinder/internal/game/ruleset"
	"github.com/cory-johannsen/pathfinder/internal/game/skill"
)

// Record is the JSON form of a Character.
type Record struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Age        int                       `json:"age"`
	Height     int                       `json:"height"`
	Weight     int                       `json:"weight"`
	EyeColor   string                    `json:"eyeColor"`
	HairColor  string                    `json:"hairColor"`
	Race       ruleset.Race              `json:"race"`
	Classes    []progression.ClassDetail `json:"classes"`
	Attributes []AttributeRecord         `json:"attributes"`
	Skills     map[skill.Type]int        `json:"skills"`
}

// AttributeRecord is one serialized attribute. Value is the base value;
// Modifier is written for readers and ignored when loading.
type AttributeRecord struct {
	Type              attribute.Type `json:"type"`
	Value             int            `json:"value"`
	TempValueBonus    int            `json:"tempValueBonus"`
	Modifier          int            `json:"modifier"`
	TempModifierBonus int            `json:"tempModifierBonus"`
	ID                string         `json:"id"`
}

// ToRecord snapshots c. Classes are in catalog order and attributes in
// attribute.All order so output is stable.
func (f *Factory) ToRecord(c *Character) Record {
	details := c.attrs.Details()
	attrs := make([]AttributeRecord, 0, len(details))
	for _, d := range details {
		attrs = append(attrs, AttributeRecord{
			Type:              d.Type,
			Value:             d.Base,
			TempValueBonus:    d.TempValueBonus,
			Modifier:          d.Modifier(),
			TempModifierBonus: d.TempModifierBonus,
			ID:                d.ID,
		})
	}
	return Record{
		ID:         c.ID,
		Name:       c.Name,
		Age:        c.Age,
		Height:     c.Height,
		Weight:     c.Weight,
		EyeColor:   c.EyeColor,
		HairColor:  c.HairColor,
		Race:       c.Race,
		Classes:    f.progression.Classes(c),
		Attributes: attrs,
		Skills:     c.skills.Snapshot(),
	}
}

// Marshal encodes c as JSON.
func (f *Factory) Marshal(c *Character) ([]byte, error) {
	data, err := json.Marshal(f.ToRecord(c))
	if err != nil {
		return nil, fmt.Errorf("character %s: encoding: %w", c.ID, err)
	}
	return data, nil
}

// Unmarshal decodes JSON produced by Marshal.
func (f *Factory) Unmarshal(data []byte) (*Character, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("character: decoding: %w", err)
	}
	return f.FromRecord(r)
}
