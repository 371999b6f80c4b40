package pf2e

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// ProficiencyEntry is the persisted form of a stat: the governing
// attribute is left out and re-derived on load. It encodes as a JSON array
// ["Athletics", "Skill", "Trained"].
type ProficiencyEntry struct {
	Name  string
	Type  ProficiencyType
	Level ProficiencyLevel
}

// MarshalJSON implements json.Marshaler
func (e ProficiencyEntry) MarshalJSON() ([]byte, error) {
	level, err := e.Level.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal([3]string{e.Name, string(e.Type), string(level)})
}

// UnmarshalJSON implements json.Unmarshaler
func (e *ProficiencyEntry) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return errors.Misconfigured(nil, "proficiency entry must be [name, type, level]").
			WithMeta("length", len(raw))
	}
	var entry ProficiencyEntry
	entry.Name = raw[0]
	if err := entry.Type.UnmarshalText([]byte(raw[1])); err != nil {
		return err
	}
	if err := entry.Level.UnmarshalText([]byte(raw[2])); err != nil {
		return err
	}
	*e = entry
	return nil
}

// SimpleCharacter is the persisted and wire form of a character. It holds
// the same content as Character with attributes position-encoded and stats
// reduced to (name, type, level) triples. It has no derived fields.
type SimpleCharacter struct {
	SchemaVersion int    `json:"schema_version"`
	ID            string `json:"id,omitempty"`
	PlayerID      string `json:"player_id,omitempty"`

	Name          string             `json:"name"`
	Level         int                `json:"level"`
	Attributes    []int              `json:"attributes"`
	Text          string             `json:"text"`
	Background    string             `json:"background"`
	Class         string             `json:"class"`
	KeyAttribute  string             `json:"key_attribute"`
	Proficiencies []ProficiencyEntry `json:"proficiencies"`
	Feats         []string           `json:"feats"`
	Conditions    []string           `json:"conditions"`
	Gear          []GearItem         `json:"gear_list"`
	Tactics       []Tactic           `json:"tactics"`

	ProficiencyOverrides map[string]string `json:"proficiency_overrides"`
	Bonuses              map[string]int    `json:"bonuses"`
	Features             map[string]bool   `json:"features"`

	HP      *HpInfo     `json:"hp_info"`
	MountHP *HpInfo     `json:"horse_hp_info"`
	Shield  *ShieldInfo `json:"shield_info"`
}

// Validate checks the fields a record must carry
func (s *SimpleCharacter) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("level", s.Level, 1, vb)
	if len(s.Attributes) != AttributeCount {
		vb.Fieldf("attributes", "must have exactly %d entries, got %d", AttributeCount, len(s.Attributes))
	}
	validatePool("hp_info", s.HP, vb)
	validatePool("horse_hp_info", s.MountHP, vb)
	switch {
	case s.Shield == nil:
		vb.RequiredField("shield_info")
	case s.Shield.CurrentHP() < 0 || s.Shield.CurrentHP() > s.Shield.MaxHP():
		vb.Fieldf("shield_info", "current_hp must be between 0 and %d, got %d", s.Shield.MaxHP(), s.Shield.CurrentHP())
	}
	if s.KeyAttribute != "" && !IsAttributeID(s.KeyAttribute) {
		vb.Fieldf("key_attribute", "unknown attribute %q", s.KeyAttribute)
	}
	if err := vb.Build(); err != nil {
		return errors.Misconfigured(err, "malformed character record")
	}
	return nil
}

func validatePool(field string, h *HpInfo, vb *errors.ValidationBuilder) {
	switch {
	case h == nil:
		vb.RequiredField(field)
	case h.CurrentHP() < 0:
		vb.Field(field, "current_hp must not be negative")
	case h.TempHP() < 0:
		vb.Field(field, "temp_hp must not be negative")
	}
}

// ToCharacter loads a record into a computed character. The record is not
// modified and shares no memory with the result.
func ToCharacter(s *SimpleCharacter) (*Character, error) {
	if s == nil {
		return nil, errors.InvalidArgument("character record is required")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	attrs, err := AttributesFromList(s.Attributes)
	if err != nil {
		return nil, errors.Misconfigured(err, "malformed attributes")
	}

	stats := make([]CalculatedStat, 0, len(s.Proficiencies))
	seen := make(map[string]struct{}, len(s.Proficiencies))
	for _, entry := range s.Proficiencies {
		if _, dup := seen[entry.Name]; dup {
			return nil, errors.Misconfigured(nil, "duplicate proficiency name").WithMeta("name", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		stat, err := NewCalculatedStat(entry.Type, entry.Name, entry.Level)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	keyAttribute := s.KeyAttribute
	if keyAttribute == "" {
		keyAttribute = DefaultKeyAttribute
	}

	return &Character{
		ID:                   s.ID,
		PlayerID:             s.PlayerID,
		Name:                 s.Name,
		Notes:                s.Text,
		Background:           s.Background,
		Class:                s.Class,
		KeyAttribute:         keyAttribute,
		Feats:                cloneSlice(s.Feats),
		Conditions:           cloneSlice(s.Conditions),
		Gear:                 cloneSlice(s.Gear),
		Tactics:              cloneSlice(s.Tactics),
		ProficiencyOverrides: cloneMap(s.ProficiencyOverrides),
		Bonuses:              cloneMap(s.Bonuses),
		Features:             cloneMap(s.Features),
		level:                s.Level,
		attributes:           attrs,
		proficiencies:        stats,
		hp:                   s.HP.clone(),
		mountHP:              s.MountHP.clone(),
		shield:               s.Shield.clone(),
	}, nil
}

// ToSimple projects a character down to its persisted record
func ToSimple(c *Character) *SimpleCharacter {
	entries := make([]ProficiencyEntry, len(c.proficiencies))
	for i, stat := range c.proficiencies {
		entries[i] = ProficiencyEntry{Name: stat.Name, Type: stat.Type, Level: stat.Proficiency}
	}

	return &SimpleCharacter{
		SchemaVersion:        CurrentSchemaVersion,
		ID:                   c.ID,
		PlayerID:             c.PlayerID,
		Name:                 c.Name,
		Level:                c.level,
		Attributes:           c.attributes.List(),
		Text:                 c.Notes,
		Background:           c.Background,
		Class:                c.Class,
		KeyAttribute:         c.KeyAttribute,
		Proficiencies:        entries,
		Feats:                cloneSlice(c.Feats),
		Conditions:           cloneSlice(c.Conditions),
		Gear:                 cloneSlice(c.Gear),
		Tactics:              cloneSlice(c.Tactics),
		ProficiencyOverrides: cloneMap(c.ProficiencyOverrides),
		Bonuses:              cloneMap(c.Bonuses),
		Features:             cloneMap(c.Features),
		HP:                   c.hp.clone(),
		MountHP:              c.mountHP.clone(),
		Shield:               c.shield.clone(),
	}
}

// Absent collections come back empty, never nil
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

func cloneMap[V any](in map[string]V) map[string]V {
	if in == nil {
		return map[string]V{}
	}
	return maps.Clone(in)
}
