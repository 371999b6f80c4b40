package pf2e

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Persisted schema versions. Version 1 predates hit points, shield, gear,
// tactics and flags; records written before versions existed carry none.
const (
	LegacySchemaVersion  = 1
	CurrentSchemaVersion = 2
)

// LegacyCharacter is the version 1 record shape
type LegacyCharacter struct {
	ID            string             `json:"id,omitempty"`
	PlayerID      string             `json:"player_id,omitempty"`
	Name          string             `json:"name"`
	Level         int                `json:"level"`
	Attributes    []int              `json:"attributes"`
	Text          string             `json:"text"`
	Background    string             `json:"background"`
	Class         string             `json:"class"`
	Proficiencies []ProficiencyEntry `json:"proficiencies"`
	Feats         []string           `json:"feats"`
	Conditions    []string           `json:"conditions"`
}

// UpgradeLegacy lifts a version 1 record to the current schema, filling
// the pools with starting values scaled to the record's level.
func UpgradeLegacy(legacy *LegacyCharacter) (*SimpleCharacter, error) {
	if len(legacy.Attributes) != AttributeCount {
		return nil, errors.Misconfigured(&AttributeListError{Got: len(legacy.Attributes)},
			"cannot upgrade legacy record")
	}
	con := legacy.Attributes[2]

	return &SimpleCharacter{
		SchemaVersion:        CurrentSchemaVersion,
		ID:                   legacy.ID,
		PlayerID:             legacy.PlayerID,
		Name:                 legacy.Name,
		Level:                legacy.Level,
		Attributes:           cloneSlice(legacy.Attributes),
		Text:                 legacy.Text,
		Background:           legacy.Background,
		Class:                legacy.Class,
		KeyAttribute:         DefaultKeyAttribute,
		Proficiencies:        cloneSlice(legacy.Proficiencies),
		Feats:                cloneSlice(legacy.Feats),
		Conditions:           cloneSlice(legacy.Conditions),
		Gear:                 []GearItem{},
		Tactics:              []Tactic{},
		ProficiencyOverrides: map[string]string{},
		Bonuses:              map[string]int{},
		Features:             map[string]bool{},
		HP:                   DefaultHP(legacy.Level, con),
		MountHP:              DefaultMountHP(legacy.Level),
		Shield:               DefaultShield(),
	}, nil
}

type schemaProbe struct {
	SchemaVersion int             `json:"schema_version"`
	HP            json.RawMessage `json:"hp_info"`
}

// DecodeSimpleCharacter parses a JSON record of any known schema version,
// upgrading older shapes, and validates the result.
func DecodeSimpleCharacter(data []byte) (*SimpleCharacter, error) {
	var probe schemaProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Misconfigured(err, "character record is not valid JSON")
	}

	version := probe.SchemaVersion
	if version == 0 {
		version = CurrentSchemaVersion
		if len(probe.HP) == 0 || string(probe.HP) == "null" {
			version = LegacySchemaVersion
		}
	}

	var record *SimpleCharacter
	switch version {
	case LegacySchemaVersion:
		var legacy LegacyCharacter
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, errors.Misconfigured(err, "malformed legacy character record")
		}
		upgraded, err := UpgradeLegacy(&legacy)
		if err != nil {
			return nil, err
		}
		record = upgraded
	case CurrentSchemaVersion:
		record = &SimpleCharacter{}
		if err := json.Unmarshal(data, record); err != nil {
			return nil, errors.Misconfigured(err, "malformed character record")
		}
		record.SchemaVersion = CurrentSchemaVersion
		if record.KeyAttribute == "" {
			record.KeyAttribute = DefaultKeyAttribute
		}
	default:
		return nil, errors.FailedPreconditionf("unsupported schema version %d", version)
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
