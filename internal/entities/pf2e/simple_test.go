package pf2e_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type SimpleCharacterTestSuite struct {
	suite.Suite
	character *pf2e.Character
}

func TestSimpleCharacterSuite(t *testing.T) {
	suite.Run(t, new(SimpleCharacterTestSuite))
}

func (s *SimpleCharacterTestSuite) SetupTest() {
	c := pf2e.NewCharacter("Ketra")
	c.ID = "char_1"
	c.PlayerID = "player_1"
	c.Notes = "rides a grey mare"
	c.Feats = []string{"Shield Block"}
	c.Conditions = []string{"Frightened"}
	c.Gear = []pf2e.GearItem{{Name: "Lance", Weapon: true, Proficiency: "Martial"}}
	c.Tactics = []pf2e.Tactic{{Name: "Strike Hard", Selected: true}, {Name: "Form Up"}}
	c.ProficiencyOverrides["Intimidation"] = pf2e.AttributeStr
	c.Bonuses["Athletics"] = 1
	c.Features["mounted"] = true
	s.Require().NoError(c.SetLevel(4))
	s.Require().NoError(c.SetAttribute(pf2e.AttributeStr, 3))
	s.Require().NoError(c.SetAttribute(pf2e.AttributeCon, 1))
	s.Require().NoError(c.SetProficiency("Athletics", pf2e.Expert))
	c.SetTempHP(3)
	c.ChangeHP(-7)
	c.ChangeShield(-9, false)
	c.ToggleShieldRaised()
	s.character = c
}

func (s *SimpleCharacterTestSuite) TestRoundTrip() {
	first := pf2e.ToSimple(s.character)

	data, err := json.Marshal(first)
	s.Require().NoError(err)

	decoded, err := pf2e.DecodeSimpleCharacter(data)
	s.Require().NoError(err)

	loaded, err := pf2e.ToCharacter(decoded)
	s.Require().NoError(err)

	s.Equal(first, pf2e.ToSimple(loaded))

	ac, err := loaded.CalculateAC()
	s.Require().NoError(err)
	want, err := s.character.CalculateAC()
	s.Require().NoError(err)
	s.Equal(want, ac)
}

func (s *SimpleCharacterTestSuite) TestToSimpleSharesNoMemory() {
	record := pf2e.ToSimple(s.character)
	record.Feats[0] = "Changed"
	record.Bonuses["Athletics"] = 9
	record.HP.Change(-100)

	s.Equal("Shield Block", s.character.Feats[0])
	s.Equal(1, s.character.Bonuses["Athletics"])
	s.NotZero(s.character.HP().CurrentHP())
}

func (s *SimpleCharacterTestSuite) TestStatOrderPreserved() {
	record := pf2e.ToSimple(s.character)
	record.Proficiencies[0], record.Proficiencies[1] = record.Proficiencies[1], record.Proficiencies[0]

	loaded, err := pf2e.ToCharacter(record)
	s.Require().NoError(err)
	s.Equal(record.Proficiencies[0].Name, loaded.Proficiencies()[0].Name)
}

func (s *SimpleCharacterTestSuite) TestGoverningAttributeRederived() {
	loaded, err := pf2e.ToCharacter(pf2e.ToSimple(s.character))
	s.Require().NoError(err)

	stat, ok := loaded.ProfByName("Athletics")
	s.Require().True(ok)
	s.Equal(pf2e.AttributeStr, stat.Attribute)
}

func (s *SimpleCharacterTestSuite) TestUnknownSkillIsFatal() {
	record := pf2e.ToSimple(s.character)
	record.Proficiencies = append(record.Proficiencies,
		pf2e.ProficiencyEntry{Name: "Juggling", Type: pf2e.ProficiencySkill, Level: pf2e.Trained})

	_, err := pf2e.ToCharacter(record)
	s.Require().Error(err)
	s.True(errors.IsMisconfigured(err))

	var unknown *pf2e.UnknownNameError
	s.Require().True(errors.As(err, &unknown))
	s.Equal("Juggling", unknown.Name)
}

func (s *SimpleCharacterTestSuite) TestDuplicateStatIsFatal() {
	record := pf2e.ToSimple(s.character)
	record.Proficiencies = append(record.Proficiencies, record.Proficiencies[0])

	_, err := pf2e.ToCharacter(record)
	s.True(errors.IsMisconfigured(err))
}

func (s *SimpleCharacterTestSuite) TestAttributeCount() {
	record := pf2e.ToSimple(s.character)
	record.Attributes = record.Attributes[:5]

	_, err := pf2e.ToCharacter(record)
	s.True(errors.IsMisconfigured(err))
}

func (s *SimpleCharacterTestSuite) TestMissingPools() {
	record := pf2e.ToSimple(s.character)
	record.MountHP = nil
	_, err := pf2e.ToCharacter(record)
	s.True(errors.IsMisconfigured(err))

	record = pf2e.ToSimple(s.character)
	record.Shield = nil
	_, err = pf2e.ToCharacter(record)
	s.True(errors.IsMisconfigured(err))
}

func (s *SimpleCharacterTestSuite) TestEmptyKeyAttributeDefaults() {
	record := pf2e.ToSimple(s.character)
	record.KeyAttribute = ""

	loaded, err := pf2e.ToCharacter(record)
	s.Require().NoError(err)
	s.Equal(pf2e.DefaultKeyAttribute, loaded.KeyAttribute)
	_, err = loaded.StatTotal(pf2e.SpellAttack)
	s.NoError(err)
}

func (s *SimpleCharacterTestSuite) TestNilRecord() {
	_, err := pf2e.ToCharacter(nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestProficiencyEntryJSON(t *testing.T) {
	data, err := json.Marshal(pf2e.ProficiencyEntry{Name: "Athletics", Type: pf2e.ProficiencySkill, Level: pf2e.Trained})
	require.NoError(t, err)
	assert.JSONEq(t, `["Athletics","Skill","Trained"]`, string(data))

	var entry pf2e.ProficiencyEntry
	require.NoError(t, json.Unmarshal([]byte(`["Medium","Armor","Legendary"]`), &entry))
	assert.Equal(t, pf2e.ProficiencyEntry{Name: "Medium", Type: pf2e.ProficiencyArmor, Level: pf2e.Legendary}, entry)

	err = json.Unmarshal([]byte(`["Medium","Armor"]`), &entry)
	assert.True(t, errors.IsMisconfigured(err))

	err = json.Unmarshal([]byte(`["Medium","Armor","Godlike"]`), &entry)
	assert.True(t, errors.IsMisconfigured(err))
}

func TestDecodeLegacyRecord(t *testing.T) {
	legacy := `{
		"name": "Old Ketra",
		"level": 3,
		"attributes": [1, 0, 2, 0, 0, 1],
		"background": "Squire",
		"class": "Commander",
		"proficiencies": [["Athletics", "Skill", "Trained"]],
		"feats": ["Shield Block"]
	}`

	record, err := pf2e.DecodeSimpleCharacter([]byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, pf2e.CurrentSchemaVersion, record.SchemaVersion)
	assert.Equal(t, pf2e.DefaultKeyAttribute, record.KeyAttribute)
	assert.Equal(t, 8+(8+2)*3, record.HP.MaxHP())
	assert.Equal(t, 6+(6+2)*3, record.MountHP.MaxHP())
	assert.Equal(t, pf2e.DefaultShieldHP, record.Shield.MaxHP())
	assert.NotNil(t, record.Gear)

	c, err := pf2e.ToCharacter(record)
	require.NoError(t, err)
	total, err := c.StatTotal("Athletics")
	require.NoError(t, err)
	assert.Equal(t, 1+3+2, total)
}

// currentRecord encodes a fresh sheet and applies edit to its JSON object
func currentRecord(t *testing.T, edit func(map[string]any)) string {
	t.Helper()
	data, err := json.Marshal(pf2e.ToSimple(pf2e.NewCharacter("Ketra")))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	edit(raw)
	data, err = json.Marshal(raw)
	require.NoError(t, err)
	return string(data)
}

func setPoolField(pool, field string, value int) func(map[string]any) {
	return func(raw map[string]any) {
		raw[pool].(map[string]any)[field] = value
	}
}

func TestDecodeMissingKeyAttribute(t *testing.T) {
	data := currentRecord(t, func(raw map[string]any) { delete(raw, "key_attribute") })

	record, err := pf2e.DecodeSimpleCharacter([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, pf2e.DefaultKeyAttribute, record.KeyAttribute)

	c, err := pf2e.ToCharacter(record)
	require.NoError(t, err)
	_, err = c.StatTotal(pf2e.SpellAttack)
	assert.NoError(t, err)
	_, err = c.StatTotal(pf2e.ClassDCName)
	assert.NoError(t, err)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   func(error) bool
	}{
		{"not json", `{"name":`, errors.IsMisconfigured},
		{"future schema", `{"schema_version": 3}`, errors.IsFailedPrecondition},
		{"legacy bad attributes", `{"schema_version": 1, "level": 1, "attributes": [1, 2]}`, errors.IsMisconfigured},
		{"level zero", `{"schema_version": 2, "level": 0, "attributes": [0,0,0,0,0,0], "hp_info": {}, "horse_hp_info": {}, "shield_info": {}}`, errors.IsMisconfigured},
		{"negative current hp", currentRecord(t, setPoolField("hp_info", "current_hp", -1)), errors.IsMisconfigured},
		{"negative mount current hp", currentRecord(t, setPoolField("horse_hp_info", "current_hp", -3)), errors.IsMisconfigured},
		{"negative temp hp", currentRecord(t, setPoolField("hp_info", "temp_hp", -2)), errors.IsMisconfigured},
		{"shield above max", currentRecord(t, setPoolField("shield_info", "current_hp", 99)), errors.IsMisconfigured},
		{"negative shield hp", currentRecord(t, setPoolField("shield_info", "current_hp", -1)), errors.IsMisconfigured},
		{"missing shield", currentRecord(t, func(raw map[string]any) { delete(raw, "shield_info") }), errors.IsMisconfigured},
		{"unknown key attribute", currentRecord(t, func(raw map[string]any) { raw["key_attribute"] = "luck" }), errors.IsMisconfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pf2e.DecodeSimpleCharacter([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error class: %v", err)
		})
	}
}
