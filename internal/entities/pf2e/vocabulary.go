package pf2e

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// ProficiencyType selects the governing-attribute rule for a stat
type ProficiencyType string

// Proficiency types
const (
	ProficiencySave       ProficiencyType = "Save"
	ProficiencySkill      ProficiencyType = "Skill"
	ProficiencyLore       ProficiencyType = "Lore"
	ProficiencyArmor      ProficiencyType = "Armor"
	ProficiencyWeapon     ProficiencyType = "Weapon"
	ProficiencySpell      ProficiencyType = "Spell"
	ProficiencyClassDC    ProficiencyType = "ClassDC"
	ProficiencyPerception ProficiencyType = "Perception"
)

// KeyAttribute is the placeholder governing attribute of Spell and ClassDC
// stats. It resolves to the character's key attribute.
const KeyAttribute = "key"

var proficiencyTypes = []ProficiencyType{
	ProficiencySave,
	ProficiencySkill,
	ProficiencyLore,
	ProficiencyArmor,
	ProficiencyWeapon,
	ProficiencySpell,
	ProficiencyClassDC,
	ProficiencyPerception,
}

var saveAttributes = map[string]string{
	"Fortitude": AttributeCon,
	"Reflex":    AttributeDex,
	"Will":      AttributeWis,
}

var skillAttributes = map[string]string{
	"Acrobatics":   AttributeDex,
	"Arcana":       AttributeInt,
	"Athletics":    AttributeStr,
	"Crafting":     AttributeInt,
	"Deception":    AttributeCha,
	"Diplomacy":    AttributeCha,
	"Intimidation": AttributeCha,
	"Medicine":     AttributeWis,
	"Nature":       AttributeWis,
	"Occultism":    AttributeInt,
	"Performance":  AttributeCha,
	"Religion":     AttributeWis,
	"Society":      AttributeInt,
	"Stealth":      AttributeDex,
	"Survival":     AttributeWis,
	"Thievery":     AttributeDex,
}

// Types whose governing attribute does not depend on the name
var fixedAttributes = map[ProficiencyType]string{
	ProficiencyLore:       AttributeInt,
	ProficiencyArmor:      AttributeDex,
	ProficiencyWeapon:     AttributeStr,
	ProficiencySpell:      KeyAttribute,
	ProficiencyClassDC:    KeyAttribute,
	ProficiencyPerception: AttributeWis,
}

// ProficiencyTypes returns every proficiency type
func ProficiencyTypes() []ProficiencyType {
	out := make([]ProficiencyType, len(proficiencyTypes))
	copy(out, proficiencyTypes)
	return out
}

// Valid reports whether t is a known proficiency type
func (t ProficiencyType) Valid() bool {
	_, fixed := fixedAttributes[t]
	return fixed || t == ProficiencySave || t == ProficiencySkill
}

// UnmarshalText rejects types outside the closed set
func (t *ProficiencyType) UnmarshalText(text []byte) error {
	parsed := ProficiencyType(text)
	if !parsed.Valid() {
		return errors.Misconfigured(&ParseError{Kind: "proficiency type", Value: string(text)},
			"invalid proficiency type")
	}
	*t = parsed
	return nil
}

// SaveNames returns the save vocabulary, sorted
func SaveNames() []string {
	return sortedKeys(saveAttributes)
}

// SkillNames returns the skill vocabulary, sorted
func SkillNames() []string {
	return sortedKeys(skillAttributes)
}

// GoverningAttribute resolves the attribute id for (type, name).
// Save and Skill names must belong to their closed vocabulary; Lore accepts
// any name.
func GoverningAttribute(t ProficiencyType, name string) (string, error) {
	var table map[string]string
	switch t {
	case ProficiencySave:
		table = saveAttributes
	case ProficiencySkill:
		table = skillAttributes
	default:
		attr, ok := fixedAttributes[t]
		if !ok {
			return "", errors.Misconfigured(&ParseError{Kind: "proficiency type", Value: string(t)},
				"invalid proficiency type")
		}
		return attr, nil
	}

	attr, ok := table[name]
	if !ok {
		unknown := &UnknownNameError{
			Type:       t,
			Name:       name,
			Suggestion: closestName(name, sortedKeys(table)),
		}
		return "", errors.Misconfigured(unknown, "unknown proficiency name").
			WithMeta("proficiency_type", string(t)).
			WithMeta("name", name)
	}
	return attr, nil
}

const maxSuggestionDistance = 3

func closestName(name string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	lowered := strings.ToLower(name)
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(lowered, strings.ToLower(candidate))
		if d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
