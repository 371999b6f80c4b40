package pf2e

import (
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// CalculatedStat is one bonus line on the sheet: a skill, save, lore, DC,
// armor or weapon group, or perception.
type CalculatedStat struct {
	Name        string
	Type        ProficiencyType
	Attribute   string // derived from (Type, Name), never persisted
	Proficiency ProficiencyLevel
}

// NewCalculatedStat builds a stat, deriving its governing attribute
func NewCalculatedStat(t ProficiencyType, name string, level ProficiencyLevel) (CalculatedStat, error) {
	if !level.Valid() {
		return CalculatedStat{}, errors.Misconfigured(
			&ParseError{Kind: "proficiency level", Value: level.String()},
			"invalid proficiency level")
	}
	attr, err := GoverningAttribute(t, name)
	if err != nil {
		return CalculatedStat{}, err
	}
	return CalculatedStat{
		Name:        name,
		Type:        t,
		Attribute:   attr,
		Proficiency: level,
	}, nil
}

// Calculate returns the total bonus for the stat on the given character:
// effective attribute value + proficiency bonus + any named bonus.
func (s CalculatedStat) Calculate(c *Character) (int, error) {
	attrID := c.EffectiveAttribute(s)
	value, ok := c.attributes.Get(attrID)
	if !ok {
		return 0, errors.Misconfigured(&MissingAttributeError{ID: attrID, For: s.Name},
			"missing governing attribute")
	}
	return value + s.Proficiency.Bonus(c.level) + c.Bonuses[s.Name], nil
}
