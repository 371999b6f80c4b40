package pf2e

import (
	"slices"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// MutationKind names one kind of sheet edit
type MutationKind string

// Mutation kinds
const (
	MutationAttributeDelta      MutationKind = "attribute_delta"
	MutationLevelDelta          MutationKind = "level_delta"
	MutationHPDelta             MutationKind = "hp_delta"
	MutationMountHPDelta        MutationKind = "mount_hp_delta"
	MutationTempHPSet           MutationKind = "temp_hp_set"
	MutationMountTempHPSet      MutationKind = "mount_temp_hp_set"
	MutationShieldDelta         MutationKind = "shield_delta"
	MutationShieldHardnessDelta MutationKind = "shield_hardness_delta"
	MutationShieldRaiseToggle   MutationKind = "shield_raise_toggle"
	MutationProficiencySet      MutationKind = "proficiency_set"
	MutationTextSet             MutationKind = "text_set"
	MutationFeatureFlagSet      MutationKind = "feature_flag_set"
	MutationBonusSet            MutationKind = "bonus_set"
	MutationOverrideSet         MutationKind = "override_set"
	MutationTacticToggle        MutationKind = "tactic_toggle"
	MutationFeatAdd             MutationKind = "feat_add"
	MutationFeatRemove          MutationKind = "feat_remove"
	MutationConditionAdd        MutationKind = "condition_add"
	MutationConditionRemove     MutationKind = "condition_remove"
)

// Text fields addressable by MutationTextSet
const (
	TextFieldName         = "name"
	TextFieldNotes        = "notes"
	TextFieldBackground   = "background"
	TextFieldClass        = "class"
	TextFieldKeyAttribute = "key_attribute"
)

// Mutation is a single edit requested by a collaborator.
//
// Target names the attribute, stat, text field, flag, tactic, feat or
// condition. Value carries deltas and numeric settings, Text carries labels
// and strings, Flag carries booleans (ignore hardness for shield_delta).
type Mutation struct {
	Kind   MutationKind `json:"kind"`
	Target string       `json:"target,omitempty"`
	Value  int          `json:"value,omitempty"`
	Text   string       `json:"text,omitempty"`
	Flag   bool         `json:"flag,omitempty"`
}

// MutationKinds returns every supported kind
func MutationKinds() []MutationKind {
	return []MutationKind{
		MutationAttributeDelta, MutationLevelDelta, MutationHPDelta, MutationMountHPDelta,
		MutationTempHPSet, MutationMountTempHPSet, MutationShieldDelta, MutationShieldHardnessDelta,
		MutationShieldRaiseToggle, MutationProficiencySet, MutationTextSet, MutationFeatureFlagSet,
		MutationBonusSet, MutationOverrideSet, MutationTacticToggle, MutationFeatAdd,
		MutationFeatRemove, MutationConditionAdd, MutationConditionRemove,
	}
}

// Apply performs the mutation. The character is unchanged when an error
// is returned.
func (c *Character) Apply(m Mutation) error {
	switch m.Kind {
	case MutationAttributeDelta:
		current, ok := c.attributes.Get(m.Target)
		if !ok {
			return errors.InvalidArgumentf("unknown attribute %q", m.Target)
		}
		return c.SetAttribute(m.Target, current+m.Value)
	case MutationLevelDelta:
		return c.SetLevel(c.level + m.Value)
	case MutationHPDelta:
		c.ChangeHP(m.Value)
	case MutationMountHPDelta:
		c.ChangeMountHP(m.Value)
	case MutationTempHPSet:
		c.SetTempHP(m.Value)
	case MutationMountTempHPSet:
		c.SetMountTempHP(m.Value)
	case MutationShieldDelta:
		c.ChangeShield(m.Value, m.Flag)
	case MutationShieldHardnessDelta:
		c.ChangeShieldHardness(m.Value)
	case MutationShieldRaiseToggle:
		c.ToggleShieldRaised()
	case MutationProficiencySet:
		level, err := ParseProficiencyLevel(m.Text)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid proficiency level")
		}
		return c.SetProficiency(m.Target, level)
	case MutationTextSet:
		return c.setText(m.Target, m.Text)
	case MutationFeatureFlagSet:
		return c.setFeature(m.Target, m.Flag)
	case MutationBonusSet:
		return c.setBonus(m.Target, m.Value)
	case MutationOverrideSet:
		return c.setOverride(m.Target, m.Text)
	case MutationTacticToggle:
		return c.toggleTactic(m.Target)
	case MutationFeatAdd:
		return c.addName(&c.Feats, m, "feat")
	case MutationFeatRemove:
		return c.removeName(&c.Feats, m, "feat")
	case MutationConditionAdd:
		return c.addName(&c.Conditions, m, "condition")
	case MutationConditionRemove:
		return c.removeName(&c.Conditions, m, "condition")
	default:
		return errors.InvalidArgumentf("unknown mutation kind %q", m.Kind)
	}
	return nil
}

func (c *Character) setText(field, value string) error {
	var target *string
	switch field {
	case TextFieldName:
		target = &c.Name
	case TextFieldNotes:
		target = &c.Notes
	case TextFieldBackground:
		target = &c.Background
	case TextFieldClass:
		target = &c.Class
	case TextFieldKeyAttribute:
		if !IsAttributeID(value) {
			return errors.InvalidArgumentf("key attribute must be an attribute id, got %q", value)
		}
		target = &c.KeyAttribute
	default:
		return errors.InvalidArgumentf("unknown text field %q", field)
	}
	before := *target
	*target = value
	c.notify(Change{Kind: MutationTextSet, Target: field, Before: before, After: value})
	return nil
}

func (c *Character) setFeature(name string, on bool) error {
	if name == "" {
		return errors.InvalidArgument("feature name is required")
	}
	if c.Features == nil {
		c.Features = make(map[string]bool)
	}
	before := c.Features[name]
	c.Features[name] = on
	c.notify(Change{Kind: MutationFeatureFlagSet, Target: name, Before: before, After: on})
	return nil
}

func (c *Character) setBonus(name string, value int) error {
	if name == "" {
		return errors.InvalidArgument("bonus name is required")
	}
	if c.Bonuses == nil {
		c.Bonuses = make(map[string]int)
	}
	before := c.Bonuses[name]
	if value == 0 {
		delete(c.Bonuses, name)
	} else {
		c.Bonuses[name] = value
	}
	c.notify(Change{Kind: MutationBonusSet, Target: name, Before: before, After: value})
	return nil
}

// setOverride redirects a stat to another attribute; an empty id clears it
func (c *Character) setOverride(name, attr string) error {
	if _, ok := c.ProfIndexByName(name); !ok {
		return errors.NotFoundf("proficiency %q not found", name)
	}
	if attr != "" && attr != KeyAttribute && !IsAttributeID(attr) {
		return errors.InvalidArgumentf("unknown attribute %q", attr)
	}
	if c.ProficiencyOverrides == nil {
		c.ProficiencyOverrides = make(map[string]string)
	}
	before := c.ProficiencyOverrides[name]
	if attr == "" {
		delete(c.ProficiencyOverrides, name)
	} else {
		c.ProficiencyOverrides[name] = attr
	}
	c.notify(Change{Kind: MutationOverrideSet, Target: name, Before: before, After: attr})
	return nil
}

func (c *Character) toggleTactic(name string) error {
	for i := range c.Tactics {
		if c.Tactics[i].Name == name {
			c.Tactics[i].Selected = !c.Tactics[i].Selected
			c.notify(Change{
				Kind:   MutationTacticToggle,
				Target: name,
				Before: !c.Tactics[i].Selected,
				After:  c.Tactics[i].Selected,
			})
			return nil
		}
	}
	return errors.NotFoundf("tactic %q not found", name)
}

func (c *Character) addName(list *[]string, m Mutation, what string) error {
	if m.Target == "" {
		return errors.InvalidArgumentf("%s name is required", what)
	}
	if slices.Contains(*list, m.Target) {
		return errors.AlreadyExistsf("%s %q already present", what, m.Target)
	}
	*list = append(*list, m.Target)
	c.notify(Change{Kind: m.Kind, Target: m.Target})
	return nil
}

func (c *Character) removeName(list *[]string, m Mutation, what string) error {
	i := slices.Index(*list, m.Target)
	if i < 0 {
		return errors.NotFoundf("%s %q not found", what, m.Target)
	}
	*list = slices.Delete(*list, i, i+1)
	c.notify(Change{Kind: m.Kind, Target: m.Target})
	return nil
}
