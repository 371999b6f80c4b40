package pf2e

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Armor class constants. The dex cap is fixed regardless of armor category.
const (
	BaseAC            = 10
	ACDexCap          = 1
	ACItemBonus       = 4
	RaisedShieldBonus = 2

	// ArmorProficiencyName is the armor category used for armor class
	ArmorProficiencyName = "Medium"

	// MountConstitution is the fixed constitution contribution of the mount
	MountConstitution = 2
)

// EntityType is the entity type reported to the event bus
const EntityType = "character"

// GearItem is an owned item, referenced by name
type GearItem struct {
	Name        string `json:"name"`
	Weapon      bool   `json:"weapon,omitempty"`
	Proficiency string `json:"proficiency,omitempty"` // stat used for attack rolls
}

// Tactic is a selectable tactic, referenced by name
type Tactic struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// Character is the aggregate root of a sheet. It is the unit of mutation
// and persistence; nothing it owns is shared with another character.
// A Character is not safe for concurrent use.
type Character struct {
	ID       string
	PlayerID string

	Name         string
	Notes        string
	Background   string
	Class        string
	KeyAttribute string

	Feats      []string
	Conditions []string
	Gear       []GearItem
	Tactics    []Tactic

	// ProficiencyOverrides redirects the attribute a named stat uses
	ProficiencyOverrides map[string]string
	// Bonuses adds a flat amount to the named stat
	Bonuses map[string]int
	// Features are named boolean flags
	Features map[string]bool

	level         int
	attributes    Attributes
	proficiencies []CalculatedStat
	hp            *HpInfo
	mountHP       *HpInfo
	shield        *ShieldInfo

	listeners map[int]ChangeListener
	nextSubID int
}

var _ core.Entity = (*Character)(nil)

// GetID implements core.Entity
func (c *Character) GetID() string { return c.ID }

// GetType implements core.Entity
func (c *Character) GetType() string { return EntityType }

// Level returns the character level
func (c *Character) Level() int { return c.level }

// Attributes returns a copy of the attribute set
func (c *Character) Attributes() Attributes { return c.attributes }

// Attribute returns one attribute value
func (c *Character) Attribute(id string) (int, bool) { return c.attributes.Get(id) }

// HP returns a copy of the character's hit point pool
func (c *Character) HP() *HpInfo { return c.hp.clone() }

// MountHP returns a copy of the mount's hit point pool
func (c *Character) MountHP() *HpInfo { return c.mountHP.clone() }

// Shield returns a copy of the shield state
func (c *Character) Shield() *ShieldInfo { return c.shield.clone() }

// Proficiencies returns a copy of the stats in sheet order
func (c *Character) Proficiencies() []CalculatedStat {
	out := make([]CalculatedStat, len(c.proficiencies))
	copy(out, c.proficiencies)
	return out
}

// ProfByName finds a stat by exact name
func (c *Character) ProfByName(name string) (CalculatedStat, bool) {
	if i, ok := c.ProfIndexByName(name); ok {
		return c.proficiencies[i], true
	}
	return CalculatedStat{}, false
}

// ProfIndexByName finds a stat's position by exact name
func (c *Character) ProfIndexByName(name string) (int, bool) {
	for i, stat := range c.proficiencies {
		if stat.Name == name {
			return i, true
		}
	}
	return -1, false
}

// EffectiveAttribute is the attribute a stat actually uses: the override
// for its name if one exists, otherwise its governing attribute, with the
// key placeholder resolved to the character's key attribute.
func (c *Character) EffectiveAttribute(s CalculatedStat) string {
	attr := s.Attribute
	if override, ok := c.ProficiencyOverrides[s.Name]; ok {
		attr = override
	}
	if attr == KeyAttribute {
		return c.KeyAttribute
	}
	return attr
}

// StatTotal calculates the named stat
func (c *Character) StatTotal(name string) (int, error) {
	stat, ok := c.ProfByName(name)
	if !ok {
		return 0, errors.NotFoundf("proficiency %q not found", name)
	}
	return stat.Calculate(c)
}

// CalculateAC returns the armor class
func (c *Character) CalculateAC() (int, error) {
	armor, ok := c.ProfByName(ArmorProficiencyName)
	if !ok {
		return 0, errors.Misconfigured(&MissingStatError{Name: ArmorProficiencyName, For: "armor class"},
			"missing armor proficiency")
	}
	dex, ok := c.attributes.Get(AttributeDex)
	if !ok {
		return 0, errors.Misconfigured(&MissingAttributeError{ID: AttributeDex, For: "armor class"},
			"missing dexterity")
	}

	ac := BaseAC + min(dex, ACDexCap) + armor.Proficiency.Bonus(c.level) + ACItemBonus
	if c.shield.Raised() {
		ac += RaisedShieldBonus
	}
	return ac, nil
}

// AttackBonus calculates the attack bonus of an owned weapon
func (c *Character) AttackBonus(itemName string) (int, error) {
	for _, item := range c.Gear {
		if item.Name != itemName {
			continue
		}
		if !item.Weapon {
			return 0, errors.InvalidArgumentf("%q is not a weapon", itemName)
		}
		stat, ok := c.ProfByName(item.Proficiency)
		if !ok {
			return 0, errors.Misconfigured(&MissingStatError{Name: item.Proficiency, For: itemName},
				"missing weapon proficiency")
		}
		return stat.Calculate(c)
	}
	return 0, errors.NotFoundf("gear %q not found", itemName)
}

// Feature reads a feature flag; absent flags are off
func (c *Character) Feature(name string) bool {
	return c.Features[name]
}

// SelectedTactics counts selected tactics
func (c *Character) SelectedTactics() int {
	n := 0
	for _, t := range c.Tactics {
		if t.Selected {
			n++
		}
	}
	return n
}

// SetLevel changes the level and recomputes both hit point maximums
func (c *Character) SetLevel(level int) error {
	if level < 1 {
		return errors.InvalidArgumentf("level must be at least 1, got %d", level)
	}
	before := c.level
	c.level = level
	if err := c.recomputeHP(); err != nil {
		c.level = before
		return err
	}
	c.notify(Change{Kind: MutationLevelDelta, Before: before, After: level})
	return nil
}

// SetAttribute sets an ability score. Changing con recomputes rider max HP.
func (c *Character) SetAttribute(id string, value int) error {
	before, ok := c.attributes.Get(id)
	if !ok {
		return errors.InvalidArgumentf("unknown attribute %q", id)
	}
	c.attributes.Set(id, value)
	if id == AttributeCon {
		c.hp.RecomputeMax(c.level, value)
	}
	c.notify(Change{Kind: MutationAttributeDelta, Target: id, Before: before, After: value})
	return nil
}

// SetProficiency sets the rank of the named stat
func (c *Character) SetProficiency(name string, level ProficiencyLevel) error {
	if !level.Valid() {
		return errors.InvalidArgumentf("invalid proficiency level %s", level)
	}
	i, ok := c.ProfIndexByName(name)
	if !ok {
		return errors.NotFoundf("proficiency %q not found", name)
	}
	before := c.proficiencies[i].Proficiency
	c.proficiencies[i].Proficiency = level
	c.notify(Change{Kind: MutationProficiencySet, Target: name, Before: before.String(), After: level.String()})
	return nil
}

// ChangeHP applies damage or healing to the character
func (c *Character) ChangeHP(delta int) {
	c.changePool(c.hp, MutationHPDelta, delta)
}

// ChangeMountHP applies damage or healing to the mount
func (c *Character) ChangeMountHP(delta int) {
	c.changePool(c.mountHP, MutationMountHPDelta, delta)
}

// SetTempHP overwrites the character's temporary hit points
func (c *Character) SetTempHP(value int) {
	before := c.hp.TempHP()
	c.hp.SetTemp(value)
	c.notify(Change{Kind: MutationTempHPSet, Before: before, After: c.hp.TempHP()})
}

// SetMountTempHP overwrites the mount's temporary hit points
func (c *Character) SetMountTempHP(value int) {
	before := c.mountHP.TempHP()
	c.mountHP.SetTemp(value)
	c.notify(Change{Kind: MutationMountTempHPSet, Before: before, After: c.mountHP.TempHP()})
}

// ChangeShield applies damage or repair to the shield
func (c *Character) ChangeShield(delta int, ignoreHardness bool) {
	before := c.shield.CurrentHP()
	c.shield.Change(delta, ignoreHardness)
	c.notify(Change{Kind: MutationShieldDelta, Before: before, After: c.shield.CurrentHP()})
}

// ChangeShieldHardness shifts shield hardness
func (c *Character) ChangeShieldHardness(delta int) {
	before := c.shield.Hardness()
	c.shield.ChangeHardness(delta)
	c.notify(Change{Kind: MutationShieldHardnessDelta, Before: before, After: c.shield.Hardness()})
}

// ToggleShieldRaised flips the raised stance and returns the new state
func (c *Character) ToggleShieldRaised() bool {
	before := c.shield.Raised()
	c.shield.SetRaised(!before)
	c.notify(Change{Kind: MutationShieldRaiseToggle, Before: before, After: !before})
	return !before
}

func (c *Character) changePool(pool *HpInfo, kind MutationKind, delta int) {
	before := pool.CurrentHP()
	beforeTemp := pool.TempHP()
	pool.Change(delta)
	c.notify(Change{
		Kind:   kind,
		Before: before,
		After:  pool.CurrentHP(),
		Detail: map[string]int{"temp_before": beforeTemp, "temp_after": pool.TempHP()},
	})
}

func (c *Character) recomputeHP() error {
	con, ok := c.attributes.Get(AttributeCon)
	if !ok {
		return errors.Misconfigured(&MissingAttributeError{ID: AttributeCon, For: "hit points"},
			"missing constitution")
	}
	c.hp.RecomputeMax(c.level, con)
	c.mountHP.RecomputeMax(c.level, MountConstitution)
	return nil
}
