package pf2e

// Starting values for a new sheet
const (
	DefaultBackground   = "Squire"
	DefaultClass        = "Commander"
	DefaultKeyAttribute = AttributeInt

	DefaultAncestryHP      = 8
	DefaultClassHP         = 8
	DefaultMountAncestryHP = 6
	DefaultMountClassHP    = 6

	DefaultShieldHP       = 20
	DefaultShieldHardness = 5
)

// Names of the non-vocabulary stats on the default sheet
const (
	PerceptionName = "Perception"
	SpellAttack    = "Spell"
	ClassDCName    = "Class DC"
)

var (
	defaultArmorNames  = []string{"Unarmored", "Light", ArmorProficiencyName, "Heavy"}
	defaultWeaponNames = []string{"Unarmed", "Simple", "Martial", "Advanced"}
)

// DefaultProficiencies returns the untrained stat list of a new sheet:
// saves, skills, perception, armor, weapons, spell attack and class DC.
func DefaultProficiencies() []CalculatedStat {
	var stats []CalculatedStat
	add := func(t ProficiencyType, names ...string) {
		for _, name := range names {
			attr, _ := GoverningAttribute(t, name) // vocabulary names cannot fail
			stats = append(stats, CalculatedStat{Name: name, Type: t, Attribute: attr, Proficiency: Untrained})
		}
	}
	add(ProficiencySave, "Fortitude", "Reflex", "Will")
	add(ProficiencySkill, SkillNames()...)
	add(ProficiencyPerception, PerceptionName)
	add(ProficiencyArmor, defaultArmorNames...)
	add(ProficiencyWeapon, defaultWeaponNames...)
	add(ProficiencySpell, SpellAttack)
	add(ProficiencyClassDC, ClassDCName)
	return stats
}

// DefaultHP returns the starting rider pool
func DefaultHP(level, con int) *HpInfo {
	return NewHpInfo(DefaultAncestryHP, DefaultClassHP, level, con)
}

// DefaultMountHP returns the starting mount pool
func DefaultMountHP(level int) *HpInfo {
	return NewHpInfo(DefaultMountAncestryHP, DefaultMountClassHP, level, MountConstitution)
}

// DefaultShield returns the starting steel shield
func DefaultShield() *ShieldInfo {
	return NewShieldInfo(DefaultShieldHP, DefaultShieldHardness)
}

// NewCharacter creates a level 1 sheet with zeroed attributes
func NewCharacter(name string) *Character {
	return &Character{
		Name:                 name,
		Background:           DefaultBackground,
		Class:                DefaultClass,
		KeyAttribute:         DefaultKeyAttribute,
		Feats:                []string{},
		Conditions:           []string{},
		Gear:                 []GearItem{},
		Tactics:              []Tactic{},
		ProficiencyOverrides: map[string]string{},
		Bonuses:              map[string]int{},
		Features:             map[string]bool{},
		level:                1,
		attributes:           NewAttributes(),
		proficiencies:        DefaultProficiencies(),
		hp:                   DefaultHP(1, 0),
		mountHP:              DefaultMountHP(1),
		shield:               DefaultShield(),
	}
}
