// Package pf2e implements the character rules engine: ability scores,
// proficiency-driven bonuses, hit point and shield pools, armor class, and
// the mapping between the persisted sheet and the computed character.
package pf2e

// Attribute ids. The declaration order is the persisted position order.
const (
	AttributeStr = "str"
	AttributeDex = "dex"
	AttributeCon = "con"
	AttributeInt = "int"
	AttributeWis = "wis"
	AttributeCha = "cha"
)

// AttributeCount is the number of ability scores every character carries
const AttributeCount = 6

var attributeLayout = [AttributeCount]struct {
	id   string
	abbr string
}{
	{AttributeStr, "STR"},
	{AttributeDex, "DEX"},
	{AttributeCon, "CON"},
	{AttributeInt, "INT"},
	{AttributeWis, "WIS"},
	{AttributeCha, "CHA"},
}

// Attribute is one named ability score
type Attribute struct {
	ID    string
	Abbr  string
	Value int
}

// Attributes holds the six ability scores in persisted order.
// The set of ids is fixed at construction; only values change.
type Attributes struct {
	entries [AttributeCount]Attribute
}

// NewAttributes returns the six attributes with zero values
func NewAttributes() Attributes {
	var a Attributes
	for i, layout := range attributeLayout {
		a.entries[i] = Attribute{ID: layout.id, Abbr: layout.abbr}
	}
	return a
}

// AttributesFromList builds the attribute set from position-encoded values
func AttributesFromList(values []int) (Attributes, error) {
	if len(values) != AttributeCount {
		return Attributes{}, &AttributeListError{Got: len(values)}
	}
	a := NewAttributes()
	for i, v := range values {
		a.entries[i].Value = v
	}
	return a, nil
}

// Get returns the value for id. Lookups are exact and case-sensitive.
func (a Attributes) Get(id string) (int, bool) {
	for _, entry := range a.entries {
		if entry.ID == id {
			return entry.Value, true
		}
	}
	return 0, false
}

// Set assigns the value for id, reporting false when id is unknown
func (a *Attributes) Set(id string, value int) bool {
	for i := range a.entries {
		if a.entries[i].ID == id {
			a.entries[i].Value = value
			return true
		}
	}
	return false
}

// List returns the values in persisted position order
func (a Attributes) List() []int {
	values := make([]int, AttributeCount)
	for i, entry := range a.entries {
		values[i] = entry.Value
	}
	return values
}

// All returns a copy of every attribute in persisted order
func (a Attributes) All() []Attribute {
	out := make([]Attribute, AttributeCount)
	copy(out, a.entries[:])
	return out
}

// IsAttributeID reports whether id names one of the six attributes
func IsAttributeID(id string) bool {
	for _, layout := range attributeLayout {
		if layout.id == id {
			return true
		}
	}
	return false
}
