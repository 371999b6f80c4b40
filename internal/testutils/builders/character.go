// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
)

// CharacterBuilder provides a fluent interface for building test sheets.
// Steps that fail panic, since fixtures are fixed at compile time.
type CharacterBuilder struct {
	character *pf2e.Character
}

// NewCharacterBuilder starts from the default sheet
func NewCharacterBuilder() *CharacterBuilder {
	c := pf2e.NewCharacter("Ketra")
	c.ID = "char-test-123"
	c.PlayerID = "player-test-123"
	return &CharacterBuilder{character: c}
}

// WithID sets the sheet ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.character.ID = id
	return b
}

// WithPlayerID sets the owning player
func (b *CharacterBuilder) WithPlayerID(playerID string) *CharacterBuilder {
	b.character.PlayerID = playerID
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = name
	return b
}

// WithLevel sets the level, recomputing hit points
func (b *CharacterBuilder) WithLevel(level int) *CharacterBuilder {
	must(b.character.SetLevel(level))
	return b
}

// WithAttribute sets one attribute
func (b *CharacterBuilder) WithAttribute(id string, value int) *CharacterBuilder {
	must(b.character.SetAttribute(id, value))
	return b
}

// WithProficiency sets the rank of a named stat
func (b *CharacterBuilder) WithProficiency(name string, level pf2e.ProficiencyLevel) *CharacterBuilder {
	must(b.character.SetProficiency(name, level))
	return b
}

// WithTactics adds unselected tactics
func (b *CharacterBuilder) WithTactics(names ...string) *CharacterBuilder {
	for _, name := range names {
		b.character.Tactics = append(b.character.Tactics, pf2e.Tactic{Name: name})
	}
	return b
}

// WithSelectedTactics adds selected tactics
func (b *CharacterBuilder) WithSelectedTactics(names ...string) *CharacterBuilder {
	for _, name := range names {
		b.character.Tactics = append(b.character.Tactics, pf2e.Tactic{Name: name, Selected: true})
	}
	return b
}

// WithGear adds owned items
func (b *CharacterBuilder) WithGear(items ...pf2e.GearItem) *CharacterBuilder {
	b.character.Gear = append(b.character.Gear, items...)
	return b
}

// Build returns the computed character
func (b *CharacterBuilder) Build() *pf2e.Character {
	return b.character
}

// BuildSimple returns the persisted record
func (b *CharacterBuilder) BuildSimple() *pf2e.SimpleCharacter {
	return pf2e.ToSimple(b.character)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
