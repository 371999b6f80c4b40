package pf2e_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

func TestGoverningAttribute(t *testing.T) {
	testCases := []struct {
		name     string
		profType pf2e.ProficiencyType
		statName string
		expected string
	}{
		{"fortitude", pf2e.ProficiencySave, "Fortitude", pf2e.AttributeCon},
		{"reflex", pf2e.ProficiencySave, "Reflex", pf2e.AttributeDex},
		{"will", pf2e.ProficiencySave, "Will", pf2e.AttributeWis},
		{"athletics", pf2e.ProficiencySkill, "Athletics", pf2e.AttributeStr},
		{"diplomacy", pf2e.ProficiencySkill, "Diplomacy", pf2e.AttributeCha},
		{"thievery", pf2e.ProficiencySkill, "Thievery", pf2e.AttributeDex},
		{"lore is freeform", pf2e.ProficiencyLore, "Warfare Lore", pf2e.AttributeInt},
		{"armor ignores name", pf2e.ProficiencyArmor, "Medium", pf2e.AttributeDex},
		{"weapon ignores name", pf2e.ProficiencyWeapon, "Martial", pf2e.AttributeStr},
		{"spell uses key", pf2e.ProficiencySpell, "Spell", pf2e.KeyAttribute},
		{"class dc uses key", pf2e.ProficiencyClassDC, "Class DC", pf2e.KeyAttribute},
		{"perception", pf2e.ProficiencyPerception, "Perception", pf2e.AttributeWis},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attr, err := pf2e.GoverningAttribute(tc.profType, tc.statName)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, attr)
		})
	}
}

func TestVocabularySizes(t *testing.T) {
	assert.Len(t, pf2e.SkillNames(), 16)
	assert.Equal(t, []string{"Fortitude", "Reflex", "Will"}, pf2e.SaveNames())
}

func TestClosedVocabularyRejection(t *testing.T) {
	_, err := pf2e.NewCalculatedStat(pf2e.ProficiencySkill, "Juggling", pf2e.Trained)
	require.Error(t, err)
	assert.True(t, errors.IsMisconfigured(err))

	var unknown *pf2e.UnknownNameError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Juggling", unknown.Name)
	assert.Equal(t, pf2e.ProficiencySkill, unknown.Type)

	lore, err := pf2e.NewCalculatedStat(pf2e.ProficiencyLore, "Juggling", pf2e.Trained)
	require.NoError(t, err)
	assert.Equal(t, pf2e.AttributeInt, lore.Attribute)
}

func TestUnknownSaveIsRejected(t *testing.T) {
	_, err := pf2e.GoverningAttribute(pf2e.ProficiencySave, "Luck")
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestUnknownNameSuggestion(t *testing.T) {
	_, err := pf2e.GoverningAttribute(pf2e.ProficiencySkill, "Athletcs")
	require.Error(t, err)

	var unknown *pf2e.UnknownNameError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Athletics", unknown.Suggestion)
	assert.Contains(t, unknown.Error(), `did you mean "Athletics"`)
}

func TestNoSuggestionForDistantNames(t *testing.T) {
	_, err := pf2e.GoverningAttribute(pf2e.ProficiencySkill, "Basket Weaving")
	var unknown *pf2e.UnknownNameError
	require.True(t, errors.As(err, &unknown))
	assert.Empty(t, unknown.Suggestion)
}

func TestInvalidProficiencyType(t *testing.T) {
	_, err := pf2e.GoverningAttribute(pf2e.ProficiencyType("Tool"), "Hammer")
	require.Error(t, err)
	assert.False(t, pf2e.ProficiencyType("Tool").Valid())
	for _, pt := range pf2e.ProficiencyTypes() {
		assert.True(t, pt.Valid(), string(pt))
	}
}
