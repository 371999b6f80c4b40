package client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/handlers/sheet/v1alpha1"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils/builders"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "empty is zero", raw: "", want: 0},
		{name: "negative", raw: "-7", want: -7},
		{name: "padded", raw: " 3 ", want: 3},
		{name: "not a number", raw: "three", wantErr: true},
		{name: "fraction", raw: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "not a whole number")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindListNamesEveryKind(t *testing.T) {
	list := kindList()
	for _, kind := range pf2e.MutationKinds() {
		assert.Contains(t, list, string(kind))
	}
}

func TestPrintView(t *testing.T) {
	c := builders.NewCharacterBuilder().
		WithGear(pf2e.GearItem{Name: "Lance", Weapon: true, Proficiency: "Exotic"}).
		Build()

	var out bytes.Buffer
	printView(&out, v1alpha1.NewCharacterView(c))

	text := out.String()
	assert.Contains(t, text, "Name: Ketra")
	assert.Contains(t, text, "HP: 16/16")
	assert.Contains(t, text, "AC: 14")
	assert.Contains(t, text, "Athletics")
	assert.Contains(t, text, "Problems:")
	assert.Contains(t, text, "Lance")
}
