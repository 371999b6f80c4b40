package sheetio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/sheetio"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils/builders"
)

func sampleRecord() *pf2e.SimpleCharacter {
	record := builders.NewCharacterBuilder().
		WithName("123").
		WithLevel(2).
		WithAttribute(pf2e.AttributeStr, 3).
		WithProficiency("Athletics", pf2e.Trained).
		WithSelectedTactics("Strike Hard").
		BuildSimple()
	record.Text = "rides a grey mare"
	return record
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want sheetio.Format
	}{
		{"ketra.json", sheetio.FormatJSON},
		{"ketra.YAML", sheetio.FormatYAML},
		{"dir/ketra.yml", sheetio.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := sheetio.FormatFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := sheetio.FormatFromPath("ketra.toml")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []sheetio.Format{sheetio.FormatJSON, sheetio.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			record := sampleRecord()

			data, err := sheetio.Encode(record, format)
			require.NoError(t, err)

			decoded, err := sheetio.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, record, decoded)
		})
	}
}

func TestYAMLLayout(t *testing.T) {
	data, err := sheetio.Encode(sampleRecord(), sheetio.FormatYAML)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "schema_version: 2\n"), "keys keep JSON order:\n%s", text)
	assert.Contains(t, text, "- [Athletics, Skill, Trained]")
	assert.Contains(t, text, `name: "123"`)
}

func TestDecodeYAMLLegacy(t *testing.T) {
	legacy := `
name: Old Ketra
level: 3
attributes: [1, 0, 2, 0, 0, 1]
background: Squire
class: Commander
proficiencies:
  - [Athletics, Skill, Trained]
`
	record, err := sheetio.Decode([]byte(legacy), sheetio.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, pf2e.CurrentSchemaVersion, record.SchemaVersion)
	assert.Equal(t, 38, record.HP.MaxHP())
}

func TestDecodeRejects(t *testing.T) {
	_, err := sheetio.Decode([]byte("name: [unclosed"), sheetio.FormatYAML)
	assert.True(t, errors.IsMisconfigured(err))

	_, err = sheetio.Decode([]byte("{}"), sheetio.Format("toml"))
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = sheetio.Encode(nil, sheetio.FormatJSON)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	record := sampleRecord()

	for _, name := range []string{"ketra.json", "ketra.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, sheetio.WriteFile(path, record))

		got, err := sheetio.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, record, got)
	}

	_, err := sheetio.ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.IsInvalidArgument(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"schema_version": 9}`), 0o600))
	_, err = sheetio.ReadFile(filepath.Join(dir, "bad.json"))
	assert.True(t, errors.IsFailedPrecondition(err))
}
