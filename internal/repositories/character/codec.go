package character

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// encodeRecord writes the record at the current schema version
func encodeRecord(record *pf2e.SimpleCharacter) ([]byte, error) {
	stamped := *record
	stamped.SchemaVersion = pf2e.CurrentSchemaVersion

	data, err := json.Marshal(&stamped)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}
	return data, nil
}

// sortByName orders listings by name, then ID
func sortByName(records []*pf2e.SimpleCharacter) {
	slices.SortFunc(records, func(a, b *pf2e.SimpleCharacter) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
