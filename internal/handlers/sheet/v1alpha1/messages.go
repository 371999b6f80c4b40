package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// CreateCharacterRequest asks for a new default sheet
type CreateCharacterRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// CharacterRequest addresses one sheet
type CharacterRequest struct {
	CharacterID string `json:"character_id"`
}

// ListCharactersRequest addresses the sheets of one player
type ListCharactersRequest struct {
	PlayerID string `json:"player_id"`
}

// ImportCharacterRequest carries a persisted record. Record is decoded
// with schema upgrade, so legacy records are accepted.
type ImportCharacterRequest struct {
	PlayerID  string          `json:"player_id,omitempty"`
	Overwrite bool            `json:"overwrite,omitempty"`
	Record    json.RawMessage `json:"record"`
}

// ApplyMutationRequest carries an ordered batch of edits
type ApplyMutationRequest struct {
	CharacterID string          `json:"character_id"`
	Mutations   []pf2e.Mutation `json:"mutations"`
}

// CharacterView is a sheet as returned to clients: the record plus the
// values derived from it
type CharacterView struct {
	Character *pf2e.SimpleCharacter `json:"character"`
	Derived   *DerivedStats         `json:"derived"`
}

// DerivedStats holds computed values. A value that cannot be computed
// because the sheet is misconfigured is reported in Errors under the same
// key instead.
type DerivedStats struct {
	ArmorClass      int               `json:"armor_class"`
	Stats           map[string]int    `json:"stats"`
	AttackBonuses   map[string]int    `json:"attack_bonuses,omitempty"`
	ShieldBroken    bool              `json:"shield_broken"`
	SelectedTactics int               `json:"selected_tactics"`
	Errors          map[string]string `json:"errors,omitempty"`
}

// ListCharactersResponse holds a player's sheets
type ListCharactersResponse struct {
	Characters []*CharacterView `json:"characters"`
}

// ExportCharacterResponse holds a persisted record
type ExportCharacterResponse struct {
	Record *pf2e.SimpleCharacter `json:"record"`
}

// ChangeView describes one applied mutation
type ChangeView struct {
	Kind   pf2e.MutationKind `json:"kind"`
	Target string            `json:"target,omitempty"`
	Before any               `json:"before,omitempty"`
	After  any               `json:"after,omitempty"`
	Detail map[string]int    `json:"detail,omitempty"`
}

// ApplyMutationResponse holds the edited sheet and what changed
type ApplyMutationResponse struct {
	Character *CharacterView `json:"character"`
	Changes   []ChangeView   `json:"changes"`
}

// Empty is the response of calls that return nothing
type Empty struct{}

// MarshalStruct encodes v through its JSON form
func MarshalStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	return out, nil
}

// UnmarshalStruct decodes a message into v through its JSON form
func UnmarshalStruct(in *structpb.Struct, v any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode message")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode message")
	}
	return nil
}

// NewCharacterView renders a character for clients
func NewCharacterView(c *pf2e.Character) *CharacterView {
	derived := &DerivedStats{
		Stats:           make(map[string]int),
		ShieldBroken:    c.Shield().Broken(),
		SelectedTactics: c.SelectedTactics(),
	}
	fail := func(key string, err error) {
		if derived.Errors == nil {
			derived.Errors = make(map[string]string)
		}
		derived.Errors[key] = err.Error()
	}

	if ac, err := c.CalculateAC(); err != nil {
		fail("armor_class", err)
	} else {
		derived.ArmorClass = ac
	}

	for _, stat := range c.Proficiencies() {
		total, err := c.StatTotal(stat.Name)
		if err != nil {
			fail(stat.Name, err)
			continue
		}
		derived.Stats[stat.Name] = total
	}

	for _, item := range c.Gear {
		if !item.Weapon {
			continue
		}
		bonus, err := c.AttackBonus(item.Name)
		if err != nil {
			fail(item.Name, err)
			continue
		}
		if derived.AttackBonuses == nil {
			derived.AttackBonuses = make(map[string]int)
		}
		derived.AttackBonuses[item.Name] = bonus
	}

	return &CharacterView{
		Character: pf2e.ToSimple(c),
		Derived:   derived,
	}
}

func newChangeViews(changes []pf2e.Change) []ChangeView {
	views := make([]ChangeView, 0, len(changes))
	for _, change := range changes {
		views = append(views, ChangeView{
			Kind:   change.Kind,
			Target: change.Target,
			Before: change.Before,
			After:  change.After,
			Detail: change.Detail,
		})
	}
	return views
}
