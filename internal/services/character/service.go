// Package character defines the interface for character sheet operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-sheet/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
)

// Event types published on the event bus
const (
	EventCharacterCreated = "character.created"
	EventCharacterChanged = "character.changed"
	EventCharacterDeleted = "character.deleted"
)

// MaxSelectedTactics is how many tactics a commander may have selected
const MaxSelectedTactics = 2

// Service defines the interface for character sheet operations
type Service interface {
	// Lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Persisted record exchange
	ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error)
	ExportCharacter(ctx context.Context, input *ExportCharacterInput) (*ExportCharacterOutput, error)

	// Editing
	ApplyMutation(ctx context.Context, input *ApplyMutationInput) (*ApplyMutationOutput, error)
}

// CreateCharacterInput defines the request for creating a default sheet
type CreateCharacterInput struct {
	PlayerID string
	Name     string
}

// CreateCharacterOutput defines the response for creating a sheet
type CreateCharacterOutput struct {
	Character *pf2e.Character
}

// GetCharacterInput defines the request for loading a sheet
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for loading a sheet
type GetCharacterOutput struct {
	Character *pf2e.Character
}

// ListCharactersInput defines the request for listing a player's sheets
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing sheets
type ListCharactersOutput struct {
	Characters []*pf2e.Character
}

// DeleteCharacterInput defines the request for deleting a sheet
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a sheet
type DeleteCharacterOutput struct{}

// ImportCharacterInput defines the request for storing an external record.
// An empty record ID gets a generated one; PlayerID, when set, replaces
// the record's owner.
type ImportCharacterInput struct {
	PlayerID  string
	Record    *pf2e.SimpleCharacter
	Overwrite bool
}

// ImportCharacterOutput defines the response for importing a record
type ImportCharacterOutput struct {
	Character *pf2e.Character
}

// ExportCharacterInput defines the request for reading a persisted record
type ExportCharacterInput struct {
	CharacterID string
}

// ExportCharacterOutput defines the response for exporting a record
type ExportCharacterOutput struct {
	Record *pf2e.SimpleCharacter
}

// ApplyMutationInput defines the request for editing a sheet. The
// mutations are applied in order and saved together; if one fails none
// are saved.
type ApplyMutationInput struct {
	CharacterID string
	Mutations   []pf2e.Mutation
}

// ApplyMutationOutput defines the response for editing a sheet
type ApplyMutationOutput struct {
	Character *pf2e.Character
	Changes   []pf2e.Change
}
