// Package character provides the interface for character sheet persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-sheet/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Repository defines the interface for character sheet persistence. Stores
// hold the persisted record only; nothing derived is written.
type Repository interface {
	// Create stores a new sheet
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a sheet with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a sheet by ID, upgrading older schema versions
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the sheet doesn't exist
	// Returns a misconfigured FailedPrecondition for malformed records
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing sheet
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the sheet doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a sheet by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the sheet doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all sheets owned by a player
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// CreateInput defines the input for creating a sheet
type CreateInput struct {
	Character *pf2e.SimpleCharacter
}

// CreateOutput defines the output for creating a sheet
type CreateOutput struct {
	Character *pf2e.SimpleCharacter
}

// GetInput defines the input for getting a sheet
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a sheet
type GetOutput struct {
	Character *pf2e.SimpleCharacter
}

// UpdateInput defines the input for updating a sheet
type UpdateInput struct {
	Character *pf2e.SimpleCharacter
}

// UpdateOutput defines the output for updating a sheet
type UpdateOutput struct {
	Character *pf2e.SimpleCharacter
}

// DeleteInput defines the input for deleting a sheet
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a sheet
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing sheets by player
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing sheets by player
type ListByPlayerIDOutput struct {
	Characters []*pf2e.SimpleCharacter
}

const (
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
)

func validateRecord(record *pf2e.SimpleCharacter) error {
	if record == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if record.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if err := record.Validate(); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid character record")
	}
	return nil
}
