// Package character implements the character sheet orchestrator: it loads
// sheets from storage, applies edits through the rules core, saves them
// back and announces what changed on the event bus.
package character

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	IDGenerator   idgen.Generator
	// EventBus receives lifecycle and change events; a private bus is used when nil
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	idGenerator   idgen.Generator
	eventBus      events.EventBus

	// edits to one sheet are serialized; the rules core has no locking
	locks sync.Map
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		idGenerator:   cfg.IDGenerator,
		eventBus:      bus,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// CreateCharacter stores a new default sheet
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *character.CreateCharacterInput) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	c := pf2e.NewCharacter(input.Name)
	c.ID = o.idGenerator.Generate()
	c.PlayerID = input.PlayerID

	if _, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: pf2e.ToSimple(c)}); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", c.ID,
		"player_id", c.PlayerID)
	o.publish(ctx, character.EventCharacterCreated, c, nil)

	return &character.CreateCharacterOutput{Character: c}, nil
}

// GetCharacter loads a sheet
func (o *Orchestrator) GetCharacter(ctx context.Context, input *character.GetCharacterInput) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.GetCharacterOutput{Character: c}, nil
}

// ListCharacters loads every sheet a player owns
func (o *Orchestrator) ListCharacters(ctx context.Context, input *character.ListCharactersInput) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	output, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	characters := make([]*pf2e.Character, 0, len(output.Characters))
	for _, record := range output.Characters {
		c, err := pf2e.ToCharacter(record)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load character %s", record.ID)
		}
		characters = append(characters, c)
	}

	return &character.ListCharactersOutput{Characters: characters}, nil
}

// DeleteCharacter removes a sheet
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *character.DeleteCharacterInput) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	slog.InfoContext(ctx, "character deleted", "character_id", input.CharacterID)
	o.publish(ctx, character.EventCharacterDeleted, &pf2e.Character{ID: input.CharacterID}, nil)

	return &character.DeleteCharacterOutput{}, nil
}

// ImportCharacter stores an externally supplied record
func (o *Orchestrator) ImportCharacter(ctx context.Context, input *character.ImportCharacterInput) (*character.ImportCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Record == nil {
		return nil, errors.InvalidArgument("record is required")
	}

	c, err := pf2e.ToCharacter(input.Record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load imported record")
	}
	if c.ID == "" {
		c.ID = o.idGenerator.Generate()
	}
	if input.PlayerID != "" {
		c.PlayerID = input.PlayerID
	}
	if c.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	unlock := o.lock(c.ID)
	defer unlock()

	record := pf2e.ToSimple(c)
	_, err = o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: record})
	if errors.IsAlreadyExists(err) && input.Overwrite {
		_, err = o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: record})
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to import character")
	}

	slog.InfoContext(ctx, "character imported",
		"character_id", c.ID,
		"player_id", c.PlayerID,
		"overwrite", input.Overwrite)
	o.publish(ctx, character.EventCharacterCreated, c, nil)

	return &character.ImportCharacterOutput{Character: c}, nil
}

// ExportCharacter returns the persisted record of a sheet
func (o *Orchestrator) ExportCharacter(ctx context.Context, input *character.ExportCharacterInput) (*character.ExportCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.ExportCharacterOutput{Record: pf2e.ToSimple(c)}, nil
}

// ApplyMutation applies a batch of edits and saves the result
func (o *Orchestrator) ApplyMutation(ctx context.Context, input *character.ApplyMutationInput) (*character.ApplyMutationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if len(input.Mutations) == 0 {
		return nil, errors.InvalidArgument("at least one mutation is required")
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	c, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	var changes []pf2e.Change
	unsubscribe := c.Subscribe(func(_ *pf2e.Character, change pf2e.Change) {
		changes = append(changes, change)
	})
	for i, m := range input.Mutations {
		if err := checkTacticCap(c, m); err != nil {
			unsubscribe()
			return nil, err
		}
		if err := c.Apply(m); err != nil {
			unsubscribe()
			return nil, errors.Wrapf(err, "mutation %d (%s) rejected", i, m.Kind).
				WithMeta("mutation_index", i)
		}
	}
	unsubscribe()

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: pf2e.ToSimple(c)}); err != nil {
		return nil, errors.Wrapf(err, "failed to save character")
	}

	slog.DebugContext(ctx, "character mutated",
		"character_id", c.ID,
		"mutations", len(input.Mutations),
		"changes", len(changes))
	for _, change := range changes {
		o.publish(ctx, character.EventCharacterChanged, c, &change)
	}

	return &character.ApplyMutationOutput{Character: c, Changes: changes}, nil
}

// checkTacticCap refuses to select a tactic beyond the cap; deselecting
// is always allowed
func checkTacticCap(c *pf2e.Character, m pf2e.Mutation) error {
	if m.Kind != pf2e.MutationTacticToggle {
		return nil
	}
	for _, t := range c.Tactics {
		if t.Name == m.Target && !t.Selected && c.SelectedTactics() >= character.MaxSelectedTactics {
			return errors.FailedPreconditionf("at most %d tactics may be selected", character.MaxSelectedTactics).
				WithMeta("tactic", m.Target)
		}
	}
	return nil
}

func (o *Orchestrator) load(ctx context.Context, id string) (*pf2e.Character, error) {
	output, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character")
	}

	c, err := pf2e.ToCharacter(output.Character)
	if err != nil {
		slog.ErrorContext(ctx, "stored character is malformed",
			"character_id", id,
			"error", err.Error())
		return nil, errors.Wrapf(err, "failed to load character %s", id)
	}
	return c, nil
}

func (o *Orchestrator) lock(id string) func() {
	value, _ := o.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
