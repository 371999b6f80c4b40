package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements the character sheet gRPC service
type Handler struct {
	characterService character.Service
}

var _ CharacterSheetServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

// CreateCharacter creates a default sheet
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CreateCharacterRequest
	if err := UnmarshalStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}
	if in.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	output, err := h.characterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		PlayerID: in.PlayerID,
		Name:     in.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(NewCharacterView(output.Character))
}

// GetCharacter loads a sheet with its derived values
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := characterID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{CharacterID: id})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(NewCharacterView(output.Character))
}

// ListCharacters loads a player's sheets
func (h *Handler) ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListCharactersRequest
	if err := UnmarshalStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}

	output, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{PlayerID: in.PlayerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &ListCharactersResponse{Characters: make([]*CharacterView, 0, len(output.Characters))}
	for _, c := range output.Characters {
		resp.Characters = append(resp.Characters, NewCharacterView(c))
	}
	return respond(resp)
}

// DeleteCharacter removes a sheet
func (h *Handler) DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := characterID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{CharacterID: id}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(Empty{})
}

// ImportCharacter stores a persisted record
func (h *Handler) ImportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ImportCharacterRequest
	if err := UnmarshalStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if len(in.Record) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("record is required"))
	}

	record, err := pf2e.DecodeSimpleCharacter(in.Record)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.characterService.ImportCharacter(ctx, &character.ImportCharacterInput{
		PlayerID:  in.PlayerID,
		Record:    record,
		Overwrite: in.Overwrite,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(NewCharacterView(output.Character))
}

// ExportCharacter returns the persisted record of a sheet
func (h *Handler) ExportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := characterID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.characterService.ExportCharacter(ctx, &character.ExportCharacterInput{CharacterID: id})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ExportCharacterResponse{Record: output.Record})
}

// ApplyMutation applies a batch of edits to a sheet
func (h *Handler) ApplyMutation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ApplyMutationRequest
	if err := UnmarshalStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.CharacterID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("character_id is required"))
	}
	if len(in.Mutations) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("mutations are required"))
	}

	output, err := h.characterService.ApplyMutation(ctx, &character.ApplyMutationInput{
		CharacterID: in.CharacterID,
		Mutations:   in.Mutations,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ApplyMutationResponse{
		Character: NewCharacterView(output.Character),
		Changes:   newChangeViews(output.Changes),
	})
}

func characterID(req *structpb.Struct) (string, error) {
	var in CharacterRequest
	if err := UnmarshalStruct(req, &in); err != nil {
		return "", err
	}
	if in.CharacterID == "" {
		return "", errors.InvalidArgument("character_id is required")
	}
	return in.CharacterID, nil
}

func respond(v any) (*structpb.Struct, error) {
	out, err := MarshalStruct(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
