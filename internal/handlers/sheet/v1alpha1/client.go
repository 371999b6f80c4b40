package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Client calls the character sheet service. Errors returned by the
// server are converted back to *errors.Error.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on an established connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// CreateCharacter creates a default sheet
func (c *Client) CreateCharacter(ctx context.Context, req *CreateCharacterRequest) (*CharacterView, error) {
	out := &CharacterView{}
	if err := c.invoke(ctx, CreateCharacterFullMethodName, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCharacter loads a sheet
func (c *Client) GetCharacter(ctx context.Context, characterID string) (*CharacterView, error) {
	out := &CharacterView{}
	if err := c.invoke(ctx, GetCharacterFullMethodName, &CharacterRequest{CharacterID: characterID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCharacters loads a player's sheets
func (c *Client) ListCharacters(ctx context.Context, playerID string) ([]*CharacterView, error) {
	out := &ListCharactersResponse{}
	if err := c.invoke(ctx, ListCharactersFullMethodName, &ListCharactersRequest{PlayerID: playerID}, out); err != nil {
		return nil, err
	}
	return out.Characters, nil
}

// DeleteCharacter removes a sheet
func (c *Client) DeleteCharacter(ctx context.Context, characterID string) error {
	return c.invoke(ctx, DeleteCharacterFullMethodName, &CharacterRequest{CharacterID: characterID}, &Empty{})
}

// ImportCharacter stores a persisted record
func (c *Client) ImportCharacter(
	ctx context.Context,
	record *pf2e.SimpleCharacter,
	playerID string,
	overwrite bool,
) (*CharacterView, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode record")
	}

	out := &CharacterView{}
	req := &ImportCharacterRequest{PlayerID: playerID, Overwrite: overwrite, Record: data}
	if err := c.invoke(ctx, ImportCharacterFullMethodName, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportCharacter returns the persisted record of a sheet
func (c *Client) ExportCharacter(ctx context.Context, characterID string) (*pf2e.SimpleCharacter, error) {
	var out struct {
		Record json.RawMessage `json:"record"`
	}
	if err := c.invoke(ctx, ExportCharacterFullMethodName, &CharacterRequest{CharacterID: characterID}, &out); err != nil {
		return nil, err
	}
	return pf2e.DecodeSimpleCharacter(out.Record)
}

// ApplyMutation applies a batch of edits to a sheet
func (c *Client) ApplyMutation(ctx context.Context, req *ApplyMutationRequest) (*ApplyMutationResponse, error) {
	out := &ApplyMutationResponse{}
	if err := c.invoke(ctx, ApplyMutationFullMethodName, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	in, err := MarshalStruct(req)
	if err != nil {
		return err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return errors.FromGRPCError(err)
	}

	return UnmarshalStruct(out, resp)
}
