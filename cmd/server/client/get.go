package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var characterID string

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a character sheet with its derived values",
	RunE:  runGet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a character sheet",
	RunE:  runDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{getCmd, deleteCmd} {
		cmd.Flags().StringVar(&characterID, "character-id", "", "Character ID (required)")
		_ = cmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
	}
}

func runGet(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	view, err := client.GetCharacter(ctx, characterID)
	if err != nil {
		return fmt.Errorf("failed to get character: %w", err)
	}

	printView(os.Stdout, view)
	return nil
}

func runDelete(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	if err := client.DeleteCharacter(ctx, characterID); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	fmt.Printf("Deleted %s\n", characterID)
	return nil
}
