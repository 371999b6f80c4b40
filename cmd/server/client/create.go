package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/handlers/sheet/v1alpha1"
)

var (
	playerID      string
	characterName string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a default character sheet",
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	createCmd.Flags().StringVar(&characterName, "name", "", "Character name (required)")
	_ = createCmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init
	_ = createCmd.MarkFlagRequired("name")      // nolint:errcheck // safe to ignore in init
}

func runCreate(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	view, err := client.CreateCharacter(ctx, &v1alpha1.CreateCharacterRequest{
		PlayerID: playerID,
		Name:     characterName,
	})
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	printView(os.Stdout, view)
	return nil
}
