package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listPlayerID string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a player's character sheets",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listPlayerID, "player-id", "", "Player ID (required)")
	_ = listCmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init
}

func runList(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	views, err := client.ListCharacters(ctx, listPlayerID)
	if err != nil {
		return fmt.Errorf("failed to list characters: %w", err)
	}

	if len(views) == 0 {
		fmt.Println("No characters found")
		return nil
	}
	for _, view := range views {
		c := view.Character
		fmt.Printf("%s  %-20s level %d  HP %d/%d\n", c.ID, c.Name, c.Level, c.HP.CurrentHP(), c.HP.MaxHP())
	}
	return nil
}
