package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/sheetio"
)

var (
	sheetFile       string
	importPlayerID  string
	importOverwrite bool
	exportID        string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a character sheet from a JSON or YAML file",
	Long: `Store a character sheet read from a .json, .yaml or .yml file.

Records written before hit points and shields were tracked are upgraded.`,
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a character sheet to a JSON or YAML file",
	RunE:  runExport,
}

func init() {
	importCmd.Flags().StringVar(&sheetFile, "file", "", "Sheet file (required)")
	importCmd.Flags().StringVar(&importPlayerID, "player-id", "", "Owner to assign, replacing the file's")
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace an existing sheet with the same ID")
	_ = importCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	exportCmd.Flags().StringVar(&exportID, "character-id", "", "Character ID (required)")
	exportCmd.Flags().StringVar(&sheetFile, "file", "", "Sheet file (required)")
	_ = exportCmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
	_ = exportCmd.MarkFlagRequired("file")         // nolint:errcheck // safe to ignore in init
}

func runImport(_ *cobra.Command, _ []string) error {
	record, err := sheetio.ReadFile(sheetFile)
	if err != nil {
		return fmt.Errorf("failed to read sheet: %w", err)
	}

	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	view, err := client.ImportCharacter(ctx, record, importPlayerID, importOverwrite)
	if err != nil {
		return fmt.Errorf("failed to import character: %w", err)
	}

	printView(os.Stdout, view)
	return nil
}

func runExport(_ *cobra.Command, _ []string) error {
	if _, err := sheetio.FormatFromPath(sheetFile); err != nil {
		return err
	}

	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	record, err := client.ExportCharacter(ctx, exportID)
	if err != nil {
		return fmt.Errorf("failed to export character: %w", err)
	}

	if err := sheetio.WriteFile(sheetFile, record); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}

	fmt.Printf("Wrote %s to %s\n", record.ID, sheetFile)
	return nil
}
