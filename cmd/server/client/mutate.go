package client

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/handlers/sheet/v1alpha1"
)

var (
	mutateID     string
	mutateKind   string
	mutateTarget string
	mutateValue  string
	mutateText   string
	mutateFlag   bool
)

var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Apply one edit to a character sheet",
	Long: `Apply one edit to a character sheet and print the result.

Kinds: ` + kindList(),
	RunE: runMutate,
}

func init() {
	mutateCmd.Flags().StringVar(&mutateID, "character-id", "", "Character ID (required)")
	mutateCmd.Flags().StringVar(&mutateKind, "kind", "", "Mutation kind (required)")
	mutateCmd.Flags().StringVar(&mutateTarget, "target", "", "Attribute, stat, field, flag, tactic, feat or condition")
	mutateCmd.Flags().StringVar(&mutateValue, "value", "", "Numeric amount or setting")
	mutateCmd.Flags().StringVar(&mutateText, "text", "", "Text value, proficiency label or attribute id")
	mutateCmd.Flags().BoolVar(&mutateFlag, "flag", false, "Boolean value; ignores hardness for shield_delta")
	_ = mutateCmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
	_ = mutateCmd.MarkFlagRequired("kind")         // nolint:errcheck // safe to ignore in init
}

func kindList() string {
	kinds := pf2e.MutationKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// parseValue reads the numeric flag; an empty flag means zero
func parseValue(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("value %q is not a whole number", raw)
	}
	return value, nil
}

func runMutate(_ *cobra.Command, _ []string) error {
	value, err := parseValue(mutateValue)
	if err != nil {
		return err
	}

	client, cleanup, err := createSheetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.ApplyMutation(ctx, &v1alpha1.ApplyMutationRequest{
		CharacterID: mutateID,
		Mutations: []pf2e.Mutation{{
			Kind:   pf2e.MutationKind(mutateKind),
			Target: mutateTarget,
			Value:  value,
			Text:   mutateText,
			Flag:   mutateFlag,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to apply mutation: %w", err)
	}

	for _, change := range resp.Changes {
		fmt.Printf("%s %s: %v -> %v\n", change.Kind, change.Target, change.Before, change.After)
	}
	fmt.Println()
	printView(os.Stdout, resp.Character)
	return nil
}
