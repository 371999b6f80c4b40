package client

import (
	"fmt"
	"io"
	"sort"

	"github.com/KirkDiggler/rpg-sheet/internal/handlers/sheet/v1alpha1"
)

// printView writes a readable summary of a sheet
func printView(w io.Writer, view *v1alpha1.CharacterView) {
	c := view.Character
	fmt.Fprintf(w, "Character ID: %s\n", c.ID)
	fmt.Fprintf(w, "Player ID: %s\n", c.PlayerID)
	fmt.Fprintf(w, "Name: %s (level %d %s, %s)\n", c.Name, c.Level, c.Class, c.Background)
	if c.HP != nil {
		fmt.Fprintf(w, "HP: %d/%d", c.HP.CurrentHP(), c.HP.MaxHP())
		if c.HP.TempHP() > 0 {
			fmt.Fprintf(w, " (+%d temp)", c.HP.TempHP())
		}
		fmt.Fprintln(w)
	}
	if c.MountHP != nil {
		fmt.Fprintf(w, "Mount HP: %d/%d\n", c.MountHP.CurrentHP(), c.MountHP.MaxHP())
	}
	if c.Shield != nil {
		state := ""
		if view.Derived != nil && view.Derived.ShieldBroken {
			state = " broken"
		}
		if c.Shield.Raised() {
			state += " raised"
		}
		fmt.Fprintf(w, "Shield: %d/%d hardness %d%s\n", c.Shield.CurrentHP(), c.Shield.MaxHP(), c.Shield.Hardness(), state)
	}

	d := view.Derived
	if d == nil {
		return
	}
	fmt.Fprintf(w, "AC: %d\n", d.ArmorClass)
	fmt.Fprintf(w, "Selected tactics: %d\n", d.SelectedTactics)

	fmt.Fprintf(w, "\nStats:\n")
	for _, name := range sortedKeys(d.Stats) {
		fmt.Fprintf(w, "  %-16s %+d\n", name, d.Stats[name])
	}
	if len(d.AttackBonuses) > 0 {
		fmt.Fprintf(w, "\nAttacks:\n")
		for _, name := range sortedKeys(d.AttackBonuses) {
			fmt.Fprintf(w, "  %-16s %+d\n", name, d.AttackBonuses[name])
		}
	}
	if len(d.Errors) > 0 {
		fmt.Fprintf(w, "\nProblems:\n")
		for _, name := range sortedKeys(d.Errors) {
			fmt.Fprintf(w, "  %s: %s\n", name, d.Errors[name])
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
