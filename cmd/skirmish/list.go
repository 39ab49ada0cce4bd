package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available encounters",
	Long: `Shows every encounter: the built-in ones plus YAML files found in
~/.skirmish/encounters and ./encounters.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	entries, err := config.ListEncounters()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No encounters available.")
		return nil
	}

	fmt.Println("Available encounters:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, e := range entries {
		maxIDLen = max(maxIDLen, len(e.ID))
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Source")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "----", "------")

	for _, e := range entries {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, e.ID, maxNameLen, e.Name, e.Source)
	}

	fmt.Println()
	fmt.Println("Run 'skirmish play <id>' to fight.")
	return nil
}
