package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/config"
	"github.com/vovakirdan/tui-skirmish/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick encounters from an interactive menu",
	Long: `Start skirmish in interactive menu mode.

Use arrow keys or j/k to choose an encounter, left/right to change the
difficulty, Enter to fight. Leaving a fight returns you to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right     - Change difficulty
  Enter/Space    - Start fight
  Tab            - Fight history
  Q              - Quit

Examples:
  skirmish menu
  skirmish menu --db ./history.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("skirmish", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	preset, err := config.ParsePreset(environment.Difficulty)
	if err != nil {
		return err
	}

	for {
		menuResult, err := tui.RunMenu(cfg, preset)
		if err != nil {
			return err
		}

		cfg = menuResult.Config
		preset = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from history
		}

		err = tui.Run(tui.FightOptions{
			EncounterID: menuResult.EncounterID,
			Difficulty:  preset,
			Store:       store,
			Logger:      logger,
		}, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running fight: %v\n", err)
		}
	}
}
