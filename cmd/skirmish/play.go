package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-skirmish/internal/config"
	"github.com/vovakirdan/tui-skirmish/internal/core"
	"github.com/vovakirdan/tui-skirmish/internal/platform/tui"
	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [encounter]",
	Short: "Fight an encounter",
	Long: `Start a fight against the specified encounter (default: gnoll).

Controls:
  Arrows/hjkl  - Move button focus
  Enter/Space  - Press focused button
  1-9          - Press the n-th button
  PgUp/PgDn    - Scroll the combat log
  ?            - Toggle help
  Esc/Q        - Leave

Difficulty options:
  easy   - Weaker monsters
  normal - Monsters as written in the encounter file
  hard   - Tougher, harder-hitting monsters
  fixed  - Ignore the encounter's difficulty scaling

Examples:
  skirmish play
  skirmish play scarecrow --difficulty hard
  skirmish play --config ./my-fight.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom encounter YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", environment.Difficulty, "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig reads the current terminal size, falling back to defaults.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// openStore opens the history database; play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	encounterID := ""
	if len(args) > 0 {
		encounterID = args[0]
	}

	logger, closeLog, err := newLogger("skirmish", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(tui.FightOptions{
		EncounterID: encounterID,
		ConfigPath:  flagConfig,
		Difficulty:  preset,
		Store:       store,
		Logger:      logger,
	}, terminalConfig())
}
