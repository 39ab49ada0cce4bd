// skirmish is a turn-based combat game played in the terminal.
//
// Usage:
//
//	skirmish list              - List available encounters
//	skirmish play [encounter]  - Fight an encounter
//	skirmish menu              - Pick encounters interactively
//	skirmish history           - Show past fights
//	skirmish serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 10)
//	--db <path>          - Set database path (default: ~/.skirmish/history.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write diagnostics to a file while playing
//
// Flag defaults can be changed with SKIRMISH_DB, SKIRMISH_LOG_LEVEL,
// SKIRMISH_LOG_FILE, SKIRMISH_FPS, SKIRMISH_DIFFICULTY and SKIRMISH_SSH_ADDR.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	environment, envErr = config.LoadEnvironment()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Skirmish - turn-based fights in your terminal",
	Long: `Skirmish is a small turn-based combat game. You and the monsters
take turns in a fixed order; press a button on your turn to cast a spell,
and watch the log for what happened.

Available commands:
  list     - Show all available encounters
  play     - Fight an encounter directly
  menu     - Interactive encounter picker
  history  - View past fights
  serve    - Start SSH server for remote play

Examples:
  skirmish list
  skirmish play gnoll
  skirmish play --config ./my-fight.yaml --difficulty hard
  skirmish menu
  skirmish serve --ssh :2222
  skirmish history gnoll`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return envErr
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", environment.TickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", environment.DBPath, "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", environment.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", environment.LogFile, "Write diagnostics to this file (TUI commands discard them otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
