package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history [encounter]",
	Short: "Show past fights",
	Long: `Display recent fights, optionally filtered by encounter, or the full
combat log of one run.

Examples:
  skirmish history
  skirmish history gnoll --limit 5
  skirmish history --run 3f2a...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show every event of this run")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryRun != "" {
		return printRun(store, flagHistoryRun)
	}

	encounterID := ""
	if len(args) > 0 {
		encounterID = args[0]
	}

	runs, err := store.RecentRuns(encounterID, flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No fights recorded yet.")
		fmt.Println()
		fmt.Println("Run 'skirmish play' to start one!")
		return nil
	}

	fmt.Printf("  %-36s  %-12s  %-10s  %-9s  %5s  %s\n", "Run", "Encounter", "Difficulty", "Outcome", "Turns", "Date")
	fmt.Printf("  %-36s  %-12s  %-10s  %-9s  %5s  %s\n", "---", "---------", "----------", "-------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-12s  %-10s  %-9s  %5d  %s\n",
			r.ID, r.EncounterID, r.Difficulty, r.Outcome, r.Turns, r.StartedAt.Format("2006-01-02 15:04"))
	}

	if encounterID != "" {
		stats, err := store.GetEncounterStats(encounterID)
		if err == nil && stats.Runs > 0 {
			fmt.Println()
			fmt.Printf("%d runs, %d won, %d lost, %.1f turns on average\n",
				stats.Runs, stats.Victories, stats.Defeats, stats.AvgTurns)
		}
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	events, err := store.RunEvents(runID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) - %s after %d turns\n\n", run.EncounterID, run.Difficulty, run.Outcome, run.Turns)
	for _, e := range events {
		fmt.Printf("  %3d  %-10s -> %-10s  %-12s  %s\n",
			e.Seq, e.Source, e.Target, e.Spell, strings.ReplaceAll(e.Results, ",", ", "))
	}
	return nil
}
