package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-skirmish/internal/config"
	"github.com/vovakirdan/tui-skirmish/internal/core"
	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

func openFightStore(t *testing.T) *storage.Store {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFightRecordsHistory(t *testing.T) {
	store := openFightStore(t)

	fight, err := NewFight(FightOptions{
		EncounterID: "gnoll",
		Difficulty:  config.DifficultyFixed,
		Store:       store,
	})
	if err != nil {
		t.Fatalf("NewFight() failed: %v", err)
	}

	frame := core.NewInputFrame()
	frame.Press("stab")
	if res := fight.Tick(frame); !res.Advanced {
		t.Fatalf("player tick did not advance: %+v", res)
	}
	if res := fight.Tick(core.NewInputFrame()); !res.Advanced {
		t.Fatalf("monster tick did not advance: %+v", res)
	}

	if fight.Log.Len() != 3 {
		t.Errorf("log has %d lines, expected intro plus 2", fight.Log.Len())
	}

	fight.Close()
	fight.Close()

	runs, err := store.RecentRuns("gnoll", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != "abandoned" || runs[0].Turns != 2 {
		t.Fatalf("runs = %+v, expected one abandoned run of 2 turns", runs)
	}

	events, _ := store.RunEvents(runs[0].ID)
	if len(events) != 2 || events[0].Source != "You" || events[1].Source != "Gnoll" {
		t.Errorf("events = %+v", events)
	}
}

func TestNewFightUnknownEncounter(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, err := NewFight(FightOptions{EncounterID: "dragon"}); err == nil {
		t.Error("NewFight(dragon) succeeded, expected error")
	}
}

func TestSessionModelCloseAbandonsFight(t *testing.T) {
	store := openFightStore(t)

	m := NewSessionModel(store, core.DefaultConfig(), config.DifficultyFixed, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)

	fight := m.active.get()
	if m.screen != screenFight || fight == nil {
		t.Fatalf("Enter in menu did not start a fight (screen %d)", m.screen)
	}

	frame := core.NewInputFrame()
	frame.Press("stab")
	fight.Tick(frame)
	fight.Tick(core.NewInputFrame())

	// The client drops: no quit key, only the connection closer runs.
	m.Close()
	m.Close()

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	if runs[0].Outcome != "abandoned" || runs[0].Turns != 2 || runs[0].FinishedAt.IsZero() {
		t.Errorf("run = %s/%d finished %v, expected abandoned/2 with finish time",
			runs[0].Outcome, runs[0].Turns, runs[0].FinishedAt)
	}
	if m.active.get() != nil {
		t.Error("closed fight is still active")
	}

	stats, err := store.GetEncounterStats(runs[0].EncounterID)
	if err != nil {
		t.Fatalf("GetEncounterStats() failed: %v", err)
	}
	if stats.Runs != 1 || stats.AvgTurns != 2 {
		t.Errorf("stats = %+v, expected 1 run averaging 2 turns", stats)
	}
}

func TestSessionModelBackToMenuClosesFight(t *testing.T) {
	store := openFightStore(t)

	m := NewSessionModel(store, core.DefaultConfig(), config.DifficultyFixed, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)

	if m.screen != screenMenu || m.active.get() != nil {
		t.Fatalf("esc did not return to the menu (screen %d)", m.screen)
	}
	runs, _ := store.RecentRuns("", 10)
	if len(runs) != 1 || runs[0].Outcome != "abandoned" {
		t.Errorf("runs = %+v, expected one abandoned run", runs)
	}
}
