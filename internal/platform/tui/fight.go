package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/config"
	"github.com/vovakirdan/tui-skirmish/internal/core"
	"github.com/vovakirdan/tui-skirmish/internal/eventlog"
	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

// FightOptions selects and configures an encounter.
type FightOptions struct {
	EncounterID string
	ConfigPath  string // Overrides the encounter search path when set
	Difficulty  config.DifficultyPreset
	Store       *storage.Store // Optional history store
	Logger      *log.Logger
}

// Fight bundles a running session with its log and optional journal.
type Fight struct {
	ID         string
	Name       string
	Difficulty config.DifficultyPreset
	Session    *combat.Session
	Log        *eventlog.Buffer
	journal    *storage.Journal
	logger     *log.Logger

	mu       sync.Mutex // Guards Tick against Close from a disconnect handler
	finished bool
}

// NewFight loads an encounter and wires a session, its log sink and,
// when a store is given, a history journal.
func NewFight(opts FightOptions) (*Fight, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}

	cfg, err := config.LoadEncounter(opts.ConfigPath, opts.EncounterID)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, opts.Difficulty)

	enc, err := cfg.ToEncounter()
	if err != nil {
		return nil, err
	}

	session, err := combat.NewSession(enc.Setup, logger.WithPrefix("combat"))
	if err != nil {
		return nil, fmt.Errorf("encounter %s: %w", enc.ID, err)
	}

	f := &Fight{
		ID:         enc.ID,
		Name:       enc.Name,
		Difficulty: opts.Difficulty,
		Session:    session,
		Log:        eventlog.NewBuffer(enc.Intro),
		logger:     logger,
	}
	eventlog.Attach(session, f.Log)

	if opts.Store != nil {
		j, err := storage.NewJournal(opts.Store, session.Bus(), enc.ID, string(opts.Difficulty))
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			f.journal = j
		}
	}

	return f, nil
}

// Tick runs one combat tick and flushes the journal.
func (f *Fight) Tick(frame core.InputFrame) combat.TickResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := f.Session.Tick(frame)
	// Drained after the advance on purpose: storage stays out of the combat core.
	if f.journal != nil && !f.finished && res.Advanced {
		if err := f.journal.Drain(); err != nil {
			f.logger.Warn("history write failed, disabling journal", "error", err)
			f.journal = nil
		}
	}
	return res
}

// Close records the final outcome. A fight left while ongoing is
// recorded as abandoned. Safe to call more than once.
func (f *Fight) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.finished {
		return
	}
	f.finished = true
	if f.journal == nil {
		return
	}

	outcome := f.Session.Status().String()
	if f.Session.Status() == combat.StatusOngoing {
		outcome = "abandoned"
	}
	if err := f.journal.Finish(outcome, f.Session.Turn()); err != nil {
		f.logger.Warn("could not close history run", "error", err)
	}
}
