package storage

import (
	"strings"

	"github.com/vovakirdan/tui-skirmish/internal/combat"
	"github.com/vovakirdan/tui-skirmish/internal/eventbus"
)

// Journal copies combat outcomes into a run. It reads the session's bus
// through its own cursor and may lag behind the in-game log.
type Journal struct {
	store  *Store
	bus    *eventbus.Bus[combat.Event]
	cursor *eventbus.Cursor
	runID  string
	seq    int
}

// NewJournal starts a run and subscribes to bus.
func NewJournal(store *Store, bus *eventbus.Bus[combat.Event], encounterID, difficulty string) (*Journal, error) {
	runID, err := store.StartRun(encounterID, difficulty)
	if err != nil {
		return nil, err
	}
	return &Journal{
		store:  store,
		bus:    bus,
		cursor: bus.Subscribe(),
		runID:  runID,
	}, nil
}

// RunID returns the ID of the run being written.
func (j *Journal) RunID() string {
	return j.runID
}

// Drain writes every unread outcome. On error the remaining outcomes of
// this batch are lost; the cursor has already moved.
func (j *Journal) Drain() error {
	for _, ev := range j.bus.ReadSince(j.cursor) {
		j.seq++
		if _, err := j.store.AppendEvent(recordFor(j.runID, j.seq, ev)); err != nil {
			return err
		}
	}
	return nil
}

// Finish drains what is left and closes the run.
func (j *Journal) Finish(outcome string, turns int) error {
	if err := j.Drain(); err != nil {
		return err
	}
	return j.store.FinishRun(j.runID, outcome, turns)
}

func recordFor(runID string, seq int, ev combat.Event) EventRecord {
	results := make([]string, len(ev.Results))
	for i, r := range ev.Results {
		results[i] = r.String()
	}
	return EventRecord{
		RunID:   runID,
		Seq:     seq,
		Source:  ev.Source,
		Target:  ev.Target.String(),
		Spell:   ev.Spell.Name,
		Damage:  ev.Damage(),
		Killed:  ev.Killed(),
		Results: strings.Join(results, ","),
	}
}
