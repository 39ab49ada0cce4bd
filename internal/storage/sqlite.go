// Package storage provides SQLite-based persistence for fight history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// History is archival only; a fight is never restored from it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for fight history.
type Store struct {
	db *sql.DB
}

// Run is one recorded fight.
type Run struct {
	ID          string
	EncounterID string
	Difficulty  string
	Outcome     string // "ongoing", "victory", "defeat" or "abandoned"
	Turns       int
	StartedAt   time.Time
	FinishedAt  time.Time // Zero while the run is open
}

// EventRecord is one resolved combat outcome inside a run.
type EventRecord struct {
	ID        int64
	RunID     string
	Seq       int
	Source    string
	Target    string
	Spell     string
	Damage    int
	Killed    bool
	Results   string
	CreatedAt time.Time
}

// EncounterStats contains aggregated statistics for one encounter.
type EncounterStats struct {
	EncounterID string
	Runs        int
	Victories   int
	Defeats     int
	AvgTurns    float64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			encounter_id TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL DEFAULT 'ongoing',
			turns INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_encounter ON runs(encounter_id);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS combat_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			spell TEXT NOT NULL,
			damage INTEGER NOT NULL DEFAULT 0,
			killed INTEGER NOT NULL DEFAULT 0,
			results TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(run_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_combat_events_run ON combat_events(run_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun opens a new run and returns its ID.
func (s *Store) StartRun(encounterID, difficulty string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, encounter_id, difficulty) VALUES (?, ?, ?)",
		id, encounterID, difficulty,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// AppendEvent records one outcome of a run.
func (s *Store) AppendEvent(rec EventRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO combat_events (run_id, seq, source, target, spell, damage, killed, results)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Seq, rec.Source, rec.Target, rec.Spell, rec.Damage, rec.Killed, rec.Results,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with its final outcome and turn count.
func (s *Store) FinishRun(runID, outcome string, turns int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET outcome = ?, turns = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?",
		outcome, turns, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// RunByID retrieves one run.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, encounter_id, difficulty, outcome, turns, started_at, finished_at
		 FROM runs WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty encounterID matches every encounter.
func (s *Store) RecentRuns(encounterID string, limit int) ([]Run, error) {
	return s.queryRuns(encounterID, limit, false)
}

// FinishedRuns is RecentRuns without the runs still ongoing.
func (s *Store) FinishedRuns(encounterID string, limit int) ([]Run, error) {
	return s.queryRuns(encounterID, limit, true)
}

func (s *Store) queryRuns(encounterID string, limit int, finishedOnly bool) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, encounter_id, difficulty, outcome, turns, started_at, finished_at
		 FROM runs
		 WHERE (? = '' OR encounter_id = ?)
		   AND (? = 0 OR outcome != 'ongoing')
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		encounterID, encounterID, finishedOnly, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunEvents retrieves every outcome of a run in order.
func (s *Store) RunEvents(runID string) ([]EventRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, seq, source, target, spell, damage, killed, results, created_at
		 FROM combat_events
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var r EventRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Seq, &r.Source, &r.Target, &r.Spell,
			&r.Damage, &r.Killed, &r.Results, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// GetEncounterStats retrieves aggregated statistics for one encounter.
// Runs still ongoing are not counted.
func (s *Store) GetEncounterStats(encounterID string) (*EncounterStats, error) {
	stats := &EncounterStats{EncounterID: encounterID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'victory'), 0),
		        COALESCE(SUM(outcome = 'defeat'), 0),
		        COALESCE(AVG(turns), 0),
		        MAX(started_at)
		 FROM runs WHERE encounter_id = ? AND outcome != 'ongoing'`,
		encounterID,
	).Scan(&stats.Runs, &stats.Victories, &stats.Defeats, &stats.AvgTurns, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get encounter stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var startedAt, finishedAt any
	if err := row.Scan(&r.ID, &r.EncounterID, &r.Difficulty, &r.Outcome, &r.Turns, &startedAt, &finishedAt); err != nil {
		return Run{}, err
	}
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
