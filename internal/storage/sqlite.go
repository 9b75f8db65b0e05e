// Package storage provides SQLite-based persistence for finished levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only outcomes are stored. A game in progress is never written, so there is
// nothing to resume.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a level ended.
type Outcome string

const (
	OutcomeWon      Outcome = "won"
	OutcomeTimedOut Outcome = "timed_out"
)

// Store manages the SQLite database connection for level results.
type Store struct {
	db *sql.DB
}

// LevelResult is one finished level attempt.
type LevelResult struct {
	ID          int64
	RunID       string // groups the levels of one play session
	Player      string
	Level       int
	SecretLen   int
	Reversed    bool
	Outcome     Outcome
	ElapsedSecs int // time to crack; the full limit for timeouts
	CreatedAt   time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL,
			secret_len INTEGER NOT NULL,
			reversed INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			elapsed_secs INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level);
		CREATE INDEX IF NOT EXISTS idx_level_results_best ON level_results(level, outcome, elapsed_secs);
		CREATE INDEX IF NOT EXISTS idx_level_results_run ON level_results(run_id);
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

// SaveResult records a finished level. A missing RunID gets a fresh one.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeTimedOut {
		return 0, fmt.Errorf("storage: cannot save result: unknown outcome %q", r.Outcome)
	}
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO level_results
		 (run_id, player, level, secret_len, reversed, outcome, elapsed_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Player, r.Level, r.SecretLen, r.Reversed, string(r.Outcome), r.ElapsedSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, run_id, player, level, secret_len, reversed, outcome, elapsed_secs, created_at`

// BestTimes retrieves the fastest N clears of the given level.
// Ties go to the earlier clear.
func (s *Store) BestTimes(level, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE level = ? AND outcome = ?
		 ORDER BY elapsed_secs ASC, id ASC
		 LIMIT ?`,
		level, string(OutcomeWon), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	return scanResults(rows)
}

// RecentResults retrieves the most recent results across all levels.
func (s *Store) RecentResults(limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// RunResults retrieves every result of one run in the order they finished.
func (s *Store) RunResults(runID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return scanResults(rows)
}

// BestTime returns the fastest clear of the given level.
// ok is false if the level was never cleared.
func (s *Store) BestTime(level int) (secs int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(elapsed_secs) FROM level_results WHERE level = ? AND outcome = ?",
		level, string(OutcomeWon),
	).Scan(&best)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}

	return int(best.Int64), true, nil
}

// ClearResults deletes all results for the given level, or every result
// when level is 0.
func (s *Store) ClearResults(level int) error {
	var err error
	if level == 0 {
		_, err = s.db.Exec("DELETE FROM level_results")
	} else {
		_, err = s.db.Exec("DELETE FROM level_results WHERE level = ?", level)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level      int
	Attempts   int
	Wins       int
	TimeOuts   int
	BestSecs   int // 0 when never won
	AvgSecs    float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(level int) (*LevelStats, error) {
	stats := &LevelStats{Level: level}

	// Get attempts, wins, timeouts, best, average clear time
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'timed_out' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN elapsed_secs END), 0),
		        COALESCE(AVG(CASE WHEN outcome = 'won' THEN elapsed_secs END), 0),
		        MAX(created_at)
		 FROM level_results WHERE level = ?`,
		level,
	).Scan(&stats.Attempts, &stats.Wins, &stats.TimeOuts, &stats.BestSecs, &stats.AvgSecs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT level FROM level_results ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}

	var levels []int
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan level: %w", err)
		}
		levels = append(levels, level)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stats := make(map[int]*LevelStats, len(levels))
	for _, level := range levels {
		st, err := s.GetLevelStats(level)
		if err != nil {
			return nil, err
		}
		stats[level] = st
	}

	return stats, nil
}

// scanResults reads result rows and closes them.
func scanResults(rows *sql.Rows) ([]LevelResult, error) {
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var outcome string
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Player,
			&r.Level,
			&r.SecretLen,
			&r.Reversed,
			&outcome,
			&r.ElapsedSecs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
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
