// Package storage provides SQLite-based persistence for finished runs and
// the leaderboard. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
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

// Store manages the SQLite connection.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID         int64
	RunID      uuid.UUID // Session ID; a run is stored at most once
	Player     string
	Difficulty string
	Score      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// LeaderboardEntry is a player's best result.
type LeaderboardEntry struct {
	Rank      int
	Player    string
	BestScore int
	Runs      int
}

// Stats aggregates runs for one difficulty, or all of them.
type Stats struct {
	Difficulty string
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LongestRun time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, score DESC);
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

// SaveRun records a finished run. A run whose RunID is already stored is
// ignored and reported as not inserted. A zero RunID gets a fresh one.
func (s *Store) SaveRun(run Run) (bool, error) {
	if run.RunID == uuid.Nil {
		run.RunID = uuid.New()
	}
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO runs (run_id, player, difficulty, score, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		run.RunID.String(), run.Player, run.Difficulty, run.Score, run.Duration.Milliseconds(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// TopScores returns the best runs for a difficulty, highest first.
// An empty difficulty covers all of them.
func (s *Store) TopScores(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, player, difficulty, score, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			runID     string
			durMS     int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &runID, &r.Player, &r.Difficulty, &r.Score, &durMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.RunID, _ = uuid.Parse(runID)
		r.Duration = time.Duration(durMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Leaderboard returns each player's best score across all difficulties,
// best first.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT player, MAX(score) AS best, COUNT(*)
		 FROM runs
		 GROUP BY player
		 ORDER BY best DESC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Player, &e.BestScore, &e.Runs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// PlayerBest returns the player's best score, or 0 without runs.
func (s *Store) PlayerBest(player string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE player = ?", player).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// PlayerRank returns the player's 1-based leaderboard position. Players
// with equal bests share a rank. ok is false if the player has no runs.
func (s *Store) PlayerRank(player string) (rank int, ok bool, err error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE player = ?", player).Scan(&best); err != nil {
		return 0, false, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}

	var ahead int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM (
			SELECT player FROM runs GROUP BY player HAVING MAX(score) > ?
		 )`,
		best.Int64,
	).Scan(&ahead)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query player rank: %w", err)
	}
	return ahead + 1, true, nil
}

// Stats aggregates runs for a difficulty. An empty difficulty covers all runs.
func (s *Store) Stats(difficulty string) (*Stats, error) {
	stats := &Stats{Difficulty: difficulty}
	var longestMS int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(duration_ms), 0), MAX(created_at)
		 FROM runs
		 WHERE ? = '' OR difficulty = ?`,
		difficulty, difficulty,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &longestMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LongestRun = time.Duration(longestMS) * time.Millisecond
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// Clear deletes runs for a difficulty, or every run when difficulty is empty.
func (s *Store) Clear(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and SQLite's text timestamps.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
