// Package storage keeps the history of finished games in SQLite through the
// pure-Go modernc.org/sqlite driver, so the binary builds without CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Store is a handle on the results database.
type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID        int64
	GameID    string
	Lines     int    // Lines cleared
	Moves     int    // Successful moves
	BallsLeft int    // Balls on the board when the game ended
	Seed      int64  // RNG seed the board was played with
	Layout    string // Starting layout ID, empty for a random deal
	CreatedAt time.Time
}

// GameStats aggregates every recorded game of one variant.
type GameStats struct {
	GameID     string
	GamesCount int
	BestLines  int
	AvgLines   float64
	TotalMoves int64
	LastPlayed time.Time
}

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		lines_cleared INTEGER NOT NULL,
		moves INTEGER NOT NULL DEFAULT 0,
		balls_left INTEGER NOT NULL DEFAULT 0,
		seed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_results_rank ON results(game_id, lines_cleared DESC, moves ASC);`,

	`ALTER TABLE results ADD COLUMN layout TEXT NOT NULL DEFAULT '';`,
}

const resultColumns = "id, game_id, lines_cleared, moves, balls_left, seed, layout, created_at"

// Open opens the database at path, creating it and its parent directories
// when missing, and brings the schema up to date. A leading ~ is expanded
// to the home directory.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	// One connection keeps the PRAGMA and migrations on the same session.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate %s: %w", path, err)
	}
	return s, nil
}

// migrate runs the migrations the database has not seen yet.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// SchemaVersion reports how many migrations have been applied.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("storage: cannot read schema version: %w", err)
	}
	return version, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResult records a finished game and returns its row ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (game_id, lines_cleared, moves, balls_left, seed, layout)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Lines, r.Moves, r.BallsLeft, r.Seed, r.Layout,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read inserted id: %w", err)
	}
	return id, nil
}

// TopResults returns the best games of a variant: most lines first, then
// fewer moves, then the earlier game. A limit of 0 or less means 10.
func (s *Store) TopResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+` FROM results WHERE game_id = ?
		 ORDER BY lines_cleared DESC, moves ASC, id ASC LIMIT ?`,
		gameID, limit,
	)
}

// RecentResults returns the latest games of a variant, newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+` FROM results WHERE game_id = ?
		 ORDER BY id DESC LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r       Result
			created any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Lines, &r.Moves, &r.BallsLeft, &r.Seed, &r.Layout, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan result: %w", err)
		}
		r.CreatedAt = parseTime(created)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read results: %w", err)
	}
	return out, nil
}

// BestLines returns the most lines cleared in one game of the variant, or
// 0 when nothing is recorded.
func (s *Store) BestLines(gameID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(lines_cleared) FROM results WHERE game_id = ?", gameID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return int(best.Int64), nil
}

// ClearResults deletes the history of one variant and returns how many
// games were removed.
func (s *Store) ClearResults(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared results: %w", err)
	}
	return n, nil
}

// GetGameStats aggregates the history of one variant. A variant without
// games yields zero stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(lines_cleared), 0), COALESCE(AVG(lines_cleared), 0), COALESCE(SUM(moves), 0)
		 FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.BestLines, &stats.AvgLines, &stats.TotalMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats for %s: %w", gameID, err)
	}

	var last any
	err = s.db.QueryRow(
		"SELECT created_at FROM results WHERE game_id = ? ORDER BY id DESC LIMIT 1",
		gameID,
	).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("storage: cannot get last game of %s: %w", gameID, err)
	default:
		stats.LastPlayed = parseTime(last)
	}
	return stats, nil
}

// GetAllGamesStats aggregates every variant that has recorded games.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(lines_cleared), AVG(lines_cleared), SUM(moves), MAX(created_at)
		 FROM results GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		var (
			st   GameStats
			last any
		)
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.BestLines, &st.AvgLines, &st.TotalMoves, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		st.LastPlayed = parseTime(last)
		all[st.GameID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read stats: %w", err)
	}
	return all, nil
}

// parseTime accepts what the driver hands back for DATETIME columns:
// a time.Time or SQLite's text form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
