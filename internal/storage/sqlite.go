// Package storage persists level progress, the player wallet and
// owned upgrades in a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Upgrade names as stored in the upgrades table.
const (
	UpgradeShield   = "shield"
	UpgradeMagnet   = "magnet"
	UpgradeSlowMo   = "slowmo"
	UpgradeShrink   = "shrink"
	UpgradeGhost    = "ghost"
	UpgradeTimeWarp = "timewarp"
)

// Wallet seed values for a fresh database.
const (
	defaultCoins = 0
	defaultLives = 3
)

// LevelProgress is one row of per-level progression. BestTimeMs and
// Stars are zero until the level has been completed at least once.
type LevelProgress struct {
	Level       int
	BestTimeMs  int64
	Stars       int
	Attempts    int
	Completed   bool
	CompletedAt time.Time
}

// Stats aggregates progression across every level.
type Stats struct {
	LevelsCompleted int
	TotalStars      int
	TotalAttempts   int
	HighestLevel    int
}

// Store wraps the SQLite database handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and runs migrations.
// A leading ~ in the path is expanded to the user's home directory.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot resolve home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot reach database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS level_progress (
		level        INTEGER PRIMARY KEY,
		best_time_ms INTEGER,
		stars        INTEGER NOT NULL DEFAULT 0,
		attempts     INTEGER NOT NULL DEFAULT 0,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS wallet (
		id    INTEGER PRIMARY KEY CHECK (id = 1),
		coins INTEGER NOT NULL DEFAULT 0,
		lives INTEGER NOT NULL DEFAULT 3
	);

	CREATE TABLE IF NOT EXISTS upgrades (
		name  TEXT PRIMARY KEY,
		level INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_progress_completed
		ON level_progress(level) WHERE best_time_ms IS NOT NULL;
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO wallet (id, coins, lives) VALUES (1, ?, ?)`,
		defaultCoins, defaultLives,
	)
	return err
}

// RecordAttempt increments the attempt counter for a level, creating
// the row if the level has never been played before.
func (s *Store) RecordAttempt(level int) error {
	_, err := s.db.Exec(
		`INSERT INTO level_progress (level, attempts) VALUES (?, 1)
		 ON CONFLICT(level) DO UPDATE SET attempts = attempts + 1`,
		level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record attempt: %w", err)
	}
	return nil
}

// RecordCompletion stores a finished run. The best time only ever
// improves and the star count only ever grows, so replaying a level
// with a worse result never loses progress.
func (s *Store) RecordCompletion(level int, timeMs int64, stars int) error {
	_, err := s.db.Exec(
		`INSERT INTO level_progress (level, best_time_ms, stars, attempts, completed_at)
		 VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(level) DO UPDATE SET
			best_time_ms = CASE
				WHEN best_time_ms IS NULL OR excluded.best_time_ms < best_time_ms
				THEN excluded.best_time_ms ELSE best_time_ms END,
			stars        = MAX(stars, excluded.stars),
			completed_at = CURRENT_TIMESTAMP`,
		level, timeMs, stars,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record completion: %w", err)
	}
	return nil
}

// BestFor returns the completed progress row for a level, or nil when
// the level has never been completed.
func (s *Store) BestFor(level int) (*LevelProgress, error) {
	row := s.db.QueryRow(
		`SELECT level, best_time_ms, stars, attempts, completed_at
		 FROM level_progress
		 WHERE level = ? AND best_time_ms IS NOT NULL`,
		level,
	)
	p, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return p, nil
}

// AllProgress returns every known progress row ordered by level,
// including levels that were attempted but never completed.
func (s *Store) AllProgress() ([]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT level, best_time_ms, stars, attempts, completed_at
		 FROM level_progress ORDER BY level ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var out []LevelProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot iterate progress: %w", err)
	}
	return out, nil
}

// HighestCompleted returns the largest completed level number, or 0
// when nothing has been completed yet.
func (s *Store) HighestCompleted() (int, error) {
	var highest int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(level), 0) FROM level_progress WHERE best_time_ms IS NOT NULL`,
	).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query highest level: %w", err)
	}
	return highest, nil
}

// GetStats aggregates completion counts, stars and attempts.
func (s *Store) GetStats() (*Stats, error) {
	st := &Stats{}
	err := s.db.QueryRow(
		`SELECT
			COUNT(best_time_ms),
			COALESCE(SUM(stars), 0),
			COALESCE(SUM(attempts), 0),
			COALESCE(MAX(CASE WHEN best_time_ms IS NOT NULL THEN level END), 0)
		 FROM level_progress`,
	).Scan(&st.LevelsCompleted, &st.TotalStars, &st.TotalAttempts, &st.HighestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// Wallet returns the current coin and life balance.
func (s *Store) Wallet() (coins, lives int, err error) {
	err = s.db.QueryRow(`SELECT coins, lives FROM wallet WHERE id = 1`).Scan(&coins, &lives)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot load wallet: %w", err)
	}
	return coins, lives, nil
}

// SetWallet overwrites the wallet balance.
func (s *Store) SetWallet(coins, lives int) error {
	_, err := s.db.Exec(`UPDATE wallet SET coins = ?, lives = ? WHERE id = 1`, coins, lives)
	if err != nil {
		return fmt.Errorf("storage: cannot update wallet: %w", err)
	}
	return nil
}

// AddCoins adjusts the coin balance by delta (which may be negative)
// and returns the new balance. The balance never drops below zero.
func (s *Store) AddCoins(delta int) (int, error) {
	_, err := s.db.Exec(`UPDATE wallet SET coins = MAX(0, coins + ?) WHERE id = 1`, delta)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update coins: %w", err)
	}
	coins, _, err := s.Wallet()
	return coins, err
}

// AdjustLives adjusts the life balance by delta and returns the new
// balance. The balance never drops below zero.
func (s *Store) AdjustLives(delta int) (int, error) {
	_, err := s.db.Exec(`UPDATE wallet SET lives = MAX(0, lives + ?) WHERE id = 1`, delta)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update lives: %w", err)
	}
	_, lives, err := s.Wallet()
	return lives, err
}

// Upgrades returns every owned upgrade with a level above zero.
func (s *Store) Upgrades() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT name, level FROM upgrades WHERE level > 0`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query upgrades: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var level int
		if err := rows.Scan(&name, &level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan upgrade: %w", err)
		}
		out[name] = level
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot iterate upgrades: %w", err)
	}
	return out, nil
}

// SetUpgrade stores the level of a named upgrade.
func (s *Store) SetUpgrade(name string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO upgrades (name, level) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET level = excluded.level`,
		name, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set upgrade: %w", err)
	}
	return nil
}

// ConsumeUpgrade decrements a consumable upgrade by one charge. The
// level never drops below zero; consuming an unowned upgrade is a
// no-op.
func (s *Store) ConsumeUpgrade(name string) error {
	_, err := s.db.Exec(`UPDATE upgrades SET level = MAX(0, level - 1) WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("storage: cannot consume upgrade: %w", err)
	}
	return nil
}

// Reset wipes all progress, upgrades and the wallet back to a fresh
// install.
func (s *Store) Reset() error {
	for _, stmt := range []string{`DELETE FROM level_progress`, `DELETE FROM upgrades`} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("storage: cannot reset: %w", err)
		}
	}
	if err := s.SetWallet(defaultCoins, defaultLives); err != nil {
		return fmt.Errorf("storage: cannot reset: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*LevelProgress, error) {
	var p LevelProgress
	var best sql.NullInt64
	var completedAt any
	if err := row.Scan(&p.Level, &best, &p.Stars, &p.Attempts, &completedAt); err != nil {
		return nil, err
	}
	if best.Valid {
		p.BestTimeMs = best.Int64
		p.Completed = true
	}

	// Parse the datetime - handle both time.Time and string
	switch v := completedAt.(type) {
	case time.Time:
		p.CompletedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			p.CompletedAt = parsed
		}
	}
	return &p, nil
}
