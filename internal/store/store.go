// Package store handles SQLite persistence of the autosaved game.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/yachtscore/internal/players"
	"github.com/verte-zerg/yachtscore/internal/score"

	_ "modernc.org/sqlite" // SQLite driver.
)

// categoryColumns lists the scoreboard columns in score.Categories order.
var categoryColumns = []string{
	"ones", "twos", "threes", "fours", "fives", "sixes",
	"choice", "full_house", "four_of_kind",
	"small_straight", "large_straight", "yacht",
}

// Store wraps SQLite access for the autosaved registry.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scoreboards (
			position INTEGER NOT NULL,
			name TEXT PRIMARY KEY,
			ones INTEGER,
			twos INTEGER,
			threes INTEGER,
			fours INTEGER,
			fives INTEGER,
			sixes INTEGER,
			choice INTEGER,
			full_house INTEGER,
			four_of_kind INTEGER,
			small_straight INTEGER,
			large_straight INTEGER,
			yacht INTEGER,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scoreboards_position ON scoreboards(position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRegistry replaces the stored game with the given snapshot.
func (s *Store) SaveRegistry(ctx context.Context, entries []players.Entry) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM scoreboards`); err != nil {
		return err
	}

	if len(entries) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO scoreboards (position, name, ones, twos, threes, fours, fives, sixes,
				choice, full_house, four_of_kind, small_straight, large_straight, yacht, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		updatedAt := s.now().UTC().Format(time.RFC3339Nano)
		for i, e := range entries {
			args := make([]any, 0, 15)
			args = append(args, i, e.Name)
			for _, c := range score.Categories() {
				args = append(args, nullable(e.Board.Slot(c)))
			}
			args = append(args, updatedAt)
			if _, err = stmt.ExecContext(ctx, args...); err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// LoadRegistry rebuilds the stored game. Totals are derived again rather
// than read back.
func (s *Store) LoadRegistry(ctx context.Context) (*players.Registry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, ones, twos, threes, fours, fives, sixes,
			choice, full_house, four_of_kind, small_straight, large_straight, yacht
		FROM scoreboards
		ORDER BY position ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	reg := players.New()
	for rows.Next() {
		var name string
		values := make([]sql.NullInt64, len(categoryColumns))
		dest := make([]any, 0, len(values)+1)
		dest = append(dest, &name)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if err := reg.AddPlayer(name); err != nil {
			return nil, fmt.Errorf("stored player %q: %w", name, err)
		}
		for i, c := range score.Categories() {
			if !values[i].Valid {
				continue
			}
			in, err := storedInput(c, values[i].Int64)
			if err != nil {
				return nil, fmt.Errorf("stored player %q: %w", name, err)
			}
			if err := reg.ApplyScore(name, in); err != nil {
				return nil, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Clear removes the stored game.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM scoreboards`)
	return err
}

// Count returns the number of stored players.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scoreboards`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func nullable(slot score.Slot) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(slot.Value), Valid: slot.Set}
}

// storedInput converts a non-NULL column. NULL columns are skipped by the
// caller so absent slots stay absent.
func storedInput(c score.Category, v int64) (score.Input, error) {
	if v < 0 || v > 65535 {
		return score.Input{}, fmt.Errorf("%s out of range: %d", c, v)
	}
	if c.IsClaim() && v != 0 && uint16(v) != c.Award() {
		return score.Input{}, fmt.Errorf("%s must be 0 or %d, got %d", c, c.Award(), v)
	}
	return score.Score(c, uint16(v)), nil
}
