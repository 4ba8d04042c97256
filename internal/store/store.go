// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuicube/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for solve data.
type Store struct {
	db *sql.DB
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
	store := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL,
			discipline TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_solves_recorded_at ON solves(recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_solves_session_id ON solves(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// timeLayout is RFC 3339 with fixed-width nanoseconds so stored values sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const insertSolve = `INSERT INTO solves (session_id, recorded_at, duration_ns, discipline)
	VALUES (?, ?, ?, ?)`

// Append stores one completed solve.
func (s *Store) Append(ctx context.Context, solve model.Solve) error {
	if solve.Duration < 0 {
		return fmt.Errorf("negative solve duration %s", solve.Duration)
	}
	_, err := s.db.ExecContext(ctx, insertSolve,
		solve.SessionID,
		solve.RecordedAt.UTC().Format(timeLayout),
		int64(solve.Duration),
		solve.Discipline.String(),
	)
	return err
}

// InsertSolves stores solves in a single transaction and returns how many were written.
func (s *Store) InsertSolves(ctx context.Context, solves []model.Solve) (n int, err error) {
	if len(solves) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSolve)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, solve := range solves {
		if solve.Duration < 0 {
			return 0, fmt.Errorf("solve %d: negative duration %s", i, solve.Duration)
		}
		if _, err = stmt.ExecContext(ctx,
			solve.SessionID,
			solve.RecordedAt.UTC().Format(timeLayout),
			int64(solve.Duration),
			solve.Discipline.String(),
		); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(solves), nil
}

// ListSolves returns solves oldest first, filtered by stats config.
func (s *Store) ListSolves(ctx context.Context, cfg model.StatsConfig) ([]model.Solve, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	if cfg.Session != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, cfg.Session)
	}
	query := fmt.Sprintf(`SELECT id, session_id, recorded_at, duration_ns, discipline
		FROM solves
		WHERE %s
		ORDER BY recorded_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var solves []model.Solve
	for rows.Next() {
		var (
			solve      model.Solve
			recordedAt string
			durationNs int64
			discipline string
		)
		if err := rows.Scan(&solve.ID, &solve.SessionID, &recordedAt, &durationNs, &discipline); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, err
		}
		solve.RecordedAt = parsed
		solve.Duration = time.Duration(durationNs)
		solve.Discipline, err = model.ParseDiscipline(discipline)
		if err != nil {
			return nil, err
		}
		solves = append(solves, solve)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(solves) > cfg.Last {
		solves = solves[len(solves)-cfg.Last:]
	}
	return solves, nil
}
