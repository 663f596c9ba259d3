package recorder

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"

	"neugym/pkg/engine/world"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	// One writer; a fresh connection would not see an in-memory database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, ts ...Transition) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transitions (
			run_id, episode, time,
			from_area, from_x, from_y,
			action,
			to_area, to_x, to_y,
			reward, done
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range ts {
		if _, err := stmt.ExecContext(ctx,
			t.RunID, t.Episode, t.Time,
			t.From.Area, t.From.X, t.From.Y,
			int(t.Action),
			t.To.Area, t.To.X, t.To.Y,
			t.Reward, t.Done,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Transitions(ctx context.Context, runID string) ([]Transition, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT episode, time, from_area, from_x, from_y, action, to_area, to_x, to_y, reward, done
		FROM transitions WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		t := Transition{RunID: runID}
		var action int
		if err := rows.Scan(
			&t.Episode, &t.Time,
			&t.From.Area, &t.From.X, &t.From.Y,
			&action,
			&t.To.Area, &t.To.X, &t.To.Y,
			&t.Reward, &t.Done,
		); err != nil {
			return nil, err
		}
		t.Action = world.Direction(action)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Runs(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id FROM transitions GROUP BY run_id ORDER BY MIN(seq)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transitions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			episode INTEGER NOT NULL,
			time INTEGER NOT NULL,
			from_area INTEGER NOT NULL,
			from_x INTEGER NOT NULL,
			from_y INTEGER NOT NULL,
			action INTEGER NOT NULL,
			to_area INTEGER NOT NULL,
			to_x INTEGER NOT NULL,
			to_y INTEGER NOT NULL,
			reward REAL NOT NULL,
			done INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS transitions_run ON transitions (run_id, seq);
	`)
	return err
}
