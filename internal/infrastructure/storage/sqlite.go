// Package storage persists sessions and their move journal in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"svw.info/sudoku-board/internal/domain"
)

type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the
// schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		initial TEXT NOT NULL,
		grid TEXT NOT NULL,
		moves INTEGER NOT NULL DEFAULT 0,
		solved INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		cell_row INTEGER NOT NULL,
		cell_col INTEGER NOT NULL,
		value INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		played_at INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_moves_session ON moves(session_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

func marshalGrid(g domain.Grid) (string, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshal grid: %w", err)
	}
	return string(b), nil
}

func unmarshalGrid(text string) (domain.Grid, error) {
	var g domain.Grid
	if err := json.Unmarshal([]byte(text), &g); err != nil {
		return g, fmt.Errorf("unmarshal grid: %w", err)
	}
	return g, nil
}

func (s *SQLite) CreateSession(ctx context.Context, sn *domain.Session) error {
	if sn == nil || sn.ID == "" {
		return errors.New("invalid session: missing ID")
	}
	initial, err := marshalGrid(sn.Initial)
	if err != nil {
		return err
	}
	grid, err := marshalGrid(sn.Grid)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, initial, grid, moves, solved, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sn.ID, initial, grid, sn.Moves, sn.Solved, sn.CreatedAt, sn.UpdatedAt,
	)
	return err
}

func (s *SQLite) SaveSession(ctx context.Context, sn *domain.Session) error {
	grid, err := marshalGrid(sn.Grid)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET grid = ?, moves = ?, solved = ?, updated_at = ? WHERE id = ?`,
		grid, sn.Moves, sn.Solved, sn.UpdatedAt, sn.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *SQLite) LoadSession(ctx context.Context, id string) (*domain.Session, error) {
	var (
		sn            domain.Session
		initial, grid string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, initial, grid, moves, solved, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sn.ID, &initial, &grid, &sn.Moves, &sn.Solved, &sn.CreatedAt, &sn.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if sn.Initial, err = unmarshalGrid(initial); err != nil {
		return nil, err
	}
	if sn.Grid, err = unmarshalGrid(grid); err != nil {
		return nil, err
	}
	// The mask is derived state; recompute instead of persisting it.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			sn.Editable[r][c] = sn.Initial[r][c] == 0
		}
	}
	return &sn, nil
}

func (s *SQLite) ListSessions(ctx context.Context) ([]domain.SessionMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, moves, solved, created_at FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SessionMeta
	for rows.Next() {
		var m domain.SessionMeta
		if err := rows.Scan(&m.ID, &m.Moves, &m.Solved, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLite) AppendMove(ctx context.Context, m *domain.MoveRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moves (session_id, seq, cell_row, cell_col, value, outcome, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.SessionID, m.Seq, m.Row, m.Col, m.Value, m.Outcome, m.PlayedAt,
	)
	return err
}

func (s *SQLite) ListMoves(ctx context.Context, sessionID string) ([]domain.MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, seq, cell_row, cell_col, value, outcome, played_at
		 FROM moves WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MoveRecord
	for rows.Next() {
		var m domain.MoveRecord
		if err := rows.Scan(&m.SessionID, &m.Seq, &m.Row, &m.Col, &m.Value, &m.Outcome, &m.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
