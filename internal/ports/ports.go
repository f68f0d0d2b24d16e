package ports

import (
	"context"
	"io"

	"svw.info/sudoku-board/internal/domain"
)

// Validator performs whole-grid constraint checks (row/col/box).
type Validator interface {
	Validate(ctx context.Context, g domain.Grid) (ok bool, conflicts []domain.CellCoord, err error)
}

// Renderer draws a grid for humans. Implementations consume cell values
// only, never the mask or error state.
type Renderer interface {
	Render(w io.Writer, g domain.Grid) error
}

// SessionStore persists sessions and their append-only move journal.
type SessionStore interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	SaveSession(ctx context.Context, s *domain.Session) error
	LoadSession(ctx context.Context, id string) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.SessionMeta, error)
	AppendMove(ctx context.Context, m *domain.MoveRecord) error
	ListMoves(ctx context.Context, sessionID string) ([]domain.MoveRecord, error)
}
