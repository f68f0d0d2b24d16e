package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"svw.info/sudoku-board/internal/board"
	"svw.info/sudoku-board/internal/domain"
	"svw.info/sudoku-board/internal/ports"
	"svw.info/sudoku-board/internal/report"
)

// Service owns the live boards and coordinates storage, journaling and
// watchers. Each session has one logical owner; the mutex makes every
// update a critical section, since the board's tentative-write-then-
// rollback protocol is not safe under concurrent mutation.
type Service struct {
	store ports.SessionStore
	val   ports.Validator
	log   zerolog.Logger

	mu     sync.Mutex
	boards map[string]*board.Board
	meta   map[string]*domain.Session
	watch  map[string]map[chan domain.Session]struct{}
}

func NewService(store ports.SessionStore, v ports.Validator, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		val:    v,
		log:    log,
		boards: make(map[string]*board.Board),
		meta:   make(map[string]*domain.Session),
		watch:  make(map[string]map[chan domain.Session]struct{}),
	}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Start creates a session from an initial grid. The grid must be legal;
// non-zero cells become fixed givens.
func (u *Service) Start(ctx context.Context, g domain.Grid) (domain.Session, error) {
	b, err := board.New(g)
	if err != nil {
		return domain.Session{}, err
	}
	now := time.Now().UnixNano()
	sn := &domain.Session{
		ID:        uuid.New().String(),
		Initial:   g,
		Grid:      g,
		Editable:  b.Mask(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.store != nil {
		if err := u.store.CreateSession(ctx, sn); err != nil {
			return domain.Session{}, fmt.Errorf("persist session: %w", err)
		}
	}
	u.mu.Lock()
	u.boards[sn.ID] = b
	u.meta[sn.ID] = sn
	u.mu.Unlock()
	u.log.Info().Str("session", sn.ID).Msg("session started")
	return *sn, nil
}

// Get returns the current state of a session, restoring it from the store
// if it is not live.
func (u *Service) Get(ctx context.Context, id string) (domain.Session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, sn, err := u.boardLocked(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	return *sn, nil
}

// Play attempts one cell update. Every attempt is journaled, rejected ones
// with the code of the rule they broke. On success the new state is saved
// and pushed to watchers; on failure the rule error is returned alongside
// the unchanged state.
func (u *Service) Play(ctx context.Context, id string, r, c, val int) (domain.Session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, sn, err := u.boardLocked(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	moveErr := b.Update(r, c, val)
	sn.Moves++
	sn.UpdatedAt = time.Now().UnixNano()
	outcome := domain.OutcomeApplied
	if moveErr != nil {
		outcome = report.Code(moveErr)
	} else {
		sn.Grid = b.Grid()
		sn.Solved = b.Solved()
	}

	if u.store != nil {
		rec := &domain.MoveRecord{
			SessionID: id,
			Seq:       sn.Moves,
			Row:       r,
			Col:       c,
			Value:     val,
			Outcome:   outcome,
			PlayedAt:  sn.UpdatedAt,
		}
		if err := u.store.AppendMove(ctx, rec); err != nil {
			u.log.Warn().Err(err).Str("session", id).Msg("journal move")
		}
		if err := u.store.SaveSession(ctx, sn); err != nil {
			u.log.Warn().Err(err).Str("session", id).Msg("save session")
		}
	}
	if moveErr != nil {
		return *sn, moveErr
	}
	u.notifyLocked(id, *sn)
	return *sn, nil
}

// Moves lists the journal of one session.
func (u *Service) Moves(ctx context.Context, id string) ([]domain.MoveRecord, error) {
	if u.store == nil {
		return nil, errNotConfigured
	}
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}
	return u.store.ListMoves(ctx, id)
}

// Sessions lists known sessions, preferring the store so past runs are
// included.
func (u *Service) Sessions(ctx context.Context) ([]domain.SessionMeta, error) {
	if u.store != nil {
		return u.store.ListSessions(ctx)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.SessionMeta, 0, len(u.meta))
	for _, sn := range u.meta {
		out = append(out, domain.SessionMeta{
			ID:        sn.ID,
			Moves:     sn.Moves,
			Solved:    sn.Solved,
			CreatedAt: sn.CreatedAt,
		})
	}
	return out, nil
}

// CheckGrid runs the whole-grid validator over an arbitrary grid.
func (u *Service) CheckGrid(ctx context.Context, g domain.Grid) (bool, []domain.CellCoord, error) {
	if u.val == nil {
		return false, nil, errNotConfigured
	}
	return u.val.Validate(ctx, g)
}

// Watch subscribes to state pushes for a session. The returned cancel
// func closes the channel and is safe to call more than once. Watchers
// that fall behind miss intermediate states rather than blocking play.
func (u *Service) Watch(ctx context.Context, id string) (<-chan domain.Session, func(), error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, _, err := u.boardLocked(ctx, id); err != nil {
		return nil, nil, err
	}
	ch := make(chan domain.Session, 8)
	subs := u.watch[id]
	if subs == nil {
		subs = make(map[chan domain.Session]struct{})
		u.watch[id] = subs
	}
	subs[ch] = struct{}{}
	cancel := func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if subs := u.watch[id]; subs != nil {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
		}
	}
	return ch, cancel, nil
}

func (u *Service) notifyLocked(id string, sn domain.Session) {
	for ch := range u.watch[id] {
		select {
		case ch <- sn:
		default:
		}
	}
}

// boardLocked resolves a session id to its live board, pulling it out of
// the store on a cold hit. Callers hold u.mu.
func (u *Service) boardLocked(ctx context.Context, id string) (*board.Board, *domain.Session, error) {
	if b, ok := u.boards[id]; ok {
		return b, u.meta[id], nil
	}
	if u.store == nil {
		return nil, nil, domain.ErrSessionNotFound
	}
	sn, err := u.store.LoadSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := board.Resume(sn.Initial, sn.Grid)
	if err != nil {
		return nil, nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	u.boards[id] = b
	u.meta[id] = sn
	return b, sn, nil
}
