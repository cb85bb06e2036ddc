package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nogo/internal/domain/game"
	"nogo/internal/engine"
	errs "nogo/internal/errors"
	"nogo/internal/movegen"
	"nogo/internal/savefile"
)

type GameStore interface {
	SaveActive(ctx context.Context, rec game.Record) error
	LoadActive(ctx context.Context, id string) (game.Record, error)
	DeleteActive(ctx context.Context, id string) error

	Archive(ctx context.Context, rec game.Record) error
	GetArchived(ctx context.Context, id string) (game.Record, error)
	ListArchived(ctx context.Context, pageNum, limit int) ([]game.Record, int, error)
}

type GameUseCase struct {
	store     GameStore
	moves     movegen.Source
	log       *zap.SugaredLogger
	pageLimit int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGameUseCase(store GameStore, moves movegen.Source, log *zap.SugaredLogger, pageLimit int) *GameUseCase {
	if pageLimit <= 0 {
		pageLimit = 20
	}
	return &GameUseCase{
		store:     store,
		moves:     moves,
		log:       log,
		pageLimit: pageLimit,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lock serialises all work on one game. The returned func releases it.
func (g *GameUseCase) lock(id string) func() {
	g.mu.Lock()
	m, ok := g.locks[id]
	if !ok {
		m = &sync.Mutex{}
		g.locks[id] = m
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (g *GameUseCase) forget(id string) {
	g.mu.Lock()
	delete(g.locks, id)
	g.mu.Unlock()
}

func checkPlayerTypes(black, white game.PlayerType) error {
	if !black.Valid() {
		return fmt.Errorf("%w: black %q", errs.ErrInvalidPlayerType, black)
	}
	if !white.Valid() {
		return fmt.Errorf("%w: white %q", errs.ErrInvalidPlayerType, white)
	}
	return nil
}

// CreateGame starts an empty board. Missing player types mean human.
func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Record, error) {
	if req.Black == "" {
		req.Black = game.Human
	}
	if req.White == "" {
		req.White = game.Human
	}
	if err := checkPlayerTypes(req.Black, req.White); err != nil {
		return game.Record{}, err
	}
	s, err := engine.NewSession(req.Height, req.Width)
	if err != nil {
		return game.Record{}, err
	}
	return g.register(ctx, s, req.Black, req.White)
}

// LoadGame starts a game from save-file text.
func (g *GameUseCase) LoadGame(ctx context.Context, text string, black, white game.PlayerType) (game.Record, error) {
	if err := checkPlayerTypes(black, white); err != nil {
		return game.Record{}, err
	}
	snap, err := savefile.Read(strings.NewReader(text))
	if err != nil {
		return game.Record{}, err
	}
	s, err := engine.Restore(snap)
	if err != nil {
		return game.Record{}, err
	}
	return g.register(ctx, s, black, white)
}

func (g *GameUseCase) register(ctx context.Context, s *engine.Session, black, white game.PlayerType) (game.Record, error) {
	now := time.Now().UTC()
	rec := game.Record{
		ID:        uuid.New().String(),
		BlackType: black,
		WhiteType: white,
		Snapshot:  s.Serialize(),
		Status:    game.StatusActive,
		Moves:     []game.Move{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.store.SaveActive(ctx, rec); err != nil {
		return game.Record{}, err
	}
	g.log.Infow("game created", "game_id", rec.ID,
		"height", rec.Snapshot.Height, "width", rec.Snapshot.Width,
		"black", black, "white", white)
	return rec, nil
}

// GetGame returns a game in play or, failing that, from the archive.
func (g *GameUseCase) GetGame(ctx context.Context, id string) (game.Record, error) {
	rec, err := g.store.LoadActive(ctx, id)
	if errors.Is(err, errs.ErrGameNotFound) {
		return g.store.GetArchived(ctx, id)
	}
	return rec, err
}

// loadPlaying fetches a game that is still in play. A finished game yields
// errs.ErrGameOver.
func (g *GameUseCase) loadPlaying(ctx context.Context, id string) (game.Record, error) {
	rec, err := g.store.LoadActive(ctx, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, errs.ErrGameNotFound) {
		return rec, err
	}
	archived, archErr := g.store.GetArchived(ctx, id)
	if archErr != nil {
		return rec, err
	}
	return rec, fmt.Errorf("%w: %s won game %s", errs.ErrGameOver, archived.Winner, id)
}

func restoreSession(rec game.Record) (*engine.Session, error) {
	s, err := engine.Resume(rec.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: stored game %s: %w", errs.ErrInternal, rec.ID, err)
	}
	s.Start()
	return s, nil
}

// ApplyMove plays a human move for the side to move.
func (g *GameUseCase) ApplyMove(ctx context.Context, id string, req game.MoveRequest) (game.GameStateResponse, error) {
	unlock := g.lock(id)
	defer unlock()

	rec, err := g.loadPlaying(ctx, id)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s, err := restoreSession(rec)
	if err != nil {
		return game.GameStateResponse{}, err
	}

	mover := s.CurrentPlayer()
	if rec.TypeOf(mover) != game.Human {
		return game.GameStateResponse{}, fmt.Errorf("%w: %s", errs.ErrNotHumanTurn, mover)
	}

	move := game.Move{Color: mover, Row: req.Row, Col: req.Col}
	res, err := s.ApplyMove(req.Row, req.Col)
	if err != nil {
		g.log.Debugw("move rejected", "game_id", id, "move", move, "error", err)
		return stateOf(rec.ID, s, move, res), err
	}
	return g.commit(ctx, rec, s, move, res)
}

// ComputerMove plays the scripted move for the side to move. Candidates on
// occupied squares are skipped.
func (g *GameUseCase) ComputerMove(ctx context.Context, id string) (game.GameStateResponse, error) {
	unlock := g.lock(id)
	defer unlock()

	rec, err := g.loadPlaying(ctx, id)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s, err := restoreSession(rec)
	if err != nil {
		return game.GameStateResponse{}, err
	}

	mover := s.CurrentPlayer()
	if rec.TypeOf(mover) != game.Computer {
		return game.GameStateResponse{}, fmt.Errorf("%w: %s", errs.ErrNotComputerTurn, mover)
	}

	for {
		cand, err := g.moves.NextCandidate(s)
		if err != nil {
			return game.GameStateResponse{}, err
		}
		if !cand.Playable {
			g.log.Debugw("scripted square taken", "game_id", id, "row", cand.Row, "col", cand.Col)
			continue
		}
		move := game.Move{Color: mover, Row: cand.Row, Col: cand.Col}
		res, err := s.ApplyMove(cand.Row, cand.Col)
		if err != nil {
			return stateOf(rec.ID, s, move, res), fmt.Errorf("%w: scripted move: %w", errs.ErrInternal, err)
		}
		return g.commit(ctx, rec, s, move, res)
	}
}

// commit records an applied move. A finished game moves from the live
// store to the archive.
func (g *GameUseCase) commit(ctx context.Context, rec game.Record, s *engine.Session, move game.Move, res game.MoveResult) (game.GameStateResponse, error) {
	now := time.Now().UTC()
	rec.Snapshot = s.Serialize()
	rec.Moves = append(rec.Moves, move)
	rec.UpdatedAt = now

	if res.Status != game.MoveGameOver {
		if err := g.store.SaveActive(ctx, rec); err != nil {
			return game.GameStateResponse{}, err
		}
		return stateOf(rec.ID, s, move, res), nil
	}

	rec.Status = game.StatusFinished
	rec.Winner = res.Winner
	rec.FinishedAt = &now
	if err := g.store.Archive(ctx, rec); err != nil {
		return game.GameStateResponse{}, err
	}
	if err := g.store.DeleteActive(ctx, rec.ID); err != nil {
		g.log.Warnw("archived game still in live store", "game_id", rec.ID, "error", err)
	}
	g.forget(rec.ID)
	g.log.Infow("game finished", "game_id", rec.ID, "winner", res.Winner, "moves", len(rec.Moves))
	return stateOf(rec.ID, s, move, res), nil
}

func stateOf(id string, s *engine.Session, move game.Move, res game.MoveResult) game.GameStateResponse {
	return game.GameStateResponse{
		GameID: id,
		Move:   move,
		Result: res,
		Rows:   s.Rows(),
		Next:   s.CurrentPlayer(),
	}
}

// SaveText returns the game in save-file form.
func (g *GameUseCase) SaveText(ctx context.Context, id string) (string, error) {
	rec, err := g.GetGame(ctx, id)
	if err != nil {
		return "", err
	}
	return savefile.Format(rec.Snapshot), nil
}

func (g *GameUseCase) GetArchived(ctx context.Context, id string) (game.Record, error) {
	return g.store.GetArchived(ctx, id)
}

// ListArchive returns one page of finished games. Pages count from 1.
func (g *GameUseCase) ListArchive(ctx context.Context, pageNum int) (*game.ArchiveResponse, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	games, totalPages, err := g.store.ListArchived(ctx, pageNum, g.pageLimit)
	if err != nil {
		return nil, err
	}
	return &game.ArchiveResponse{
		PageNum:    pageNum,
		TotalPages: totalPages,
		Games:      games,
	}, nil
}
