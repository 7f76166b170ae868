// Package local is an in-process game surface: the board lives in memory
// and a random bot answers each of the agent's moves. It backs offline play
// and the controller's loop tests, where a real browser would be noise.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface"
)

type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger.With("component", "local-surface")}
}

func (that *Factory) Acquire(_ context.Context, _ string) (surface.Session, error) {
	return &session{logger: that.logger}, nil
}

type session struct {
	logger *slog.Logger

	mu       sync.Mutex
	board    entity.Board
	released bool
}

func (that *session) ListCells(_ context.Context) ([]surface.CellHandle, error) {
	if err := that.alive(); err != nil {
		return nil, err
	}

	handles := make([]surface.CellHandle, 0, entity.CellCount)
	for i := 0; i < entity.CellCount; i++ {
		handles = append(handles, i)
	}

	return handles, nil
}

func (that *session) ReadCell(_ context.Context, handle surface.CellHandle) (string, error) {
	index, err := that.unwrap(handle)
	if err != nil {
		return "", err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board[index/entity.BoardSize][index%entity.BoardSize].Mark(), nil
}

// Activate - plays the agent's mark and, if the game goes on, answers with a
// random bot move on the opponent's behalf.
func (that *session) Activate(_ context.Context, handle surface.CellHandle) error {
	index, err := that.unwrap(handle)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	move := entity.Move{Row: index / entity.BoardSize, Col: index % entity.BoardSize}
	if that.board[move.Row][move.Col] != entity.Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that.board, _ = that.board.Apply(move, entity.Self)

	if that.board.IsTerminal() {
		return nil
	}

	that.botTurn()

	return nil
}

// botTurn - the opponent picks a random empty cell, like a casual human
// player would. Must be called with the lock held.
func (that *session) botTurn() {
	moves := that.board.LegalMoves()
	if len(moves) == 0 {
		return
	}

	move := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok
	that.board, _ = that.board.Apply(move, entity.Opponent)

	that.logger.Debug("bot played", "row", move.Row, "col", move.Col)
}

func (that *session) Payload(_ context.Context) (string, error) {
	if err := that.alive(); err != nil {
		return "", err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.String(), nil
}

func (that *session) Release() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.released {
		return apperror.ErrSessionReleased
	}
	that.released = true

	return nil
}

func (that *session) unwrap(handle surface.CellHandle) (int, error) {
	if err := that.alive(); err != nil {
		return 0, err
	}

	index, ok := handle.(int)
	if !ok || index < 0 || index >= entity.CellCount {
		return 0, apperror.ErrForeignHandle
	}

	return index, nil
}

func (that *session) alive() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.released {
		return apperror.ErrSessionReleased
	}

	return nil
}
