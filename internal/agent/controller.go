package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface"
)

// Config holds the named delays and budgets of the control loop. Tests
// override them; production values come from the config file.
type Config struct {
	MaxTurns      int           // iteration bound, the only limit on game length
	SettleDelay   time.Duration // wait after own move before re-observing
	OpponentDelay time.Duration // wait for the opponent's countermove
	RetryBackoff  time.Duration // wait before re-polling a not-ready surface
	StepTimeout   time.Duration // per observer/actuator call
	PayloadDelay  time.Duration // wait before scraping the win payload
}

// Controller runs the read-decide-act loop of one game. It owns no board
// state across iterations: every decision is made on a freshly observed or
// freshly derived Board.
type Controller struct {
	logger   *slog.Logger
	conf     Config
	engine   *minimax.Engine
	sessions surface.Factory
	reporter *Reporter
}

func NewController(logger *slog.Logger, conf Config, sessions surface.Factory) *Controller {
	return &Controller{
		logger:   logger.With("component", "agent"),
		conf:     conf,
		engine:   minimax.New(),
		sessions: sessions,
		reporter: NewReporter(logger, conf.PayloadDelay),
	}
}

// PlayGame - plays one full game on the surface named by locator and always
// returns a GameResult; failures inside the loop are converted to an error
// outcome here, never raised to the caller. The session is released on every
// exit path.
func (that *Controller) PlayGame(ctx context.Context, locator string) *entity.GameResult {
	session, err := that.sessions.Acquire(ctx, locator)
	if err != nil {
		return entity.NewErrorResult(entity.Board{}, fmt.Errorf("failed to acquire session: %w", err))
	}

	defer func() {
		if releaseErr := session.Release(); releaseErr != nil {
			that.logger.Error("failed to release session", "error", releaseErr)
		}
	}()

	board, finished, err := that.runGame(ctx, session)
	if err != nil {
		that.logger.Error("game aborted", "error", err)
		return entity.NewErrorResult(board, err)
	}

	return that.reporter.Report(ctx, board, finished, session)
}

// runGame - the loop itself. Returns the last observed board and whether a
// terminal state was reached within the iteration budget.
func (that *Controller) runGame(ctx context.Context, session surface.Session) (entity.Board, bool, error) {
	var board entity.Board

	for turn := 0; turn < that.conf.MaxTurns; turn++ {
		observed, handles, err := that.observe(ctx, session)
		if errors.Is(err, apperror.ErrSurfaceNotReady) {
			that.logger.Debug("surface not ready, backing off", "turn", turn)
			if err = sleep(ctx, that.conf.RetryBackoff); err != nil {
				return board, false, err
			}
			continue
		}
		if err != nil {
			return board, false, err
		}

		board = observed
		that.logger.Debug("observed board", "turn", turn, "board", board.String())

		if board.IsTerminal() {
			return board, true, nil
		}

		move, err := that.engine.BestMove(board, entity.Self, entity.Opponent)
		if err != nil {
			return board, false, fmt.Errorf("failed to choose a move: %w", err)
		}

		that.logger.Info("making move", "turn", turn, "row", move.Row, "col", move.Col)
		if err = that.act(ctx, session, handles[move.Index()]); err != nil {
			return board, false, fmt.Errorf("failed to activate cell %d: %w", move.Index(), err)
		}

		if err = sleep(ctx, that.conf.SettleDelay); err != nil {
			return board, false, err
		}

		observed, _, err = that.observe(ctx, session)
		switch {
		case err == nil:
			board = observed
			if board.IsTerminal() {
				return board, true, nil
			}
		case errors.Is(err, apperror.ErrSurfaceNotReady):
			// the next iteration re-polls from scratch
		default:
			return board, false, err
		}

		if err = sleep(ctx, that.conf.OpponentDelay); err != nil {
			return board, false, err
		}
	}

	return board, false, nil
}

// observe - one poll of the surface. Fewer than nine discoverable cells is a
// soft failure (ErrSurfaceNotReady); an unreadable single cell is treated as
// empty, matching a surface caught mid-render.
func (that *Controller) observe(ctx context.Context, session surface.Session) (entity.Board, []surface.CellHandle, error) {
	stepCtx, cancel := that.stepCtx(ctx)
	defer cancel()

	handles, err := session.ListCells(stepCtx)
	if err != nil {
		return entity.Board{}, nil, fmt.Errorf("failed to list cells: %w", err)
	}

	if len(handles) < entity.CellCount {
		return entity.Board{}, nil, apperror.ErrSurfaceNotReady
	}

	handles = handles[:entity.CellCount]

	var board entity.Board
	for i, handle := range handles {
		raw, readErr := session.ReadCell(stepCtx, handle)
		if readErr != nil {
			that.logger.Debug("failed to read cell", "cell", i, "error", readErr)
			continue
		}
		board[i/entity.BoardSize][i%entity.BoardSize] = surface.ParseMark(raw)
	}

	return board, handles, nil
}

// act - one actuation, bounded by the step timeout so a dead surface fails
// instead of hanging.
func (that *Controller) act(ctx context.Context, session surface.Session, handle surface.CellHandle) error {
	stepCtx, cancel := that.stepCtx(ctx)
	defer cancel()

	return session.Activate(stepCtx, handle)
}

func (that *Controller) stepCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if that.conf.StepTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, that.conf.StepTimeout)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
