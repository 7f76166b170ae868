package agent

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface"
)

// tokenPattern matches the reward token some surfaces expose after a win:
// exactly fourteen consecutive digits, word-boundary delimited.
var tokenPattern = regexp.MustCompile(`\b\d{14}\b`)

// Reporter classifies the final board into an outcome and, on a win, scrapes
// the surface payload for the reward token.
type Reporter struct {
	logger       *slog.Logger
	payloadDelay time.Duration
}

func NewReporter(logger *slog.Logger, payloadDelay time.Duration) *Reporter {
	return &Reporter{
		logger:       logger.With("component", "reporter"),
		payloadDelay: payloadDelay,
	}
}

// Report - maps the final board to a GameOutcome. An unfinished game is a
// first-class incomplete result, not an error.
func (that *Reporter) Report(ctx context.Context, board entity.Board, finished bool, session surface.Session) *entity.GameResult {
	if !finished {
		return entity.NewGameResult(entity.OutcomeIncomplete, board, "The game did not complete.")
	}

	switch board.Winner() {
	case entity.Self:
		result := entity.NewGameResult(entity.OutcomeWin, board, "I won the game!")
		that.attachToken(ctx, result, session)
		return result
	case entity.Opponent:
		return entity.NewGameResult(entity.OutcomeLoss, board, "I lost the game.")
	}

	if board.IsFull() {
		return entity.NewGameResult(entity.OutcomeDraw, board, "The game ended in a draw.")
	}

	return entity.NewGameResult(entity.OutcomeIncomplete, board, "The game did not complete.")
}

// attachToken - scans the final payload for the reward token. The delay
// gives the surface time to render its congratulation message. Scrape
// failures are logged and swallowed: the win stands either way.
func (that *Reporter) attachToken(ctx context.Context, result *entity.GameResult, session surface.Session) {
	if err := sleep(ctx, that.payloadDelay); err != nil {
		return
	}

	payload, err := session.Payload(ctx)
	if err != nil {
		that.logger.Warn("failed to read final payload", "error", err)
		return
	}

	token := tokenPattern.FindString(payload)
	if token == "" {
		return
	}

	that.logger.Info("found reward token", "token", token)
	result.AuxToken = token
	result.Summary = token
}
