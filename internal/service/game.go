package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository"
)

// gamePlayer is the agent's entry point, satisfied by agent.Controller.
type gamePlayer interface {
	PlayGame(ctx context.Context, locator string) *entity.GameResult
}

// GameService plays one game and archives its result. The caller always
// gets a GameResult back, whatever happened inside the loop.
type GameService interface {
	Play(ctx context.Context, locator string) *entity.GameResult
}

type gameService struct {
	logger *slog.Logger

	player  gamePlayer
	results repository.ResultRepository // nil disables archiving
}

func NewGameService(logger *slog.Logger, player gamePlayer, results repository.ResultRepository) GameService {
	return &gameService{
		logger:  logger.With("component", "game-service"),
		player:  player,
		results: results,
	}
}

func (that *gameService) Play(ctx context.Context, locator string) *entity.GameResult {
	result := that.player.PlayGame(ctx, locator)
	result.ID = uuid.NewString()
	result.PlayedAt = time.Now().UTC()

	that.logger.Info("game finished",
		"id", result.ID,
		"outcome", result.Outcome,
		"summary", result.Summary,
	)

	if that.results == nil {
		return result
	}

	// a failed archive write does not void the played game
	if err := that.results.Save(ctx, result); err != nil {
		that.logger.Error("failed to archive game result", "id", result.ID, "error", err)
	}

	return result
}
