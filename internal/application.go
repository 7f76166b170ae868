package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-agent/internal/agent"
	"github.com/rocketscienceinc/tictactoe-agent/internal/config"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface/browser"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface/local"
)

var ErrUnknownSurface = errors.New("unknown surface kind")

// RunApp - plays one game against the configured surface, archives the
// result when Redis is enabled, and prints the final board and summary.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var results repository.ResultRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection)
	}

	sessions, err := newSurfaceFactory(logger, conf.Surface)
	if err != nil {
		return err
	}

	controller := agent.NewController(logger, agent.Config{
		MaxTurns:      conf.Agent.MaxTurns,
		SettleDelay:   conf.Agent.SettleDelay,
		OpponentDelay: conf.Agent.OpponentDelay,
		RetryBackoff:  conf.Agent.RetryBackoff,
		StepTimeout:   conf.Agent.StepTimeout,
		PayloadDelay:  conf.Agent.PayloadDelay,
	}, sessions)

	gameService := service.NewGameService(logger, controller, results)

	result := gameService.Play(ctx, conf.GameURL)

	fmt.Fprintln(os.Stdout, result.BoardRendering)
	fmt.Fprintln(os.Stdout, result.Summary)

	if result.Outcome == entity.OutcomeError {
		return fmt.Errorf("game ended with error: %s", result.Reason) //nolint: err113 // terminal report, nothing matches on it
	}

	return nil
}

func newSurfaceFactory(logger *slog.Logger, kind string) (surface.Factory, error) {
	switch kind {
	case config.BrowserSurface:
		return browser.NewFactory(logger), nil
	case config.LocalSurface:
		return local.NewFactory(logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSurface, kind)
	}
}
