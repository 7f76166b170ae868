package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

var errArchiveDown = errors.New("archive down")

type stubPlayer struct {
	result *entity.GameResult
}

func (that *stubPlayer) PlayGame(_ context.Context, _ string) *entity.GameResult {
	return that.result
}

type stubResults struct {
	saved   []*entity.GameResult
	saveErr error
}

func (that *stubResults) Save(_ context.Context, result *entity.GameResult) error {
	if that.saveErr != nil {
		return that.saveErr
	}

	that.saved = append(that.saved, result)

	return nil
}

func (that *stubResults) GetByID(_ context.Context, _ string) (*entity.GameResult, error) {
	return nil, nil //nolint: nilnil // unused in these tests
}

func (that *stubResults) DeleteByID(_ context.Context, _ string) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGameService_Play(t *testing.T) {
	t.Run("Stamps and archives the result", func(t *testing.T) {
		// Given: a player producing a win and a working archive
		player := &stubPlayer{result: entity.NewGameResult(entity.OutcomeWin, entity.Board{}, "I won the game!")}
		results := &stubResults{}
		gameService := NewGameService(testLogger(), player, results)

		// When: playing a game
		result := gameService.Play(context.Background(), "")

		// Then: the result carries an ID and timestamp and was archived
		require.NotNil(t, result)
		assert.NotEmpty(t, result.ID)
		assert.False(t, result.PlayedAt.IsZero())
		require.Len(t, results.saved, 1)
		assert.Equal(t, result, results.saved[0])
	})

	t.Run("Works without an archive", func(t *testing.T) {
		// Given: archiving disabled
		player := &stubPlayer{result: entity.NewGameResult(entity.OutcomeDraw, entity.Board{}, "The game ended in a draw.")}
		gameService := NewGameService(testLogger(), player, nil)

		// When: playing a game
		result := gameService.Play(context.Background(), "")

		// Then: the result still comes back stamped
		require.NotNil(t, result)
		assert.NotEmpty(t, result.ID)
	})

	t.Run("A failed archive write does not void the game", func(t *testing.T) {
		// Given: an archive that rejects every write
		player := &stubPlayer{result: entity.NewGameResult(entity.OutcomeLoss, entity.Board{}, "I lost the game.")}
		results := &stubResults{saveErr: errArchiveDown}
		gameService := NewGameService(testLogger(), player, results)

		// When: playing a game
		result := gameService.Play(context.Background(), "")

		// Then: the caller still receives the played result
		require.NotNil(t, result)
		assert.Equal(t, entity.OutcomeLoss, result.Outcome)
	})
}
