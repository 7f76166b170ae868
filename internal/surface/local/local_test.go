package local

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalSurface(t *testing.T) {
	ctx := context.Background()

	t.Run("Exposes nine cells from the start", func(t *testing.T) {
		// Given: a fresh session
		session, err := NewFactory(testLogger()).Acquire(ctx, "")
		require.NoError(t, err)

		// When: listing cells
		handles, err := session.ListCells(ctx)

		// Then: the full board is addressable
		require.NoError(t, err)
		assert.Len(t, handles, entity.CellCount)
	})

	t.Run("Bot answers each agent move", func(t *testing.T) {
		// Given: a fresh session
		session, err := NewFactory(testLogger()).Acquire(ctx, "")
		require.NoError(t, err)

		handles, err := session.ListCells(ctx)
		require.NoError(t, err)

		// When: the agent takes the center
		require.NoError(t, session.Activate(ctx, handles[4]))

		// Then: the center reads back as X and the bot has replied with one O
		mark, err := session.ReadCell(ctx, handles[4])
		require.NoError(t, err)
		assert.Equal(t, "X", mark)

		var opponents int
		for _, handle := range handles {
			mark, err = session.ReadCell(ctx, handle)
			require.NoError(t, err)
			if mark == "O" {
				opponents++
			}
		}
		assert.Equal(t, 1, opponents)
	})

	t.Run("Rejects a move onto an occupied cell", func(t *testing.T) {
		// Given: a session where the agent already took a corner
		session, err := NewFactory(testLogger()).Acquire(ctx, "")
		require.NoError(t, err)

		handles, err := session.ListCells(ctx)
		require.NoError(t, err)
		require.NoError(t, session.Activate(ctx, handles[0]))

		// When: clicking the same cell again
		err = session.Activate(ctx, handles[0])

		// Then: the surface refuses
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Rejects foreign handles", func(t *testing.T) {
		session, err := NewFactory(testLogger()).Acquire(ctx, "")
		require.NoError(t, err)

		_, err = session.ReadCell(ctx, "not-a-handle")

		assert.ErrorIs(t, err, apperror.ErrForeignHandle)
	})

	t.Run("Release is one-shot", func(t *testing.T) {
		// Given: a released session
		session, err := NewFactory(testLogger()).Acquire(ctx, "")
		require.NoError(t, err)
		require.NoError(t, session.Release())

		// When: using it again
		_, listErr := session.ListCells(ctx)
		releaseErr := session.Release()

		// Then: every call reports the released state
		assert.ErrorIs(t, listErr, apperror.ErrSessionReleased)
		assert.ErrorIs(t, releaseErr, apperror.ErrSessionReleased)
	})
}
