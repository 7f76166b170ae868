package minimax

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

func TestEngine_BestMove(t *testing.T) {
	engine := New()

	t.Run("Picks the first cell on an empty board", func(t *testing.T) {
		// Given: the empty board, where every opening scores a draw
		var board entity.Board

		// When: asking for the best move
		move, err := engine.BestMove(board, entity.Self, entity.Opponent)

		// Then: ties resolve to the earliest row-major candidate
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: X can complete the top row
		board := entity.Board{
			{entity.Self, entity.Self, entity.Empty},
			{entity.Opponent, entity.Opponent, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}

		// When: asking for the best move
		move, err := engine.BestMove(board, entity.Self, entity.Opponent)

		// Then: it finishes the row
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Blocks the opponent's winning line", func(t *testing.T) {
		// Given: O threatens the top row
		board := entity.Board{
			{entity.Opponent, entity.Opponent, entity.Empty},
			{entity.Self, entity.Empty, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		}

		// When: asking for the best move
		move, err := engine.BestMove(board, entity.Self, entity.Opponent)

		// Then: it blocks
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Always proposes a legal move", func(t *testing.T) {
		boards := []entity.Board{
			{},
			{
				{entity.Self, entity.Empty, entity.Empty},
				{entity.Empty, entity.Opponent, entity.Empty},
				{entity.Empty, entity.Empty, entity.Empty},
			},
			{
				{entity.Self, entity.Opponent, entity.Self},
				{entity.Opponent, entity.Self, entity.Opponent},
				{entity.Empty, entity.Empty, entity.Empty},
			},
		}

		for _, board := range boards {
			// When: asking for the best move
			move, err := engine.BestMove(board, entity.Self, entity.Opponent)

			// Then: the move is a member of LegalMoves
			require.NoError(t, err)
			assert.Contains(t, board.LegalMoves(), move)
		}
	})

	t.Run("Returns an error when no move exists", func(t *testing.T) {
		// Given: a full board
		board := entity.Board{
			{entity.Self, entity.Opponent, entity.Self},
			{entity.Self, entity.Opponent, entity.Opponent},
			{entity.Opponent, entity.Self, entity.Self},
		}

		// When: asking for the best move
		_, err := engine.BestMove(board, entity.Self, entity.Opponent)

		// Then: it is the caller's defect
		assert.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}

func TestEngine_SelfPlayIsADraw(t *testing.T) {
	// Given: both sides play the engine from the empty board
	engine := New()
	var board entity.Board
	var err error

	side, other := entity.Self, entity.Opponent
	for !board.IsTerminal() {
		var move entity.Move
		move, err = engine.BestMove(board, side, other)
		require.NoError(t, err)

		board, err = board.Apply(move, side)
		require.NoError(t, err)

		side, other = other, side
	}

	// Then: optimal play on both sides forces a draw
	assert.Equal(t, entity.Empty, board.Winner())
	assert.True(t, board.IsFull())
}

func TestEngine_NeverLosesToRandomOpponent(t *testing.T) {
	// Given: the engine as X against a random mover, X first
	engine := New()
	rng := rand.New(rand.NewSource(1)) //nolint: gosec // deterministic games

	for game := 0; game < 50; game++ {
		var board entity.Board
		var err error

		for !board.IsTerminal() {
			var move entity.Move
			move, err = engine.BestMove(board, entity.Self, entity.Opponent)
			require.NoError(t, err)
			board, err = board.Apply(move, entity.Self)
			require.NoError(t, err)

			if board.IsTerminal() {
				break
			}

			moves := board.LegalMoves()
			board, err = board.Apply(moves[rng.Intn(len(moves))], entity.Opponent)
			require.NoError(t, err)
		}

		// Then: the opponent never wins
		assert.NotEqual(t, entity.Opponent, board.Winner(), "lost game %d:\n%s", game, board)
	}
}
