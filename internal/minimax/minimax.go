package minimax

import (
	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

// Terminal scores carry a depth bias: a win found in fewer plies scores
// higher, a loss found in fewer plies scores lower. This makes the engine
// win as fast as possible and delay unavoidable losses as long as possible.
const winScore = 10

const (
	scoreFloor = -1000
	scoreCeil  = 1000
)

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// BestMove - returns the game-theoretically optimal move for self on the
// given board. Candidates are tried in the row-major order of LegalMoves and
// only a strictly better score replaces the current pick, so equal-scoring
// moves resolve to the earliest one; the result is fully deterministic.
func (that *Engine) BestMove(board entity.Board, self, opponent entity.Cell) (entity.Move, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	bestScore := scoreFloor
	bestMove := moves[0]

	for _, move := range moves {
		next, _ := board.Apply(move, self) // moves come from LegalMoves, Apply cannot fail
		score := that.score(next, 0, false, self, opponent)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, nil
}

// score - exhaustive minimax over the remaining game tree. Depth counts
// plies below the root candidate, so an immediate win scores winScore.
func (that *Engine) score(board entity.Board, depth int, maximizing bool, self, opponent entity.Cell) int {
	switch board.Winner() {
	case self:
		return winScore - depth
	case opponent:
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	if maximizing {
		best := scoreFloor
		for _, move := range board.LegalMoves() {
			next, _ := board.Apply(move, self)
			if score := that.score(next, depth+1, false, self, opponent); score > best {
				best = score
			}
		}
		return best
	}

	best := scoreCeil
	for _, move := range board.LegalMoves() {
		next, _ := board.Apply(move, opponent)
		if score := that.score(next, depth+1, true, self, opponent); score < best {
			best = score
		}
	}
	return best
}
