package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// Cell is one square of the board. It is a closed set: raw surface text is
// mapped to a Cell at the observation boundary, never inside this package.
type Cell uint8

const (
	Empty Cell = iota
	Self
	Opponent
)

// Mark - returns the rendered symbol for the cell. The agent always plays X.
func (that Cell) Mark() string {
	switch that {
	case Self:
		return "X"
	case Opponent:
		return "O"
	default:
		return " "
	}
}

// Move addresses one cell by (row, column). The acting side is implicit.
type Move struct {
	Row int
	Col int
}

// Index - returns the flat row-major index used by actuators.
func (that Move) Index() int {
	return that.Row*BoardSize + that.Col
}

// Board is an immutable 3x3 snapshot. The zero value is the empty board;
// every change produces a new Board via Apply.
type Board [BoardSize][BoardSize]Cell

// Winner - returns the side owning a completed line, or Empty if there is
// none. Lines are scanned rows first, then columns, then the two diagonals,
// and the first completed line wins; boards with several completed lines are
// not rejected, the scan order is the tie-break.
func (that Board) Winner() Cell {
	for row := 0; row < BoardSize; row++ {
		if that[row][0] != Empty && that[row][0] == that[row][1] && that[row][1] == that[row][2] {
			return that[row][0]
		}
	}

	for col := 0; col < BoardSize; col++ {
		if that[0][col] != Empty && that[0][col] == that[1][col] && that[1][col] == that[2][col] {
			return that[0][col]
		}
	}

	if that[0][0] != Empty && that[0][0] == that[1][1] && that[1][1] == that[2][2] {
		return that[0][0]
	}

	if that[0][2] != Empty && that[0][2] == that[1][1] && that[1][1] == that[2][0] {
		return that[0][2]
	}

	return Empty
}

// IsFull - reports whether no cell is Empty.
func (that Board) IsFull() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == Empty {
				return false
			}
		}
	}

	return true
}

// LegalMoves - returns all Empty cells in row-major order. The order is part
// of the contract: search tie-breaks depend on it.
func (that Board) LegalMoves() []Move {
	moves := make([]Move, 0, CellCount)

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Apply - returns a new Board with the move's cell set to side.
func (that Board) Apply(move Move, side Cell) (Board, error) {
	if move.Row < 0 || move.Row >= BoardSize || move.Col < 0 || move.Col >= BoardSize {
		return that, fmt.Errorf("%w: cell (%d,%d) is off the board", apperror.ErrIllegalMove, move.Row, move.Col)
	}

	if that[move.Row][move.Col] != Empty {
		return that, fmt.Errorf("%w: cell (%d,%d) is occupied", apperror.ErrIllegalMove, move.Row, move.Col)
	}

	that[move.Row][move.Col] = side

	return that, nil
}

// IsTerminal - reports whether the game cannot continue from this board.
func (that Board) IsTerminal() bool {
	return that.Winner() != Empty || that.IsFull()
}

// String - renders the board as three pipe-delimited rows, Empty as a space.
func (that Board) String() string {
	rows := make([]string, 0, BoardSize)

	for row := 0; row < BoardSize; row++ {
		marks := make([]string, 0, BoardSize)
		for col := 0; col < BoardSize; col++ {
			marks = append(marks, that[row][col].Mark())
		}
		rows = append(rows, strings.Join(marks, "|"))
	}

	return strings.Join(rows, "\n")
}
