package surface

import (
	"context"
	"strings"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

// CellHandle addresses one board position on an external surface. Values are
// opaque to the agent and meaningful only to the session that produced them.
type CellHandle interface{}

// Observer reads the rendered game surface. ListCells returns the board's
// cell handles in row-major order; fewer than entity.CellCount handles means
// the surface is still loading and the poll should be retried.
type Observer interface {
	ListCells(ctx context.Context) ([]CellHandle, error)
	ReadCell(ctx context.Context, handle CellHandle) (string, error)
}

// Actuator performs the external action equivalent to "play here".
type Actuator interface {
	Activate(ctx context.Context, handle CellHandle) error
}

// Session is one exclusive game surface: acquired before the first poll and
// released on every exit path. Payload returns the full rendered content,
// used after a win to look for the reward token.
type Session interface {
	Observer
	Actuator

	Payload(ctx context.Context) (string, error)
	Release() error
}

// Factory acquires a Session for the surface named by locator. An empty
// locator selects the implementation's default surface.
type Factory interface {
	Acquire(ctx context.Context, locator string) (Session, error)
}

// ParseMark maps raw cell text to a Cell. The opponent's mark is accepted as
// either the letter O or the digit 0, which render alike on some surfaces;
// this tolerance lives here and nowhere else.
func ParseMark(raw string) entity.Cell {
	text := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case strings.Contains(text, "X"):
		return entity.Self
	case strings.Contains(text, "O"), strings.Contains(text, "0"):
		return entity.Opponent
	default:
		return entity.Empty
	}
}
